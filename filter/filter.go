// Package filter implements the declarative cohort filter model: a recursive
// tree of comparison rules and nested groups with AND/OR combination and
// per-group negation, evaluated against in-memory patient records.
package filter

import (
	"encoding/json"
	"fmt"
)

// Logic combines the results of a group's child nodes.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// Operator is a comparison operator of a leaf rule. Which operators are
// meaningful for a rule depends on the declared type of its column.
type Operator string

const (
	// Numeric operators
	OperatorEquals    Operator = "equals"
	OperatorNotEquals Operator = "not_equals"
	OperatorGt        Operator = "gt"
	OperatorGte       Operator = "gte"
	OperatorLt        Operator = "lt"
	OperatorLte       Operator = "lte"
	OperatorBetween   Operator = "between"

	// Date operators, all at calendar-day granularity
	OperatorOnDate       Operator = "on_date"
	OperatorBefore       Operator = "before"
	OperatorAfter        Operator = "after"
	OperatorOnOrBefore   Operator = "on_or_before"
	OperatorOnOrAfter    Operator = "on_or_after"
	OperatorBetweenDates Operator = "between_dates"

	// String operators (equals/not_equals are shared with the numeric set)
	OperatorContains Operator = "contains"

	// Presence operators, evaluated before any type-specific branch
	OperatorIsEmpty    Operator = "is_empty"
	OperatorIsNotEmpty Operator = "is_not_empty"

	// Cross-cohort membership operators
	OperatorInCohort    Operator = "in_cohort"
	OperatorNotInCohort Operator = "not_in_cohort"
)

// Rule is a leaf predicate against a single logical column. Value2 is only
// meaningful for the range operators.
type Rule struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value,omitempty"`
	Value2   any      `json:"value2,omitempty"`
}

// Group is an interior node of the filter tree. An empty Nodes slice
// evaluates to true prior to negation, making the empty group the identity
// for both AND and OR.
type Group struct {
	ID               string `json:"id,omitempty"`
	Logic            Logic  `json:"logic"`
	Negate           bool   `json:"negate,omitempty"`
	ExcludeDirtyData bool   `json:"excludeDirtyData,omitempty"`
	Nodes            []Node `json:"rules"`
}

// IsEmpty reports whether the group contains no rules at any depth. An empty
// group is a no-op filter.
func (g *Group) IsEmpty() bool {
	return g == nil || len(g.Nodes) == 0
}

// RuleCount returns the number of leaf rules in the tree rooted at g.
func (g *Group) RuleCount() int {
	if g == nil {
		return 0
	}
	count := 0
	for _, node := range g.Nodes {
		if node.Rule != nil {
			count++
		} else if node.Group != nil {
			count += node.Group.RuleCount()
		}
	}
	return count
}

// Node is the tagged union of the two tree node kinds. Exactly one of Rule
// and Group is non-nil.
type Node struct {
	Rule  *Rule
	Group *Group
}

// RuleNode wraps a leaf rule as a tree node.
func RuleNode(rule Rule) Node {
	return Node{Rule: &rule}
}

// GroupNode wraps a nested group as a tree node.
func GroupNode(group Group) Node {
	return Node{Group: &group}
}

// UnmarshalJSON decodes the wire form used by the filter builder, where group
// objects are distinguished from rule objects by the presence of a "logic"
// property.
func (n *Node) UnmarshalJSON(data []byte) error {
	var probe struct {
		Logic *Logic `json:"logic"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Logic != nil {
		group := Group{}
		if err := json.Unmarshal(data, &group); err != nil {
			return err
		}
		n.Group = &group
		return nil
	}
	rule := Rule{}
	if err := json.Unmarshal(data, &rule); err != nil {
		return err
	}
	n.Rule = &rule
	return nil
}

// MarshalJSON emits the node's inner value, matching the builder wire form.
func (n Node) MarshalJSON() ([]byte, error) {
	switch {
	case n.Rule != nil:
		return json.Marshal(n.Rule)
	case n.Group != nil:
		return json.Marshal(n.Group)
	default:
		return nil, fmt.Errorf("filter node has neither rule nor group")
	}
}
