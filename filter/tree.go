package filter

import (
	"github.com/kognitoai/cohort/records"
)

// EvaluateGroup recursively evaluates a group against a record. Child results
// are combined according to the group's logic with short-circuiting, and the
// group's own negation is applied to the combined result. An empty group
// combines to true before negation.
func (e Evaluator) EvaluateGroup(record records.Record, index int, group *Group, columns records.Columns) bool {
	result := e.combine(record, index, group, columns)
	if group != nil && group.Negate {
		return !result
	}
	return result
}

func (e Evaluator) combine(record records.Record, index int, group *Group, columns records.Columns) bool {
	if group.IsEmpty() {
		return true
	}

	conjunctive := group.Logic != LogicOr
	for _, node := range group.Nodes {
		matched := e.evaluateNode(record, index, node, columns)
		if conjunctive && !matched {
			return false
		}
		if !conjunctive && matched {
			return true
		}
	}
	return conjunctive
}

func (e Evaluator) evaluateNode(record records.Record, index int, node Node, columns records.Columns) bool {
	if node.Group != nil {
		return e.EvaluateGroup(record, index, node.Group, columns)
	}
	if node.Rule != nil {
		// Column types are keyed by the stored column name, so the rule's
		// logical field resolves before the type lookup.
		columnType := columns.TypeOf(e.resolver.Resolve(node.Rule.Field))
		return e.Evaluate(record, index, *node.Rule, columnType)
	}
	// A node with neither side set is a malformed tree; treat it the same as
	// any other unresolvable reference.
	return e.policy.match()
}
