package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kognitoai/cohort/records"
)

// CohortIndex resolves cross-cohort membership for the in_cohort and
// not_in_cohort operators. Implementations must treat the index as an
// immutable snapshot for the duration of an evaluation.
type CohortIndex interface {
	// Contains reports whether the patient belongs to the cohort. The second
	// return value is false when the cohort id is unknown to the index.
	Contains(cohortID string, patientID string) (member bool, ok bool)
}

// ReferencePolicy decides the outcome of a rule that cannot be evaluated:
// an unknown cohort reference or an operator the column type does not
// support. Historically such rules matched every record; in a screening
// context that silently widens cohorts, so the choice is explicit.
type ReferencePolicy string

const (
	// PolicyFailOpen treats unresolvable rules as matching (legacy behavior).
	PolicyFailOpen ReferencePolicy = "open"
	// PolicyFailClosed treats unresolvable rules as non-matching.
	PolicyFailClosed ReferencePolicy = "closed"
)

func (p ReferencePolicy) match() bool {
	return p != PolicyFailClosed
}

// Evaluator applies a single rule to a single record. It carries no mutable
// state; every dependency is an immutable snapshot supplied at construction.
type Evaluator struct {
	resolver records.Resolver
	cohorts  CohortIndex
	policy   ReferencePolicy
}

func NewEvaluator(resolver records.Resolver, cohorts CohortIndex, policy ReferencePolicy) Evaluator {
	return Evaluator{
		resolver: resolver,
		cohorts:  cohorts,
		policy:   policy,
	}
}

// Evaluate applies the rule to the record. The index is the record's position
// in the master dataset, used for the synthetic patient id fallback.
// Evaluation never fails: parse failures degrade to false and unresolvable
// references degrade according to the reference policy.
func (e Evaluator) Evaluate(record records.Record, index int, rule Rule, columnType records.ColumnType) bool {
	value := e.resolver.Value(record, rule.Field)

	// Presence tests come first: they are the only operators defined on
	// missing values.
	switch rule.Operator {
	case OperatorIsEmpty:
		return records.IsEmpty(value)
	case OperatorIsNotEmpty:
		return !records.IsEmpty(value)
	case OperatorInCohort, OperatorNotInCohort:
		return e.evaluateCohortMembership(record, index, rule)
	}

	if records.IsEmpty(value) {
		return false
	}

	switch columnType {
	case records.ColumnTypeNumber:
		return e.evaluateNumeric(value, rule)
	case records.ColumnTypeDate:
		return e.evaluateDate(value, rule)
	default:
		return e.evaluateString(value, rule)
	}
}

func (e Evaluator) evaluateCohortMembership(record records.Record, index int, rule Rule) bool {
	cohortID, _ := rule.Value.(string)
	if e.cohorts == nil {
		return e.policy.match()
	}
	member, ok := e.cohorts.Contains(cohortID, records.PatientID(record, index))
	if !ok {
		return e.policy.match()
	}
	if rule.Operator == OperatorNotInCohort {
		return !member
	}
	return member
}

func (e Evaluator) evaluateNumeric(value any, rule Rule) bool {
	fieldNum, ok := records.Float64(value)
	if !ok || math.IsNaN(fieldNum) {
		return false
	}

	if rule.Operator == OperatorBetween {
		lo, okLo := records.Float64(rule.Value)
		hi, okHi := records.Float64(rule.Value2)
		if !okLo || !okHi {
			return false
		}
		return fieldNum >= lo && fieldNum <= hi
	}

	ruleNum, ok := records.Float64(rule.Value)
	if !ok || math.IsNaN(ruleNum) {
		return false
	}

	switch rule.Operator {
	case OperatorEquals:
		return fieldNum == ruleNum
	case OperatorNotEquals:
		return fieldNum != ruleNum
	case OperatorGt:
		return fieldNum > ruleNum
	case OperatorGte:
		return fieldNum >= ruleNum
	case OperatorLt:
		return fieldNum < ruleNum
	case OperatorLte:
		return fieldNum <= ruleNum
	default:
		return e.policy.match()
	}
}

func (e Evaluator) evaluateDate(value any, rule Rule) bool {
	fieldDay, ok := records.Day(value)
	if !ok {
		return false
	}

	if rule.Operator == OperatorBetweenDates {
		lo, okLo := records.Day(rule.Value)
		hi, okHi := records.Day(rule.Value2)
		if !okLo || !okHi {
			return false
		}
		return !fieldDay.Before(lo) && !fieldDay.After(hi)
	}

	ruleDay, ok := records.Day(rule.Value)
	if !ok {
		return false
	}

	switch rule.Operator {
	case OperatorOnDate:
		return fieldDay.Equal(ruleDay)
	case OperatorBefore:
		return fieldDay.Before(ruleDay)
	case OperatorAfter:
		return fieldDay.After(ruleDay)
	case OperatorOnOrBefore:
		return !fieldDay.After(ruleDay)
	case OperatorOnOrAfter:
		return !fieldDay.Before(ruleDay)
	default:
		return e.policy.match()
	}
}

func (e Evaluator) evaluateString(value any, rule Rule) bool {
	fieldStr := strings.ToLower(stringForm(value))
	ruleStr := strings.ToLower(stringForm(rule.Value))

	switch rule.Operator {
	case OperatorEquals:
		return fieldStr == ruleStr
	case OperatorNotEquals:
		return fieldStr != ruleStr
	case OperatorContains:
		return strings.Contains(fieldStr, ruleStr)
	default:
		return e.policy.match()
	}
}

func stringForm(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		if f, ok := records.Float64(val); ok {
			// Integral values must not carry a trailing ".0" so that numeric
			// codes compare equal to their string forms.
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return fmt.Sprintf("%v", val)
	}
}
