// Package cohorts models named, filter-derived subsets of patient
// identifiers and the set analytics used for trial-eligibility screening:
// pairwise overlaps, global union/intersection, match rates and overlap
// clustering.
package cohorts

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/kognitoai/cohort/filter"
	"github.com/kognitoai/cohort/records"
)

// Cohort is a named subset of patient identifiers derived from a filter.
// PatientIDs is recomputed whenever the filter or the master dataset changes
// and is treated as immutable between recomputes; by construction it is
// always a subset of the master record set at the time of computation.
type Cohort struct {
	ID         string
	Name       string
	Filter     *filter.Group
	PatientIDs mapset.Set[string]
}

func New(name string, group *filter.Group) *Cohort {
	return &Cohort{
		ID:         uuid.NewString(),
		Name:       name,
		Filter:     group,
		PatientIDs: mapset.NewSet[string](),
	}
}

// Count returns the cohort's patient count, tolerating a nil set.
func (c *Cohort) Count() int {
	if c == nil || c.PatientIDs == nil {
		return 0
	}
	return c.PatientIDs.Cardinality()
}

// ids returns the cohort's id set, substituting an empty set for nil so the
// set engine never branches on malformed cohorts.
func (c *Cohort) ids() mapset.Set[string] {
	if c == nil || c.PatientIDs == nil {
		return mapset.NewSet[string]()
	}
	return c.PatientIDs
}

// Refresh recomputes the cohort's membership by running the pipeline over the
// master dataset. Sibling cohorts are supplied through the index so that
// cross-cohort membership rules resolve against their current membership.
func (c *Cohort) Refresh(pipeline *filter.Pipeline, master []records.Record, columns records.Columns, siblings Index, resolver records.Resolver) {
	ids := pipeline.MatchingIDs(master, filter.Params{
		Group:    c.Filter,
		Columns:  columns,
		Cohorts:  siblings,
		Resolver: resolver,
	})
	c.PatientIDs = mapset.NewSet[string](ids...)
}

// Index is an immutable id-to-cohort lookup passed per evaluation, never
// cached process-wide.
type Index map[string]*Cohort

// NewIndex builds an index over the given cohorts.
func NewIndex(cohorts []*Cohort) Index {
	index := make(Index, len(cohorts))
	for _, c := range cohorts {
		index[c.ID] = c
	}
	return index
}

var _ filter.CohortIndex = Index{}

// Contains implements filter.CohortIndex. The second return value is false
// when the cohort id is unknown, letting the evaluator apply its reference
// policy.
func (i Index) Contains(cohortID string, patientID string) (bool, bool) {
	c, ok := i[cohortID]
	if !ok || c == nil {
		return false, false
	}
	return c.ids().Contains(patientID), true
}
