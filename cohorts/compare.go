package cohorts

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Summary describes a single cohort within a comparison.
type Summary struct {
	CohortID           string  `json:"cohort_id"`
	CohortName         string  `json:"cohort_name"`
	PatientCount       int     `json:"patient_count"`
	MasterPatientCount int     `json:"master_patient_count"`
	MatchRate          float64 `json:"match_rate"`
	FilterCount        int     `json:"filter_count"`
}

// Overlap holds the pairwise set statistics for one unordered cohort pair.
// OverlapPercentage is Jaccard-style: intersection over union.
type Overlap struct {
	CohortIDs         [2]string `json:"cohort_ids"`
	OverlapCount      int       `json:"overlap_count"`
	OverlapPercentage float64   `json:"overlap_percentage"`
	UniqueToFirst     int       `json:"unique_to_first"`
	UniqueToSecond    int       `json:"unique_to_second"`
}

// Comparison is the full multi-cohort analysis consumed by the screening UI.
type Comparison struct {
	Cohorts             []Summary `json:"cohorts"`
	Overlaps            []Overlap `json:"overlaps"`
	TotalUniquePatients int       `json:"total_unique_patients"`
	CommonToAll         int       `json:"common_to_all"`
}

// Compare computes match rates, every pairwise overlap, the global union and
// the global intersection of the given cohorts. It is a pure function of its
// inputs: a malformed or empty cohort list yields empty and zero outputs,
// never an error.
func Compare(cohorts []*Cohort, masterCount int) Comparison {
	result := Comparison{
		Cohorts:  make([]Summary, 0, len(cohorts)),
		Overlaps: make([]Overlap, 0, len(cohorts)*(len(cohorts)-1)/2),
	}

	union := mapset.NewSet[string]()
	var intersection mapset.Set[string]

	for _, c := range cohorts {
		ids := c.ids()
		result.Cohorts = append(result.Cohorts, Summary{
			CohortID:           c.ID,
			CohortName:         c.Name,
			PatientCount:       ids.Cardinality(),
			MasterPatientCount: masterCount,
			MatchRate:          percentage(ids.Cardinality(), masterCount),
			FilterCount:        c.Filter.RuleCount(),
		})

		union = union.Union(ids)
		if intersection == nil {
			intersection = ids.Clone()
		} else {
			intersection = intersection.Intersect(ids)
		}
	}

	for i := 0; i < len(cohorts); i++ {
		for j := i + 1; j < len(cohorts); j++ {
			result.Overlaps = append(result.Overlaps, overlap(cohorts[i], cohorts[j]))
		}
	}

	result.TotalUniquePatients = union.Cardinality()
	if len(cohorts) >= 2 {
		result.CommonToAll = intersection.Cardinality()
	}
	return result
}

func overlap(first, second *Cohort) Overlap {
	a, b := first.ids(), second.ids()
	shared := a.Intersect(b)
	combined := a.Union(b)
	return Overlap{
		CohortIDs:         [2]string{first.ID, second.ID},
		OverlapCount:      shared.Cardinality(),
		OverlapPercentage: percentage(shared.Cardinality(), combined.Cardinality()),
		UniqueToFirst:     a.Difference(b).Cardinality(),
		UniqueToSecond:    b.Difference(a).Cardinality(),
	}
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
