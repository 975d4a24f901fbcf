package test

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/kognitoai/cohort/cohorts"
	"github.com/kognitoai/cohort/filter"
	"github.com/kognitoai/cohort/test"
)

// RandomCohort generates a cohort with a random name and the given members.
func RandomCohort(patientIDs ...string) *cohorts.Cohort {
	return &cohorts.Cohort{
		ID:         uuid.NewString(),
		Name:       test.Faker.Company().Name() + " Trial",
		Filter:     &filter.Group{Logic: filter.LogicAnd},
		PatientIDs: mapset.NewSet[string](patientIDs...),
	}
}
