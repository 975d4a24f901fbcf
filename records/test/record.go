package test

import (
	"time"

	"github.com/kognitoai/cohort/records"
	"github.com/kognitoai/cohort/test"
)

// DefaultColumns is the column schema used by the random dataset fixtures.
func DefaultColumns() records.Columns {
	return records.Columns{
		records.PatientIDField: records.ColumnTypeString,
		"age":                  records.ColumnTypeNumber,
		"ldh":                  records.ColumnTypeNumber,
		"diagnosis":            records.ColumnTypeCategorical,
		"enrollment_date":      records.ColumnTypeDate,
		"site":                 records.ColumnTypeString,
	}
}

var diagnoses = []string{"DLBCL", "FL", "MCL", "CLL"}

// RandomRecord generates a fully populated record matching DefaultColumns.
func RandomRecord() records.Record {
	return records.Record{
		records.PatientIDField: test.Faker.UUID().V4(),
		"age":                  float64(test.Faker.IntBetween(18, 90)),
		"ldh":                  float64(test.Faker.IntBetween(100, 600)),
		"diagnosis":            test.Sample(diagnoses),
		"enrollment_date":      test.Faker.Time().ISO8601(time.Now())[:10],
		"site":                 test.Faker.Company().Name(),
	}
}

// RandomDataset generates n fully populated records.
func RandomDataset(n int) []records.Record {
	recs := make([]records.Record, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, RandomRecord())
	}
	return recs
}
