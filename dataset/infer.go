package dataset

import (
	"github.com/kognitoai/cohort/records"
)

const (
	// A column is categorical when its distinct non-empty values are few in
	// absolute terms and relative to the number of observations.
	categoricalMaxDistinct = 20
	categoricalMaxRatio    = 0.2
)

// inferColumns derives a column type map from the raw string table:
// number when every non-empty value parses as a number, date when every
// non-empty value parses as a calendar day, categorical for low-cardinality
// string columns, string otherwise. Columns with no observed values default
// to string.
func inferColumns(fields []string, rows [][]string) records.Columns {
	columns := make(records.Columns, len(fields))
	for i, field := range fields {
		columns[field] = inferColumn(i, rows)
	}
	return columns
}

func inferColumn(index int, rows [][]string) records.ColumnType {
	allNumbers := true
	allDays := true
	distinct := make(map[string]struct{})
	observed := 0

	for _, row := range rows {
		raw := row[index]
		if records.IsEmpty(raw) {
			continue
		}
		observed++
		distinct[raw] = struct{}{}

		if _, ok := records.Float64(raw); !ok {
			allNumbers = false
		}
		if _, ok := records.Day(raw); !ok {
			allDays = false
		}
	}

	if observed == 0 {
		return records.ColumnTypeString
	}
	if allNumbers {
		return records.ColumnTypeNumber
	}
	if allDays {
		return records.ColumnTypeDate
	}
	if len(distinct) <= categoricalMaxDistinct &&
		float64(len(distinct))/float64(observed) <= categoricalMaxRatio {
		return records.ColumnTypeCategorical
	}
	return records.ColumnTypeString
}
