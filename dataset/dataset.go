// Package dataset materializes tabular patient data from CSV and XLSX
// uploads into the in-memory record form the filter engine consumes, and
// infers per-column types from the observed values.
package dataset

import (
	"errors"

	"github.com/kognitoai/cohort/records"
)

var (
	ErrNoHeader    = errors.New("dataset has no header row")
	ErrNoSheets    = errors.New("workbook has no sheets")
	ErrRaggedTable = errors.New("row width does not match header")
)

// Dataset is a materialized table: the master record set, the inferred
// column types, and the header in source order.
type Dataset struct {
	Fields  []string
	Columns records.Columns
	Records []records.Record
}

// materialize converts a raw string table into typed records using the
// inferred column types. Number cells become float64, everything else stays
// a string; empty cells become nil so presence tests work uniformly.
func materialize(fields []string, rows [][]string) *Dataset {
	columns := inferColumns(fields, rows)

	recs := make([]records.Record, 0, len(rows))
	for _, row := range rows {
		record := make(records.Record, len(fields))
		for i, field := range fields {
			record[field] = cellValue(row[i], columns[field])
		}
		recs = append(recs, record)
	}

	return &Dataset{
		Fields:  fields,
		Columns: columns,
		Records: recs,
	}
}

func cellValue(raw string, columnType records.ColumnType) any {
	if records.IsEmpty(raw) {
		return nil
	}
	if columnType == records.ColumnTypeNumber {
		if f, ok := records.Float64(raw); ok {
			return f
		}
	}
	return raw
}
