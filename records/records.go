// Package records defines the tabular patient data model consumed by the
// filter and cohort engines: heterogeneous field-to-value records, per-field
// column types and the logical-to-stored column name indirection.
package records

import (
	"fmt"
	"strconv"
)

// PatientIDField is the canonical identifier column of a dataset.
const PatientIDField = "patient_id"

// Record is a single patient row. Values are numbers, strings, date-like
// values or nil, depending on the source dataset.
type Record map[string]any

// PatientID returns the record's identifier, falling back to a synthetic
// positional id when the identifier column is absent or empty. The index must
// be the record's position in the master dataset so that synthetic ids remain
// stable across evaluations.
func PatientID(record Record, index int) string {
	if v, ok := record[PatientIDField]; ok && !IsEmpty(v) {
		switch id := v.(type) {
		case string:
			return id
		case float64:
			// CSV and spreadsheet ingestion often widens integer ids to floats
			if id == float64(int64(id)) {
				return strconv.FormatInt(int64(id), 10)
			}
			return strconv.FormatFloat(id, 'f', -1, 64)
		default:
			return fmt.Sprintf("%v", v)
		}
	}
	return fmt.Sprintf("patient-%d", index)
}
