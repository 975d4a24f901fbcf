package filter

import (
	"github.com/kognitoai/cohort/records"
)

// RemoveDirty drops every record that has at least one empty value among the
// tracked columns, resolving each column through the supplied resolver.
// The relative order of the surviving records is preserved. This pre-pass
// always runs before rule evaluation, never after.
func RemoveDirty(recs []records.Record, columns records.Columns, resolver records.Resolver) []records.Record {
	clean := make([]records.Record, 0, len(recs))
	for _, record := range recs {
		if !isDirty(record, columns, resolver) {
			clean = append(clean, record)
		}
	}
	return clean
}

func isDirty(record records.Record, columns records.Columns, resolver records.Resolver) bool {
	for field := range columns {
		if records.IsEmpty(resolver.Value(record, field)) {
			return true
		}
	}
	return false
}
