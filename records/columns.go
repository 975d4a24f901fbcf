package records

// ColumnType governs which comparison semantics apply to a field.
type ColumnType string

const (
	ColumnTypeNumber      ColumnType = "number"
	ColumnTypeString      ColumnType = "string"
	ColumnTypeDate        ColumnType = "date"
	ColumnTypeCategorical ColumnType = "categorical"
)

// Columns maps a column name, as stored in the dataset, to its declared type.
type Columns map[string]ColumnType

// TypeOf returns the declared type for a field, defaulting to string for
// undeclared fields.
func (c Columns) TypeOf(field string) ColumnType {
	if t, ok := c[field]; ok {
		return t
	}
	return ColumnTypeString
}
