package records

// Mapping translates logical column names to the names actually present in
// the dataset. Datasets uploaded by different enterprises rarely agree on
// column naming, so filters are authored against logical names and resolved
// through a mapping at evaluation time.
type Mapping map[string]string

// Resolver performs the logical-to-stored name lookup. The zero value is the
// identity resolver.
type Resolver struct {
	mapping Mapping
}

func NewResolver(mapping Mapping) Resolver {
	return Resolver{mapping: mapping}
}

// Resolve returns the stored name for a logical column name, or the logical
// name unchanged when no mapping entry exists. There is no failure mode.
func (r Resolver) Resolve(logical string) string {
	if actual, ok := r.mapping[logical]; ok {
		return actual
	}
	return logical
}

// Value reads the record value for a logical column name.
func (r Resolver) Value(record Record, logical string) any {
	return record[r.Resolve(logical)]
}
