package domain

// Predicate expresses a simple filter clause against a collection field.
type Predicate struct {
	Field string `json:"field"`
	Op    string `json:"op"` // eq, like, contains
	Value any    `json:"value"`
}

// Eq builds an equality predicate.
func Eq(field string, value any) Predicate {
	return Predicate{Field: field, Op: "eq", Value: value}
}

// Like builds a case-insensitive substring predicate.
func Like(field string, value any) Predicate {
	return Predicate{Field: field, Op: "like", Value: value}
}

// Contains builds a JSON-array membership predicate.
func Contains(field string, value any) Predicate {
	return Predicate{Field: field, Op: "contains", Value: value}
}
