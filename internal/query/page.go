// Package query turns generic pagination and filter parameters into
// store-specific queries: parameterized SQL fragments for Postgres and
// filter documents for MongoDB.
package query

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Page struct {
	Skip  int
	Limit int
}

// NewPage clamps limit into [1, MaxLimit] (0 means "use default") and
// treats a negative skip as 0, so every page request is well-formed.
func NewPage(skip, limit int) Page {
	if skip < 0 {
		skip = 0
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Skip: skip, Limit: limit}
}
