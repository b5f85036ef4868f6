package shared

// SortDirection is the direction of a specification ordering.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Criterion is a single filter clause with positional arguments.
type Criterion struct {
	Clause string
	Args   []any
}

// Specification describes a query over one entity type: filter criteria,
// eager-load relations, at most one ordering key, and optional paging.
//
// A Specification is an immutable value; every builder method returns a
// modified copy, so a base specification can be shared and specialized
// safely. Evaluation against a store happens elsewhere; the specification
// itself is storage-agnostic and testable in isolation.
type Specification[T any] struct {
	criteria []Criterion
	includes []string
	orderKey string
	orderDir SortDirection
	ordered  bool
	skip     int
	take     int
	paged    bool
}

// NewSpecification returns an empty specification matching all entities.
func NewSpecification[T any]() Specification[T] {
	return Specification[T]{}
}

// Where adds a filter clause. Multiple clauses combine with AND.
func (s Specification[T]) Where(clause string, args ...any) Specification[T] {
	criteria := make([]Criterion, len(s.criteria), len(s.criteria)+1)
	copy(criteria, s.criteria)
	s.criteria = append(criteria, Criterion{Clause: clause, Args: args})
	return s
}

// Include adds a relation to eager-load.
func (s Specification[T]) Include(relation string) Specification[T] {
	includes := make([]string, len(s.includes), len(s.includes)+1)
	copy(includes, s.includes)
	s.includes = append(includes, relation)
	return s
}

// OrderBy sets the ordering key and direction. A specification carries at
// most one ordering; a later call replaces the earlier one.
func (s Specification[T]) OrderBy(key string, dir SortDirection) Specification[T] {
	s.orderKey = key
	s.orderDir = dir
	s.ordered = true
	return s
}

// Page sets paging as a skip count and a take count.
func (s Specification[T]) Page(skip, take int) Specification[T] {
	s.skip = skip
	s.take = take
	s.paged = true
	return s
}

// WithoutPaging returns a copy with paging removed, keeping filter,
// includes and ordering. Used to compute total counts for pagination.
func (s Specification[T]) WithoutPaging() Specification[T] {
	s.skip = 0
	s.take = 0
	s.paged = false
	return s
}

// Criteria returns the filter clauses in the order they were added.
func (s Specification[T]) Criteria() []Criterion {
	return s.criteria
}

// Includes returns the relations to eager-load.
func (s Specification[T]) Includes() []string {
	return s.includes
}

// Ordering returns the ordering key and direction; ok is false when the
// specification carries no ordering.
func (s Specification[T]) Ordering() (key string, dir SortDirection, ok bool) {
	return s.orderKey, s.orderDir, s.ordered
}

// Paging returns the skip and take counts; ok is false when the
// specification carries no paging.
func (s Specification[T]) Paging() (skip, take int, ok bool) {
	return s.skip, s.take, s.paged
}
