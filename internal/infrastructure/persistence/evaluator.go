package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// ApplySpecification turns a base query plus a Specification into a
// filtered, eager-loaded, ordered and paged query, in that fixed order.
//
// When the specification carries no ordering, a deterministic primary-key
// ordering is applied so that paging stays stable across calls. Paging past
// the end of the result set simply yields an empty page.
func ApplySpecification[T any](db *gorm.DB, spec shared.Specification[T]) *gorm.DB {
	query := applyCriteria(db, spec.Criteria())

	for _, relation := range spec.Includes() {
		query = query.Preload(relation)
	}

	if key, dir, ok := spec.Ordering(); ok {
		query = query.Order(orderClause(key, dir))
	} else {
		query = query.Order("id ASC")
	}

	if skip, take, ok := spec.Paging(); ok {
		query = query.Offset(skip).Limit(take)
	}

	return query
}

// ApplySpecificationForCount applies only the specification's filter,
// skipping includes, ordering and paging. Used to produce the total count
// backing pagination metadata.
func ApplySpecificationForCount[T any](db *gorm.DB, spec shared.Specification[T]) *gorm.DB {
	return applyCriteria(db, spec.Criteria())
}

func applyCriteria(db *gorm.DB, criteria []shared.Criterion) *gorm.DB {
	query := db
	for _, c := range criteria {
		query = query.Where(c.Clause, c.Args...)
	}
	return query
}

// orderClause builds an ORDER BY fragment from a sanitized column key.
// The key is validated against identifier syntax so caller-supplied sort
// parameters cannot inject SQL.
func orderClause(key string, dir shared.SortDirection) string {
	column := sanitizeColumn(key)
	if dir == shared.SortDescending {
		return fmt.Sprintf("%s DESC", column)
	}
	return fmt.Sprintf("%s ASC", column)
}

// sanitizeColumn reduces a sort key to a safe SQL identifier, falling back
// to the primary key for anything that is not one.
func sanitizeColumn(key string) string {
	if key == "" {
		return "id"
	}
	for _, r := range key {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_') {
			return "id"
		}
	}
	return key
}
