package shared

import (
	"context"
)

// Repository is the base interface for all repositories.
//
// Reads execute immediately against the store. Writes (Add, Update, Delete
// and their range variants) are staged in the owning unit of work and only
// become durable when UnitOfWork.Complete is called. The repository is
// parameterized purely by entity type; entity-specific query shaping is
// expressed through Specifications supplied by callers.
type Repository[T any] interface {
	// GetByID looks an entity up by primary key. Returns ErrNotFound when
	// absent. This is a primary-key index path, independent of the
	// specification mechanism.
	GetByID(ctx context.Context, id int64) (*T, error)

	// FindOne returns the first entity matching an ad-hoc filter clause,
	// or ErrNotFound.
	FindOne(ctx context.Context, clause string, args ...any) (*T, error)

	// FirstBySpec returns the first entity matching the specification,
	// honouring its includes and ordering, or ErrNotFound.
	FirstBySpec(ctx context.Context, spec Specification[T]) (*T, error)

	// ListAll returns every entity of the type.
	ListAll(ctx context.Context) ([]T, error)

	// ListBySpec returns the entities matching the specification.
	ListBySpec(ctx context.Context, spec Specification[T]) ([]T, error)

	// CountBySpec counts entities matching the specification's filter,
	// ignoring its paging.
	CountBySpec(ctx context.Context, spec Specification[T]) (int64, error)

	// ExistsBySpec reports whether any entity matches the specification's
	// filter.
	ExistsBySpec(ctx context.Context, spec Specification[T]) (bool, error)

	// Add stages an insert.
	Add(entity *T)

	// AddRange stages inserts for several entities.
	AddRange(entities []*T)

	// Update stages an update of an already-persisted entity.
	Update(entity *T)

	// Delete stages a delete.
	Delete(entity *T)

	// DeleteRange stages deletes for several entities.
	DeleteRange(entities []*T)
}

// UnitOfWork is the transactional boundary for staged repository writes.
// Complete flushes everything staged since the previous call as a single
// atomic transaction and returns the number of affected rows; zero means
// nothing was persisted, which callers treat as a failure signal.
type UnitOfWork interface {
	Complete(ctx context.Context) (int64, error)
}

// Paginated represents one page of a query result together with the total
// count across all pages.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result. A non-positive page size is
// treated as one page holding everything.
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if pageSize <= 0 {
		pageSize = int(total)
		if pageSize < 1 {
			pageSize = 1
		}
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
