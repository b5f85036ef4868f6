package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// opKind discriminates staged write operations
type opKind int

const (
	opAdd opKind = iota
	opUpdate
	opDelete
)

// stagedOp is one pending write, recorded in staging order
type stagedOp struct {
	kind   opKind
	entity any
}

// staging collects pending writes across all repositories of one unit of
// work, preserving the order in which they were staged.
type staging struct {
	ops []stagedOp
}

func (s *staging) append(kind opKind, entity any) {
	s.ops = append(s.ops, stagedOp{kind: kind, entity: entity})
}

func (s *staging) clear() {
	s.ops = nil
}

// GormRepository implements shared.Repository for one entity type on top
// of GORM. Reads run immediately; writes are staged into the owning unit
// of work and flushed by its Complete call.
type GormRepository[T any] struct {
	db    *gorm.DB
	stage *staging
}

// NewGormRepository creates a repository bound to a staging queue. The
// queue is normally owned by a UnitOfWork; tests may supply their own.
func NewGormRepository[T any](db *gorm.DB, stage *staging) *GormRepository[T] {
	return &GormRepository[T]{db: db, stage: stage}
}

// GetByID finds an entity by primary key
func (r *GormRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindOne returns the first entity matching an ad-hoc filter clause
func (r *GormRepository[T]) FindOne(ctx context.Context, clause string, args ...any) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where(clause, args...).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FirstBySpec returns the first entity matching the specification
func (r *GormRepository[T]) FirstBySpec(ctx context.Context, spec shared.Specification[T]) (*T, error) {
	var entity T
	query := ApplySpecification(r.db.WithContext(ctx).Model(new(T)), spec)
	if err := query.First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// ListAll returns every entity of the type
func (r *GormRepository[T]) ListAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// ListBySpec returns the entities matching the specification
func (r *GormRepository[T]) ListBySpec(ctx context.Context, spec shared.Specification[T]) ([]T, error) {
	var entities []T
	query := ApplySpecification(r.db.WithContext(ctx).Model(new(T)), spec)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// CountBySpec counts entities matching the specification's filter
func (r *GormRepository[T]) CountBySpec(ctx context.Context, spec shared.Specification[T]) (int64, error) {
	var count int64
	query := ApplySpecificationForCount(r.db.WithContext(ctx).Model(new(T)), spec)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySpec reports whether any entity matches the specification's filter
func (r *GormRepository[T]) ExistsBySpec(ctx context.Context, spec shared.Specification[T]) (bool, error) {
	count, err := r.CountBySpec(ctx, spec)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add stages an insert
func (r *GormRepository[T]) Add(entity *T) {
	r.stage.append(opAdd, entity)
}

// AddRange stages inserts for several entities
func (r *GormRepository[T]) AddRange(entities []*T) {
	for _, entity := range entities {
		r.stage.append(opAdd, entity)
	}
}

// Update stages an update
func (r *GormRepository[T]) Update(entity *T) {
	r.stage.append(opUpdate, entity)
}

// Delete stages a delete
func (r *GormRepository[T]) Delete(entity *T) {
	r.stage.append(opDelete, entity)
}

// DeleteRange stages deletes for several entities
func (r *GormRepository[T]) DeleteRange(entities []*T) {
	for _, entity := range entities {
		r.stage.append(opDelete, entity)
	}
}

// Ensure GormRepository implements shared.Repository
var _ shared.Repository[struct{}] = (*GormRepository[struct{}])(nil)
