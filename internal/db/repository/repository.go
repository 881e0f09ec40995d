// Package repository implements the soft delete aware CRUD used by every ACL store.
package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
)

// Filter narrows FindAll and Count.
// The zero Filter selects every live row of every namespace.
type Filter struct {
	Namespace      string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// Policy describes the entity specific rules of a Repository.
type Policy[T any] struct {
	// Entity names the records in error messages.
	Entity string
	// Mutable lists the columns Update may write.
	Mutable []string
	// Unique narrows tx to the rows colliding with rec. Nil disables the check.
	Unique func(tx *gorm.DB, rec *T) *gorm.DB
	// UniqueIncludesDeleted extends the collision check to removed rows.
	UniqueIncludesDeleted bool
	// Describe renders the unique key of rec for error messages.
	Describe func(rec *T) string
	// Validate checks references of rec inside the write transaction.
	Validate func(tx *gorm.DB, rec *T) error
	// Cascade is called after an update with the row before and after the write.
	Cascade func(tx *gorm.DB, before, after *T) error
}

// Repository is the generic store of one table.
type Repository[T any, P interface {
	*T
	models.Record
}] struct {
	db     *gorm.DB
	policy Policy[T]
}

// New creates a repository for T.
func New[T any, P interface {
	*T
	models.Record
}](db *gorm.DB, policy Policy[T]) *Repository[T, P] {
	return &Repository[T, P]{db: db, policy: policy}
}

// DB returns the underlying connection.
func (r *Repository[T, P]) DB() *gorm.DB {
	return r.db
}

func (r *Repository[T, P]) conn(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, ErrDBNil
	}

	return r.db.WithContext(ctx), nil
}

// Create inserts rec. References and unique keys are checked in the same transaction.
func (r *Repository[T, P]) Create(ctx context.Context, rec *T) (*T, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := r.check(tx, rec, 0); err != nil {
			return err
		}

		return r.translate(tx.Create(rec).Error, rec)
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// FindAll lists rows ordered by id.
func (r *Repository[T, P]) FindAll(ctx context.Context, f Filter) ([]T, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	var list []T

	q := r.scope(db, f).Order(models.ColumnID)
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.policy.Entity, err)
	}

	return list, nil
}

// Count returns the number of rows matching f, ignoring Limit and Offset.
func (r *Repository[T, P]) Count(ctx context.Context, f Filter) (int64, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.scope(db, f).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", r.policy.Entity, err)
	}

	return total, nil
}

// FindOne returns the live row with id.
func (r *Repository[T, P]) FindOne(ctx context.Context, id uint64) (*T, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	return r.first(db, id)
}

// FindBy returns the first live row matching the column conditions.
func (r *Repository[T, P]) FindBy(ctx context.Context, conds map[string]any) (*T, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	var rec T

	err = db.Where(conds).Order(models.ColumnID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, r.policy.Entity)
	}

	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.policy.Entity, err)
	}

	return &rec, nil
}

// Update writes the mutable columns of changes to the live row with id and
// stamps update_time. Unknown and immutable columns are ignored.
// The patched row is validated before the write and cascaded before commit.
func (r *Repository[T, P]) Update(ctx context.Context, id uint64, changes map[string]any) (*T, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	values := r.mutable(changes)
	if len(values) == 0 {
		return nil, ErrNoChanges
	}

	var after *T

	err = db.Transaction(func(tx *gorm.DB) error {
		current, err := r.first(tx, id)
		if err != nil {
			return err
		}

		before, candidate := *current, *current
		if err := apply(tx, &candidate, values); err != nil {
			return err
		}

		if err := r.check(tx, &candidate, id); err != nil {
			return err
		}

		values[models.ColumnUpdateTime] = tx.NowFunc().Unix()

		if err := r.translate(tx.Model(P(current)).UpdateColumns(values).Error, &candidate); err != nil {
			return err
		}

		if after, err = r.first(tx, id); err != nil {
			return err
		}

		if r.policy.Cascade != nil {
			return r.policy.Cascade(tx, &before, after)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return after, nil
}

// Remove soft deletes the row with id by stamping delete_time, see deleteStamp.
// Removing a removed row keeps its first delete_time. Unknown ids yield ErrNotFound.
func (r *Repository[T, P]) Remove(ctx context.Context, id uint64) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var rec T

		err := tx.Unscoped().First(&rec, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s %d", ErrNotFound, r.policy.Entity, id)
		}

		if err != nil {
			return fmt.Errorf("find %s: %w", r.policy.Entity, err)
		}

		if P(&rec).IsDeleted() {
			return nil
		}

		now := tx.NowFunc().Unix()

		stamp, err := r.deleteStamp(tx, &rec, now)
		if err != nil {
			return err
		}

		err = tx.Model(P(&rec)).UpdateColumns(map[string]any{
			models.ColumnDeleteTime: stamp,
			models.ColumnUpdateTime: now,
		}).Error
		if err != nil {
			return fmt.Errorf("remove %s: %w", r.policy.Entity, err)
		}

		return nil
	})
}

func (r *Repository[T, P]) scope(db *gorm.DB, f Filter) *gorm.DB {
	q := db.Model(P(new(T)))
	if f.IncludeDeleted {
		q = q.Unscoped()
	}

	if f.Namespace != "" {
		q = q.Where(map[string]any{models.ColumnNamespace: f.Namespace})
	}

	return q
}

func (r *Repository[T, P]) first(db *gorm.DB, id uint64) (*T, error) {
	var rec T

	err := db.First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, r.policy.Entity, id)
	}

	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.policy.Entity, err)
	}

	return &rec, nil
}

// deleteStamp returns the delete_time for removing rec at now.
// The live unique indexes include delete_time, so a key removed again within
// the same second gets one past the latest delete_time of its removed rows.
func (r *Repository[T, P]) deleteStamp(tx *gorm.DB, rec *T, now int64) (int64, error) {
	if r.policy.Unique == nil || r.policy.UniqueIncludesDeleted {
		return now, nil
	}

	q := r.policy.Unique(tx.Session(&gorm.Session{NewDB: true}).Unscoped().Model(P(new(T))), rec).
		Where(models.ColumnDeleteTime + " <> 0")

	var latest int64
	if err := q.Select("COALESCE(MAX(" + models.ColumnDeleteTime + "), 0)").Scan(&latest).Error; err != nil {
		return 0, fmt.Errorf("check %s removals: %w", r.policy.Entity, err)
	}

	if latest >= now {
		return latest + 1, nil
	}

	return now, nil
}

// check runs reference validation and the unique key probe for rec.
// self excludes the row being updated from the probe.
func (r *Repository[T, P]) check(tx *gorm.DB, rec *T, self uint64) error {
	if r.policy.Validate != nil {
		if err := r.policy.Validate(tx, rec); err != nil {
			return err
		}
	}

	if r.policy.Unique == nil {
		return nil
	}

	q := tx.Session(&gorm.Session{NewDB: true}).Model(P(new(T)))
	if r.policy.UniqueIncludesDeleted {
		q = q.Unscoped()
	}

	q = r.policy.Unique(q, rec)
	if self != 0 {
		q = q.Where(models.ColumnID+" <> ?", self)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("check %s: %w", r.policy.Entity, err)
	}

	if n > 0 {
		return r.conflict(rec)
	}

	return nil
}

// apply copies column values onto rec so it can be checked before the write.
func apply[T any](tx *gorm.DB, rec *T, values map[string]any) error {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(rec); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	target := reflect.ValueOf(rec).Elem()

	for col, v := range values {
		field := stmt.Schema.LookUpField(col)
		if field == nil {
			return fmt.Errorf("unknown column %q", col)
		}

		if err := field.Set(tx.Statement.Context, target, v); err != nil {
			return fmt.Errorf("set %s: %w", col, err)
		}
	}

	return nil
}

func (r *Repository[T, P]) mutable(changes map[string]any) map[string]any {
	values := make(map[string]any, len(changes)+1)

	for _, col := range r.policy.Mutable {
		if v, ok := changes[col]; ok {
			values[col] = v
		}
	}

	return values
}

// translate maps driver level unique violations to ErrConflict.
func (r *Repository[T, P]) translate(err error, rec *T) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return r.conflict(rec)
	default:
		return fmt.Errorf("write %s: %w", r.policy.Entity, err)
	}
}

func (r *Repository[T, P]) conflict(rec *T) error {
	if r.policy.Describe != nil {
		return fmt.Errorf("%w: %s %s", ErrConflict, r.policy.Entity, r.policy.Describe(rec))
	}

	return fmt.Errorf("%w: %s", ErrConflict, r.policy.Entity)
}
