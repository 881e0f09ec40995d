// Package role implements the Role Store.
package role

import (
	"context"

	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
)

const column = "role"

// Input carries the fields of a new role.
type Input struct {
	Namespace   string `json:"namespace" validate:"required,min=1,max=128"`
	Role        string `json:"role" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=255"`
}

// Patch carries the fields of a partial update. The namespace of a role is fixed.
type Patch struct {
	Role        *string `json:"role" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

func (p Patch) changes() map[string]any {
	c := map[string]any{}

	if p.Role != nil {
		c[column] = *p.Role
	}

	if p.Description != nil {
		c["description"] = *p.Description
	}

	return c
}

// Store persists roles.
type Store struct {
	repo *repository.Repository[models.Role, *models.Role]
}

// New creates a role Store on db.
func New(db *gorm.DB) *Store {
	return &Store{
		repo: repository.New[models.Role, *models.Role](db, repository.Policy[models.Role]{
			Entity:  column,
			Mutable: []string{column, "description"},
			Unique: func(tx *gorm.DB, rec *models.Role) *gorm.DB {
				return tx.Where(map[string]any{models.ColumnNamespace: rec.Namespace, column: rec.Role})
			},
			Describe: func(rec *models.Role) string {
				return rec.Namespace + "/" + rec.Role
			},
			Validate: func(tx *gorm.DB, rec *models.Role) error {
				return repository.Exists(tx, &models.Namespace{}, map[string]any{models.ColumnNamespace: rec.Namespace})
			},
			Cascade: func(tx *gorm.DB, before, after *models.Role) error {
				scope := map[string]any{models.ColumnNamespace: before.Namespace}

				if err := repository.Rename(tx, &models.UserRole{}, scope, column, before.Role, after.Role, false); err != nil {
					return err
				}

				return repository.Rename(tx, &models.RolePermission{}, scope, column, before.Role, after.Role, false)
			},
		}),
	}
}

// Create stores a new role in an existing namespace.
func (s *Store) Create(ctx context.Context, in Input) (*models.Role, error) {
	return s.repo.Create(ctx, &models.Role{
		Namespace:   in.Namespace,
		Role:        in.Role,
		Description: in.Description,
	})
}

// FindAll lists roles.
func (s *Store) FindAll(ctx context.Context, f repository.Filter) ([]models.Role, error) {
	return s.repo.FindAll(ctx, f)
}

// Count counts the roles matching f.
func (s *Store) Count(ctx context.Context, f repository.Filter) (int64, error) {
	return s.repo.Count(ctx, f)
}

// FindOne returns the live role with id.
func (s *Store) FindOne(ctx context.Context, id uint64) (*models.Role, error) {
	return s.repo.FindOne(ctx, id)
}

// Update applies p. A rename is carried over to the live bindings of the role.
func (s *Store) Update(ctx context.Context, id uint64, p Patch) (*models.Role, error) {
	return s.repo.Update(ctx, id, p.changes())
}

// Remove soft deletes the role. Its bindings are left untouched.
func (s *Store) Remove(ctx context.Context, id uint64) error {
	return s.repo.Remove(ctx, id)
}
