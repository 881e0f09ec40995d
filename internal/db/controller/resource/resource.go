// Package resource implements the Resource Store.
package resource

import (
	"context"

	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
)

const column = "resource"

// Input carries the fields of a new resource.
type Input struct {
	Namespace   string `json:"namespace" validate:"required,min=1,max=128"`
	Resource    string `json:"resource" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=255"`
	Type        string `json:"type" validate:"max=64"`
}

// Patch carries the fields of a partial update.
type Patch struct {
	Resource    *string `json:"resource" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Type        *string `json:"type" validate:"omitempty,max=64"`
}

func (p Patch) changes() map[string]any {
	c := map[string]any{}

	if p.Resource != nil {
		c[column] = *p.Resource
	}

	if p.Description != nil {
		c["description"] = *p.Description
	}

	if p.Type != nil {
		c["type"] = *p.Type
	}

	return c
}

// Store persists resources.
type Store struct {
	repo *repository.Repository[models.Resource, *models.Resource]
}

// New creates a resource Store on db.
func New(db *gorm.DB) *Store {
	return &Store{
		repo: repository.New[models.Resource, *models.Resource](db, repository.Policy[models.Resource]{
			Entity:  column,
			Mutable: []string{column, "description", "type"},
			Unique: func(tx *gorm.DB, rec *models.Resource) *gorm.DB {
				return tx.Where(map[string]any{models.ColumnNamespace: rec.Namespace, column: rec.Resource})
			},
			Describe: func(rec *models.Resource) string {
				return rec.Namespace + "/" + rec.Resource
			},
			Validate: func(tx *gorm.DB, rec *models.Resource) error {
				return repository.Exists(tx, &models.Namespace{}, map[string]any{models.ColumnNamespace: rec.Namespace})
			},
			Cascade: func(tx *gorm.DB, before, after *models.Resource) error {
				return repository.Rename(tx, &models.RolePermission{},
					map[string]any{models.ColumnNamespace: before.Namespace},
					column, before.Resource, after.Resource, false)
			},
		}),
	}
}

// Create stores a new resource in an existing namespace.
func (s *Store) Create(ctx context.Context, in Input) (*models.Resource, error) {
	return s.repo.Create(ctx, &models.Resource{
		Namespace:   in.Namespace,
		Resource:    in.Resource,
		Description: in.Description,
		Type:        in.Type,
	})
}

// FindAll lists resources.
func (s *Store) FindAll(ctx context.Context, f repository.Filter) ([]models.Resource, error) {
	return s.repo.FindAll(ctx, f)
}

// Count counts the resources matching f.
func (s *Store) Count(ctx context.Context, f repository.Filter) (int64, error) {
	return s.repo.Count(ctx, f)
}

// FindOne returns the live resource with id.
func (s *Store) FindOne(ctx context.Context, id uint64) (*models.Resource, error) {
	return s.repo.FindOne(ctx, id)
}

// Update applies p. A rename is carried over to live permissions.
func (s *Store) Update(ctx context.Context, id uint64, p Patch) (*models.Resource, error) {
	return s.repo.Update(ctx, id, p.changes())
}

// Remove soft deletes the resource. Permissions granting it are left untouched.
func (s *Store) Remove(ctx context.Context, id uint64) error {
	return s.repo.Remove(ctx, id)
}
