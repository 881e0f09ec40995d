// Package namespace implements the Namespace Store.
//
// A namespace name stays reserved after removal, so a removed tenant can not
// be recreated under the same name. Renaming a namespace rewrites the
// namespace column of every row that belongs to it.
package namespace

import (
	"context"

	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
)

const column = "namespace"

// Input carries the fields of a new namespace.
type Input struct {
	Namespace   string `json:"namespace" validate:"required,min=1,max=128"`
	Description string `json:"description" validate:"max=255"`
}

// Patch carries the fields of a partial update. Nil fields are left unchanged.
type Patch struct {
	Namespace   *string `json:"namespace" validate:"omitempty,min=1,max=128"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

func (p Patch) changes() map[string]any {
	c := map[string]any{}

	if p.Namespace != nil {
		c[column] = *p.Namespace
	}

	if p.Description != nil {
		c["description"] = *p.Description
	}

	return c
}

// Store persists namespaces.
type Store struct {
	repo *repository.Repository[models.Namespace, *models.Namespace]
}

// New creates a namespace Store on db.
func New(db *gorm.DB) *Store {
	return &Store{
		repo: repository.New[models.Namespace, *models.Namespace](db, repository.Policy[models.Namespace]{
			Entity:  "namespace",
			Mutable: []string{column, "description"},
			Unique: func(tx *gorm.DB, rec *models.Namespace) *gorm.DB {
				return tx.Where(map[string]any{column: rec.Namespace})
			},
			UniqueIncludesDeleted: true,
			Describe: func(rec *models.Namespace) string {
				return rec.Namespace
			},
			Cascade: cascadeRename,
		}),
	}
}

// cascadeRename moves every row of the old namespace, removed ones included.
func cascadeRename(tx *gorm.DB, before, after *models.Namespace) error {
	for _, model := range []models.Record{
		&models.User{},
		&models.Role{},
		&models.Resource{},
		&models.UserRole{},
		&models.RolePermission{},
	} {
		if err := repository.Rename(tx, model, nil, column, before.Namespace, after.Namespace, true); err != nil {
			return err
		}
	}

	return nil
}

// Create stores a new namespace.
func (s *Store) Create(ctx context.Context, in Input) (*models.Namespace, error) {
	return s.repo.Create(ctx, &models.Namespace{
		Namespace:   in.Namespace,
		Description: in.Description,
	})
}

// FindAll lists namespaces. Filter.Namespace narrows to one name.
func (s *Store) FindAll(ctx context.Context, f repository.Filter) ([]models.Namespace, error) {
	return s.repo.FindAll(ctx, f)
}

// Count counts the namespaces matching f.
func (s *Store) Count(ctx context.Context, f repository.Filter) (int64, error) {
	return s.repo.Count(ctx, f)
}

// FindOne returns the live namespace with id.
func (s *Store) FindOne(ctx context.Context, id uint64) (*models.Namespace, error) {
	return s.repo.FindOne(ctx, id)
}

// FindByName returns the live namespace called name.
func (s *Store) FindByName(ctx context.Context, name string) (*models.Namespace, error) {
	return s.repo.FindBy(ctx, map[string]any{column: name})
}

// Update applies p to the live namespace with id.
func (s *Store) Update(ctx context.Context, id uint64, p Patch) (*models.Namespace, error) {
	return s.repo.Update(ctx, id, p.changes())
}

// Remove soft deletes the namespace. Records inside it are kept.
func (s *Store) Remove(ctx context.Context, id uint64) error {
	return s.repo.Remove(ctx, id)
}
