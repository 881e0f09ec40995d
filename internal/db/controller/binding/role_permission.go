package binding

import (
	"context"

	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
)

// RolePermissionInput carries the fields of a new permission.
type RolePermissionInput struct {
	Namespace   string `json:"namespace" validate:"required,min=1,max=128"`
	Role        string `json:"role" validate:"required,min=1,max=255"`
	Resource    string `json:"resource" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=255"`
}

// RolePermissionPatch carries the fields of a partial update.
type RolePermissionPatch struct {
	Role        *string `json:"role" validate:"omitempty,min=1,max=255"`
	Resource    *string `json:"resource" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

func (p RolePermissionPatch) changes() map[string]any {
	c := map[string]any{}

	if p.Role != nil {
		c[columnRole] = *p.Role
	}

	if p.Resource != nil {
		c[columnResource] = *p.Resource
	}

	if p.Description != nil {
		c["description"] = *p.Description
	}

	return c
}

// RolePermissionStore persists role-permission bindings.
type RolePermissionStore struct {
	repo *repository.Repository[models.RolePermission, *models.RolePermission]
}

// NewRolePermissions creates a RolePermissionStore on db.
func NewRolePermissions(db *gorm.DB) *RolePermissionStore {
	return &RolePermissionStore{
		repo: repository.New[models.RolePermission, *models.RolePermission](db, repository.Policy[models.RolePermission]{
			Entity:  "permission",
			Mutable: []string{columnRole, columnResource, "description"},
			Unique: func(tx *gorm.DB, rec *models.RolePermission) *gorm.DB {
				return tx.Where(map[string]any{
					models.ColumnNamespace: rec.Namespace,
					columnRole:             rec.Role,
					columnResource:         rec.Resource,
				})
			},
			Describe: func(rec *models.RolePermission) string {
				return rec.Namespace + "/" + rec.Role + "->" + rec.Resource
			},
			Validate: func(tx *gorm.DB, rec *models.RolePermission) error {
				return references(tx, rec.Namespace,
					ref{&models.Role{}, columnRole, rec.Role},
					ref{&models.Resource{}, columnResource, rec.Resource},
				)
			},
		}),
	}
}

// Create grants a live resource to a live role.
func (s *RolePermissionStore) Create(ctx context.Context, in RolePermissionInput) (*models.RolePermission, error) {
	return s.repo.Create(ctx, &models.RolePermission{
		Namespace:   in.Namespace,
		Role:        in.Role,
		Resource:    in.Resource,
		Description: in.Description,
	})
}

// FindAll lists permissions.
func (s *RolePermissionStore) FindAll(ctx context.Context, f repository.Filter) ([]models.RolePermission, error) {
	return s.repo.FindAll(ctx, f)
}

// Count counts the permissions matching f.
func (s *RolePermissionStore) Count(ctx context.Context, f repository.Filter) (int64, error) {
	return s.repo.Count(ctx, f)
}

// FindOne returns the live permission with id.
func (s *RolePermissionStore) FindOne(ctx context.Context, id uint64) (*models.RolePermission, error) {
	return s.repo.FindOne(ctx, id)
}

// Update applies p after checking the new references.
func (s *RolePermissionStore) Update(ctx context.Context, id uint64, p RolePermissionPatch) (*models.RolePermission, error) {
	return s.repo.Update(ctx, id, p.changes())
}

// Remove soft deletes the permission.
func (s *RolePermissionStore) Remove(ctx context.Context, id uint64) error {
	return s.repo.Remove(ctx, id)
}
