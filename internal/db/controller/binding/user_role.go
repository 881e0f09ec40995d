package binding

import (
	"context"

	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
)

// UserRoleInput carries the fields of a new user-role binding.
type UserRoleInput struct {
	Namespace string `json:"namespace" validate:"required,min=1,max=128"`
	User      string `json:"user" validate:"required,min=2,max=255"`
	Role      string `json:"role" validate:"required,min=1,max=255"`
}

// UserRolePatch moves a binding to another user or role of the same namespace.
type UserRolePatch struct {
	User *string `json:"user" validate:"omitempty,min=2,max=255"`
	Role *string `json:"role" validate:"omitempty,min=1,max=255"`
}

func (p UserRolePatch) changes() map[string]any {
	c := map[string]any{}

	if p.User != nil {
		c[columnUser] = *p.User
	}

	if p.Role != nil {
		c[columnRole] = *p.Role
	}

	return c
}

// UserRoleStore persists user-role bindings.
type UserRoleStore struct {
	repo *repository.Repository[models.UserRole, *models.UserRole]
}

// NewUserRoles creates a UserRoleStore on db.
func NewUserRoles(db *gorm.DB) *UserRoleStore {
	return &UserRoleStore{
		repo: repository.New[models.UserRole, *models.UserRole](db, repository.Policy[models.UserRole]{
			Entity:  "user-role binding",
			Mutable: []string{columnUser, columnRole},
			Unique: func(tx *gorm.DB, rec *models.UserRole) *gorm.DB {
				return tx.Where(map[string]any{
					models.ColumnNamespace: rec.Namespace,
					columnUser:             rec.User,
					columnRole:             rec.Role,
				})
			},
			Describe: func(rec *models.UserRole) string {
				return rec.Namespace + "/" + rec.User + "->" + rec.Role
			},
			Validate: func(tx *gorm.DB, rec *models.UserRole) error {
				return references(tx, rec.Namespace,
					ref{&models.User{}, columnUser, rec.User},
					ref{&models.Role{}, columnRole, rec.Role},
				)
			},
		}),
	}
}

// Create binds a live user to a live role.
func (s *UserRoleStore) Create(ctx context.Context, in UserRoleInput) (*models.UserRole, error) {
	return s.repo.Create(ctx, &models.UserRole{
		Namespace: in.Namespace,
		User:      in.User,
		Role:      in.Role,
	})
}

// FindAll lists user-role bindings.
func (s *UserRoleStore) FindAll(ctx context.Context, f repository.Filter) ([]models.UserRole, error) {
	return s.repo.FindAll(ctx, f)
}

// Count counts the user-role bindings matching f.
func (s *UserRoleStore) Count(ctx context.Context, f repository.Filter) (int64, error) {
	return s.repo.Count(ctx, f)
}

// FindOne returns the live binding with id.
func (s *UserRoleStore) FindOne(ctx context.Context, id uint64) (*models.UserRole, error) {
	return s.repo.FindOne(ctx, id)
}

// Update applies p after checking the new references.
func (s *UserRoleStore) Update(ctx context.Context, id uint64, p UserRolePatch) (*models.UserRole, error) {
	return s.repo.Update(ctx, id, p.changes())
}

// Remove soft deletes the binding.
func (s *UserRoleStore) Remove(ctx context.Context, id uint64) error {
	return s.repo.Remove(ctx, id)
}
