// Package user implements the User Store.
//
// Passwords are hashed before they reach the database. Renaming a user is
// carried over to the live user-role bindings of the namespace.
package user

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/auth"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
)

const (
	columnUser     = "user"
	columnOID      = "o_id"
	columnPassword = "password"

	likeEscape = "!"
)

// Input carries the fields of a new user. Password is plaintext.
type Input struct {
	OID         *string `json:"oId" validate:"omitempty,max=255"`
	Namespace   string  `json:"namespace" validate:"required,min=1,max=128"`
	User        string  `json:"user" validate:"required,min=2,max=255"`
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Password    string  `json:"password" validate:"required,min=6,max=255"`
	Job         string  `json:"job" validate:"max=255"`
	PhoneNumber string  `json:"phoneNumber" validate:"max=64"`
	Email       string  `json:"email" validate:"omitempty,email,max=255"`
}

// Patch carries the fields of a partial update. Password is plaintext.
type Patch struct {
	OID         *string `json:"oId" validate:"omitempty,max=255"`
	User        *string `json:"user" validate:"omitempty,min=2,max=255"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Password    *string `json:"password" validate:"omitempty,min=6,max=255"`
	Job         *string `json:"job" validate:"omitempty,max=255"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=64"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
}

func (p Patch) changes() (map[string]any, error) {
	c := map[string]any{}

	if p.OID != nil {
		c[columnOID] = p.OID
	}

	if p.User != nil {
		c[columnUser] = *p.User
	}

	if p.Name != nil {
		c["name"] = *p.Name
	}

	if p.Job != nil {
		c["job"] = *p.Job
	}

	if p.PhoneNumber != nil {
		c["phone_number"] = *p.PhoneNumber
	}

	if p.Email != nil {
		c["email"] = *p.Email
	}

	if p.Password != nil {
		hash, err := auth.HashPassword(*p.Password)
		if err != nil {
			return nil, err
		}

		c[columnPassword] = hash
	}

	return c, nil
}

// Store persists users.
type Store struct {
	repo *repository.Repository[models.User, *models.User]
}

// New creates a user Store on db.
func New(db *gorm.DB) *Store {
	return &Store{
		repo: repository.New[models.User, *models.User](db, repository.Policy[models.User]{
			Entity:  columnUser,
			Mutable: []string{columnOID, columnUser, "name", "job", columnPassword, "phone_number", "email"},
			Unique: func(tx *gorm.DB, rec *models.User) *gorm.DB {
				return tx.Where(map[string]any{models.ColumnNamespace: rec.Namespace, columnUser: rec.User})
			},
			Describe: func(rec *models.User) string {
				return rec.Namespace + "/" + rec.User
			},
			Validate: validate,
			Cascade: func(tx *gorm.DB, before, after *models.User) error {
				return repository.Rename(tx, &models.UserRole{},
					map[string]any{models.ColumnNamespace: before.Namespace},
					columnUser, before.User, after.User, false)
			},
		}),
	}
}

// validate checks the namespace and keeps the external id unique over all rows.
func validate(tx *gorm.DB, rec *models.User) error {
	if err := repository.Exists(tx, &models.Namespace{}, map[string]any{models.ColumnNamespace: rec.Namespace}); err != nil {
		return err
	}

	if rec.OID == nil {
		return nil
	}

	var n int64

	err := tx.Session(&gorm.Session{NewDB: true}).Unscoped().Model(&models.User{}).
		Where(map[string]any{columnOID: *rec.OID}).
		Where(models.ColumnID+" <> ?", rec.ID).
		Count(&n).Error
	if err != nil {
		return fmt.Errorf("check oId: %w", err)
	}

	if n > 0 {
		return fmt.Errorf("%w: user with oId %q", repository.ErrConflict, *rec.OID)
	}

	return nil
}

// Create hashes the password and stores a new user in an existing namespace.
func (s *Store) Create(ctx context.Context, in Input) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &models.User{
		OID:         in.OID,
		Namespace:   in.Namespace,
		User:        in.User,
		Name:        in.Name,
		Job:         in.Job,
		Password:    hash,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
	})
}

// FindAll lists users.
func (s *Store) FindAll(ctx context.Context, f repository.Filter) ([]models.User, error) {
	return s.repo.FindAll(ctx, f)
}

// Count counts the users matching f.
func (s *Store) Count(ctx context.Context, f repository.Filter) (int64, error) {
	return s.repo.Count(ctx, f)
}

// FindOne returns the live user with id.
func (s *Store) FindOne(ctx context.Context, id uint64) (*models.User, error) {
	return s.repo.FindOne(ctx, id)
}

// FindByUsername returns the live user of namespace with an exact login name.
// The returned record carries the password hash.
func (s *Store) FindByUsername(ctx context.Context, namespace, username string) (*models.User, error) {
	return s.repo.FindBy(ctx, map[string]any{models.ColumnNamespace: namespace, columnUser: username})
}

// FindByDisplayName returns live users whose display name contains substr, ignoring case.
// An empty namespace searches all namespaces.
func (s *Store) FindByDisplayName(ctx context.Context, namespace, substr string) ([]models.User, error) {
	db := s.repo.DB()
	if db == nil {
		return nil, repository.ErrDBNil
	}

	q := db.WithContext(ctx).
		Where("LOWER(name) LIKE ? ESCAPE '"+likeEscape+"'", "%"+escapeLike(strings.ToLower(substr))+"%")

	if namespace != "" {
		q = q.Where(map[string]any{models.ColumnNamespace: namespace})
	}

	var users []models.User
	if err := q.Order(models.ColumnID).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("search user: %w", err)
	}

	return users, nil
}

// Update applies p, hashing a new password.
func (s *Store) Update(ctx context.Context, id uint64, p Patch) (*models.User, error) {
	changes, err := p.changes()
	if err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, changes)
}

// SetPasswordHash stores an already hashed password.
func (s *Store) SetPasswordHash(ctx context.Context, id uint64, hash string) error {
	_, err := s.repo.Update(ctx, id, map[string]any{columnPassword: hash})

	return err
}

// Remove soft deletes the user. Its role bindings are left untouched.
func (s *Store) Remove(ctx context.Context, id uint64) error {
	return s.repo.Remove(ctx, id)
}

func escapeLike(s string) string {
	return strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	).Replace(s)
}
