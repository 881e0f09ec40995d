package binding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/db/dbtest"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
)

func strPtr(s string) *string { return &s }

// setupTestDB creates namespace default with user alice, roles admin and viewer
// and resource user:read, plus a removed role "retired".
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := dbtest.Open(t, dbtest.NewClock())

	for _, rec := range []any{
		&models.Namespace{Namespace: "default"},
		&models.Namespace{Namespace: "other"},
		&models.User{Namespace: "default", User: "alice", Name: "Alice", Password: "x"},
		&models.User{Namespace: "default", User: "bob", Name: "Bob", Password: "x"},
		&models.Role{Namespace: "default", Role: "admin"},
		&models.Role{Namespace: "default", Role: "viewer"},
		&models.Role{Namespace: "default", Role: "retired", DeleteTime: 1},
		&models.Resource{Namespace: "default", Resource: "user:read"},
	} {
		require.NoError(t, db.Create(rec).Error)
	}

	return db
}

func TestUserRoleCreate(t *testing.T) {
	ctx := context.Background()
	store := NewUserRoles(setupTestDB(t))

	_, err := store.Create(ctx, UserRoleInput{Namespace: "default", User: "alice", Role: "admin"})
	require.NoError(t, err)

	testCases := []struct {
		name          string
		input         UserRoleInput
		expectedError error
	}{
		{
			name:  "second role",
			input: UserRoleInput{Namespace: "default", User: "alice", Role: "viewer"},
		},
		{
			name:          "duplicate binding",
			input:         UserRoleInput{Namespace: "default", User: "alice", Role: "admin"},
			expectedError: repository.ErrConflict,
		},
		{
			name:          "unknown user",
			input:         UserRoleInput{Namespace: "default", User: "mallory", Role: "admin"},
			expectedError: repository.ErrInvalidReference,
		},
		{
			name:          "removed role",
			input:         UserRoleInput{Namespace: "default", User: "alice", Role: "retired"},
			expectedError: repository.ErrInvalidReference,
		},
		{
			name:          "user of another namespace",
			input:         UserRoleInput{Namespace: "other", User: "alice", Role: "admin"},
			expectedError: repository.ErrInvalidReference,
		},
		{
			name:          "unknown namespace",
			input:         UserRoleInput{Namespace: "ghost", User: "alice", Role: "admin"},
			expectedError: repository.ErrInvalidReference,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Create(ctx, tc.input)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUserRoleUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewUserRoles(setupTestDB(t))

	b, err := store.Create(ctx, UserRoleInput{Namespace: "default", User: "alice", Role: "admin"})
	require.NoError(t, err)

	updated, err := store.Update(ctx, b.ID, UserRolePatch{User: strPtr("bob")})
	require.NoError(t, err)
	assert.Equal(t, "bob", updated.User)
	assert.Equal(t, "admin", updated.Role)

	_, err = store.Update(ctx, b.ID, UserRolePatch{Role: strPtr("retired")})
	assert.ErrorIs(t, err, repository.ErrInvalidReference)

	found, err := store.FindOne(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", found.Role)
}

func TestRolePermissionLifecycle(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewRolePermissions(db)

	perm, err := store.Create(ctx, RolePermissionInput{Namespace: "default", Role: "admin", Resource: "user:read"})
	require.NoError(t, err)

	_, err = store.Create(ctx, RolePermissionInput{Namespace: "default", Role: "admin", Resource: "user:read"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = store.Create(ctx, RolePermissionInput{Namespace: "default", Role: "admin", Resource: "user:write"})
	assert.ErrorIs(t, err, repository.ErrInvalidReference)

	list, err := store.FindAll(ctx, repository.Filter{Namespace: "default"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, perm.ID, list[0].ID)

	updated, err := store.Update(ctx, perm.ID, RolePermissionPatch{Description: strPtr("read users")})
	require.NoError(t, err)
	assert.Equal(t, "read users", updated.Description)

	// removing the role leaves the permission in place
	require.NoError(t, db.Model(&models.Role{}).Where(map[string]any{"role": "admin"}).
		Update("delete_time", 10).Error)

	found, err := store.FindOne(ctx, perm.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", found.Role)

	require.NoError(t, store.Remove(ctx, perm.ID))

	count, err := store.Count(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUserRoleRemoveRecreated(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewUserRoles(db)

	in := UserRoleInput{Namespace: "default", User: "bob", Role: "viewer"}

	first, err := store.Create(ctx, in)
	require.NoError(t, err)
	require.NoError(t, store.Remove(ctx, first.ID))

	// the clock has not moved
	second, err := store.Create(ctx, in)
	require.NoError(t, err)
	require.NoError(t, store.Remove(ctx, second.ID))

	var rows []models.UserRole
	require.NoError(t, db.Unscoped().Where(map[string]any{"user": "bob"}).Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)

	assert.NotZero(t, rows[0].DeleteTime)
	assert.NotZero(t, rows[1].DeleteTime)
	assert.NotEqual(t, rows[0].DeleteTime, rows[1].DeleteTime)
}
