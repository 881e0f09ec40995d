package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/apperr"
	"github.com/GoACL-Admin/GoACL-Admin/internal/auth"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/controller/namespace"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/controller/user"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/dbtest"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
)

func setupService(t *testing.T) (*auth.Service, *user.Store, *gorm.DB) {
	t.Helper()

	db := dbtest.Open(t, dbtest.NewClock())
	for _, ns := range []string{"default", "acme", "closed"} {
		require.NoError(t, db.Create(&models.Namespace{Namespace: ns}).Error)
	}

	users := user.New(db)

	signer, err := auth.NewSigner("test-secret", "goacl-test", 0)
	require.NoError(t, err)

	return auth.NewService(namespace.New(db), users, signer), users, db
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, users, db := setupService(t)

	created, err := users.Create(ctx, user.Input{Namespace: "default", User: "alice", Name: "Alice", Password: "secret123"})
	require.NoError(t, err)

	removed, err := users.Create(ctx, user.Input{Namespace: "acme", User: "gone", Name: "Gone", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, users.Remove(ctx, removed.ID))

	_, err = users.Create(ctx, user.Input{Namespace: "closed", User: "carol", Name: "Carol", Password: "secret123"})
	require.NoError(t, err)

	namespaces := namespace.New(db)
	closed, err := namespaces.FindByName(ctx, "closed")
	require.NoError(t, err)
	require.NoError(t, namespaces.Remove(ctx, closed.ID))

	testCases := []struct {
		name      string
		username  string
		password  string
		namespace string
		wantID    uint64
	}{
		{name: "valid credentials", username: "alice", password: "secret123", namespace: "default", wantID: created.ID},
		{name: "wrong password", username: "alice", password: "wrong", namespace: "default"},
		{name: "wrong namespace", username: "alice", password: "secret123", namespace: "acme"},
		{name: "unknown user", username: "bob", password: "secret123", namespace: "default"},
		{name: "removed user", username: "gone", password: "secret123", namespace: "acme"},
		{name: "removed namespace", username: "carol", password: "secret123", namespace: "closed"},
		{name: "unknown namespace", username: "alice", password: "secret123", namespace: "nowhere"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Authenticate(ctx, tc.username, tc.password, tc.namespace)
			require.NoError(t, err)

			if tc.wantID == 0 {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tc.wantID, got.ID)
			assert.Equal(t, tc.username, got.User)
			assert.Empty(t, got.Password, "password hash must not leak")
		})
	}
}

func TestAuthenticateUpgradesLegacyHash(t *testing.T) {
	ctx := context.Background()
	svc, users, db := setupService(t)

	legacy := &models.User{Namespace: "default", User: "old", Name: "Old", Password: "5d7845ac6ee7cfffafc5fe5f35cf666d"}
	require.NoError(t, db.Create(legacy).Error)

	got, err := svc.Authenticate(ctx, "old", "secret123", "default")
	require.NoError(t, err)
	require.NotNil(t, got)

	stored, err := users.FindOne(ctx, legacy.ID)
	require.NoError(t, err)
	assert.False(t, auth.IsLegacyHash(stored.Password))

	match, isLegacy, err := auth.VerifyPassword("secret123", stored.Password)
	require.NoError(t, err)
	assert.True(t, match)
	assert.False(t, isLegacy)

	// the upgraded hash keeps working
	got, err = svc.Authenticate(ctx, "old", "secret123", "default")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := setupService(t)

	alice, err := users.Create(ctx, user.Input{Namespace: "default", User: "alice", Name: "Alice", Password: "secret123"})
	require.NoError(t, err)

	aliceAcme, err := users.Create(ctx, user.Input{Namespace: "acme", User: "alice", Name: "Alice", Password: "secret123"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, "alice", "secret123", "default")
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User)
	require.NotEmpty(t, res.Token)

	claims, err := svc.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.ID)
	assert.Equal(t, "alice", claims.User)
	assert.Equal(t, "default", claims.Namespace)

	acme, err := svc.Login(ctx, "alice", "secret123", "acme")
	require.NoError(t, err)

	acmeClaims, err := svc.Verify(acme.Token)
	require.NoError(t, err)
	assert.Equal(t, aliceAcme.ID, acmeClaims.ID)
	assert.NotEqual(t, claims.ID, acmeClaims.ID)
	assert.NotEqual(t, claims.Namespace, acmeClaims.Namespace)

	bad, err := svc.Login(ctx, "alice", "wrong", "default")
	assert.Nil(t, bad)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindUnauthorized, appErr.Kind)
	assert.Equal(t, "invalid username or password", appErr.Message)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Verify("garbage")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

type failingStore struct{ err error }

func (f failingStore) FindByName(context.Context, string) (*models.Namespace, error) {
	return &models.Namespace{}, nil
}

func (f failingStore) FindByUsername(context.Context, string, string) (*models.User, error) {
	return nil, f.err
}

func (f failingStore) SetPasswordHash(context.Context, uint64, string) error {
	return f.err
}

func TestAuthenticateStorageError(t *testing.T) {
	storageErr := errors.New("connection reset") //nolint:goerr113

	signer, err := auth.NewSigner("test-secret", "", 0)
	require.NoError(t, err)

	svc := auth.NewService(failingStore{err: storageErr}, failingStore{err: storageErr}, signer)

	_, err = svc.Authenticate(context.Background(), "alice", "secret123", "default")
	assert.ErrorIs(t, err, storageErr)

	_, err = svc.Login(context.Background(), "alice", "secret123", "default")
	assert.ErrorIs(t, err, storageErr)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
