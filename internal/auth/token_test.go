package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
)

func TestNewSigner(t *testing.T) {
	_, err := NewSigner("", "", 0)
	assert.ErrorIs(t, err, ErrEmptySecret)

	s, err := NewSigner("secret", "", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultIssuer, s.issuer)
	assert.Equal(t, defaultExpiry, s.expiry)
}

func TestSignAndVerify(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	signer, err := NewSigner("secret", "goacl-test", time.Hour)
	require.NoError(t, err)

	signer = signer.WithClock(func() time.Time { return now })

	alice := &models.User{ID: 7, User: "alice", Namespace: "default"}

	token, err := signer.Sign(alice)
	require.NoError(t, err)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.ID)
	assert.Equal(t, "alice", claims.User)
	assert.Equal(t, "default", claims.Namespace)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "goacl-test", claims.Issuer)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.RegisteredClaims.ID)

	// same user twice still yields distinct tokens
	again, err := signer.Sign(alice)
	require.NoError(t, err)
	assert.NotEqual(t, token, again)

	other, err := NewSigner("other-secret", "goacl-test", time.Hour)
	require.NoError(t, err)

	foreignIssuer, err := NewSigner("secret", "someone-else", time.Hour)
	require.NoError(t, err)

	foreignToken, err := foreignIssuer.WithClock(func() time.Time { return now }).Sign(alice)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 7}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		signer *Signer
		token  string
	}{
		{name: "wrong secret", signer: other.WithClock(func() time.Time { return now }), token: token},
		{name: "expired", signer: signer.WithClock(func() time.Time { return now.Add(2 * time.Hour) }), token: token},
		{name: "foreign issuer", signer: signer, token: foreignToken},
		{name: "alg none", signer: signer, token: none},
		{name: "tampered", signer: signer, token: strings.TrimSuffix(token, token[len(token)-4:]) + "AAAA"},
		{name: "garbage", signer: signer, token: "not.a.token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.signer.Verify(tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
