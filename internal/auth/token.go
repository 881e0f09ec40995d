package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
)

const (
	defaultIssuer = "goacl-admin"
	defaultExpiry = time.Hour
)

// Claims is the token payload.
type Claims struct {
	ID        uint64 `json:"id"`
	User      string `json:"user"`
	Namespace string `json:"namespace"`
	jwt.RegisteredClaims
}

// Signer signs and verifies HS256 tokens.
type Signer struct {
	secret []byte
	issuer string
	expiry time.Duration
	now    func() time.Time
}

// NewSigner creates a Signer. Empty issuer and zero expiry fall back to defaults.
func NewSigner(secret, issuer string, expiry time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	if issuer == "" {
		issuer = defaultIssuer
	}

	if expiry <= 0 {
		expiry = defaultExpiry
	}

	return &Signer{
		secret: []byte(secret),
		issuer: issuer,
		expiry: expiry,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source. Used by tests.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	c := *s
	c.now = now

	return &c
}

// Sign issues a token for u.
func (s *Signer) Sign(u *models.User) (string, error) {
	now := s.now()

	claims := &Claims{
		ID:        u.ID,
		User:      u.User,
		Namespace: u.Namespace,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// Verify parses token and checks signature, method, issuer and lifetime.
func (s *Signer) Verify(token string) (*Claims, error) {
	claims := new(Claims)

	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
