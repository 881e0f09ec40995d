package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/GoACL-Admin/GoACL-Admin/internal/apperr"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
)

// UserStore is the credential lookup the Service depends on.
type UserStore interface {
	FindByUsername(ctx context.Context, namespace, username string) (*models.User, error)
	SetPasswordHash(ctx context.Context, id uint64, hash string) error
}

// NamespaceStore resolves live namespaces.
type NamespaceStore interface {
	FindByName(ctx context.Context, name string) (*models.Namespace, error)
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token string `json:"jwt_token"`
	User  string `json:"user"`
}

// Service provides authentication functionality.
type Service struct {
	namespaces NamespaceStore
	users      UserStore
	signer     *Signer
}

// NewService creates a new auth service.
func NewService(namespaces NamespaceStore, users UserStore, signer *Signer) *Service {
	return &Service{namespaces: namespaces, users: users, signer: signer}
}

// Authenticate returns the live user of the live namespace called username when password matches.
// A nil user without error means unknown namespace, unknown user or wrong password.
// The returned record has its password hash cleared.
func (s *Service) Authenticate(ctx context.Context, username, password, namespace string) (*models.User, error) {
	_, err := s.namespaces.FindByName(ctx, namespace)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, fmt.Errorf("lookup namespace: %w", err)
	}

	user, err := s.users.FindByUsername(ctx, namespace, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	match, legacy, err := VerifyPassword(password, user.Password)
	if err != nil {
		// an unparsable hash can not match anything
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("stored password hash is invalid")

		return nil, nil //nolint:nilnil
	}

	if !match {
		return nil, nil //nolint:nilnil
	}

	if legacy {
		s.upgrade(ctx, user.ID, password)
	}

	user.Password = ""

	return user, nil
}

// upgrade replaces a legacy hash. Failures are logged, the login still succeeds.
func (s *Service) upgrade(ctx context.Context, id uint64, password string) {
	hash, err := HashPassword(password)
	if err == nil {
		err = s.users.SetPasswordHash(ctx, id, hash)
	}

	if err != nil {
		log.Warn().Err(err).Uint64("user_id", id).Msg("failed to upgrade legacy password hash")
		return
	}

	log.Info().Uint64("user_id", id).Msg("upgraded legacy password hash")
}

// Login authenticates and issues a token.
// Bad credentials yield an apperr KindUnauthorized and no token.
func (s *Service) Login(ctx context.Context, username, password, namespace string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, username, password, namespace)
	if err != nil {
		loginAttempts.WithLabelValues(resultError).Inc()
		return nil, err
	}

	if user == nil {
		loginAttempts.WithLabelValues(resultFailure).Inc()
		log.Info().Str("user", username).Str("namespace", namespace).Msg("login failed")

		return nil, apperr.Unauthorized(ErrInvalidCredentials.Error())
	}

	token, err := s.signer.Sign(user)
	if err != nil {
		loginAttempts.WithLabelValues(resultError).Inc()
		return nil, err
	}

	loginAttempts.WithLabelValues(resultSuccess).Inc()

	return &LoginResult{Token: token, User: user.User}, nil
}

// Verify checks a bearer token. Failures are apperr KindUnauthorized.
func (s *Service) Verify(token string) (*Claims, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindUnauthorized, Message: ErrInvalidToken.Error(), Err: err}
	}

	return claims, nil
}
