package login

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/GoACL-Admin/GoACL-Admin/internal/apperr"
	"github.com/GoACL-Admin/GoACL-Admin/internal/auth"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/handler"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/response"
)

const (
	// Path is the path of the auth route group.
	Path = "/auth"

	// LoginPath issues tokens.
	LoginPath = "/login"

	// ProfilePath returns the claims of the presented token.
	ProfilePath = "/profile"
)

// Authenticator issues and verifies tokens.
type Authenticator interface {
	auth.TokenVerifier
	Login(ctx context.Context, username, password, namespace string) (*auth.LoginResult, error)
}

// Input is the login request body. Length rules of stored users are not
// repeated here, a short password is a failed login and not a malformed request.
type Input struct {
	User      string `json:"user" validate:"required,max=255"`
	Password  string `json:"password" validate:"required,max=255"`
	Namespace string `json:"namespace" validate:"required,min=1,max=128"`
}

// Service is the login handler service.
type Service struct {
	auth Authenticator
}

// New creates the login handler service.
func New(authenticator Authenticator) *Service {
	return &Service{auth: authenticator}
}

// Init registers the login route and the token protected profile route.
func (s *Service) Init(router fiber.Router) error {
	if router == nil || s.auth == nil {
		return handler.ErrNilDependency
	}

	router.Post(LoginPath, s.Login)
	router.Get(ProfilePath, auth.RequireToken(s.auth), s.Profile)

	return nil
}

// Login checks the credentials of the request body and returns a token.
func (s *Service) Login(c *fiber.Ctx) error {
	in := new(Input)
	if err := handler.Bind(c, in); err != nil {
		return err
	}

	res, err := s.auth.Login(c.UserContext(), in.User, in.Password, in.Namespace)
	if err != nil {
		return apperr.From(err)
	}

	return response.Write(c, fiber.StatusOK, "Login successful", res)
}

// Profile returns the claims of the verified token.
func (s *Service) Profile(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return apperr.Internal(ErrNoClaims)
	}

	return response.OK(c, claims)
}
