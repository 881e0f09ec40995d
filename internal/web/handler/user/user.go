// Package user serves the user store, including display name search.
package user

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/GoACL-Admin/GoACL-Admin/internal/apperr"
	usercontroller "github.com/GoACL-Admin/GoACL-Admin/internal/db/controller/user"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/handler"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/handler/crud"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/response"
)

// SearchPath is the display name search route.
const SearchPath = "/search"

// Store is the user store surface of the handlers.
type Store interface {
	crud.Store[models.User, usercontroller.Input, usercontroller.Patch]
	FindByDisplayName(ctx context.Context, namespace, substr string) ([]models.User, error)
}

// Service provides the user routes.
type Service struct {
	*crud.Service[models.User, usercontroller.Input, usercontroller.Patch]
	store Store
}

// New creates the user handler service.
func New(store Store) *Service {
	return &Service{
		Service: crud.New[models.User, usercontroller.Input, usercontroller.Patch](store),
		store:   store,
	}
}

// Init registers search ahead of the :id routes.
func (s *Service) Init(router fiber.Router) error {
	if router == nil || s.store == nil {
		return handler.ErrNilDependency
	}

	router.Get(SearchPath, s.Search)

	return s.Service.Init(router)
}

// Search returns the live users whose display name contains ?name=, ignoring case.
func (s *Service) Search(c *fiber.Ctx) error {
	users, err := s.store.FindByDisplayName(c.UserContext(), c.Query("namespace"), c.Query("name"))
	if err != nil {
		return apperr.From(err)
	}

	if users == nil {
		users = []models.User{}
	}

	return response.OK(c, users)
}
