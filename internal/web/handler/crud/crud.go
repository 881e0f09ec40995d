// Package crud provides the REST handlers shared by every ACL store.
package crud

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/GoACL-Admin/GoACL-Admin/internal/apperr"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/handler"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/response"
)

// Store is the store surface the handlers need.
// In is the create DTO and P the patch DTO of the store.
type Store[T, In, P any] interface {
	Create(ctx context.Context, in In) (*T, error)
	FindAll(ctx context.Context, f repository.Filter) ([]T, error)
	Count(ctx context.Context, f repository.Filter) (int64, error)
	FindOne(ctx context.Context, id uint64) (*T, error)
	Update(ctx context.Context, id uint64, p P) (*T, error)
	Remove(ctx context.Context, id uint64) error
}

// Service serves one store.
type Service[T, In, P any] struct {
	store Store[T, In, P]
}

// New creates handlers for store.
func New[T, In, P any](store Store[T, In, P]) *Service[T, In, P] {
	return &Service[T, In, P]{store: store}
}

// Init registers the routes on router.
func (s *Service[T, In, P]) Init(router fiber.Router) error {
	if router == nil || s.store == nil {
		return handler.ErrNilDependency
	}

	router.Post(handler.RootPath, s.Create)
	router.Get(handler.RootPath, s.List)
	router.Get(handler.IDPath, s.Get)
	router.Patch(handler.IDPath, s.Update)
	router.Delete(handler.IDPath, s.Delete)

	return nil
}

// Create stores the record of the request body.
func (s *Service[T, In, P]) Create(c *fiber.Ctx) error {
	in := new(In)
	if err := handler.Bind(c, in); err != nil {
		return err
	}

	rec, err := s.store.Create(c.UserContext(), *in)
	if err != nil {
		return apperr.From(err)
	}

	return response.Created(c, rec)
}

// List returns the live records, optionally of one namespace and paginated.
func (s *Service[T, In, P]) List(c *fiber.Ctx) error {
	q := handler.ParsePageQuery(c)

	list, err := s.store.FindAll(c.UserContext(), q.Filter())
	if err != nil {
		return apperr.From(err)
	}

	if !q.Paginated {
		if list == nil {
			list = []T{}
		}

		return response.OK(c, list)
	}

	total, err := s.store.Count(c.UserContext(), q.Filter())
	if err != nil {
		return apperr.From(err)
	}

	return response.Paginated(c, list, total, q.Page, q.PageSize)
}

// Get returns one live record.
func (s *Service[T, In, P]) Get(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	rec, err := s.store.FindOne(c.UserContext(), id)
	if err != nil {
		return apperr.From(err)
	}

	return response.OK(c, rec)
}

// Update applies the patch of the request body.
func (s *Service[T, In, P]) Update(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	p := new(P)
	if err := handler.Bind(c, p); err != nil {
		return err
	}

	rec, err := s.store.Update(c.UserContext(), id, *p)
	if err != nil {
		return apperr.From(err)
	}

	return response.OK(c, rec)
}

// Delete soft deletes one record.
func (s *Service[T, In, P]) Delete(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	if err := s.store.Remove(c.UserContext(), id); err != nil {
		return apperr.From(err)
	}

	return response.OK(c, nil)
}
