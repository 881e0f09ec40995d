package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/GoACL-Admin/GoACL-Admin/internal/apperr"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
)

// ParseID reads the :id route parameter.
func ParseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("id must be a positive integer")
	}

	return id, nil
}

// PageQuery holds the list query parameters.
type PageQuery struct {
	Namespace string
	// Paginated is set when the client asked for a page.
	Paginated bool
	Page      int
	PageSize  int
}

// ParsePageQuery reads namespace, page and pageSize.
// Out of range values are clamped.
func ParsePageQuery(c *fiber.Ctx) PageQuery {
	q := PageQuery{
		Namespace: c.Query("namespace"),
		Paginated: c.Query("page") != "",
	}

	q.Page = c.QueryInt("page", 1)

	switch {
	case q.Page < 1:
		q.Page = 1
	case q.Page > MaxPage:
		q.Page = MaxPage
	}

	q.PageSize = c.QueryInt("pageSize", DefaultPageSize)

	switch {
	case q.PageSize < 1:
		q.PageSize = DefaultPageSize
	case q.PageSize > MaxPageSize:
		q.PageSize = MaxPageSize
	}

	return q
}

// Filter converts q to a store filter.
func (q PageQuery) Filter() repository.Filter {
	f := repository.Filter{Namespace: q.Namespace}

	if q.Paginated {
		f.Limit = q.PageSize
		f.Offset = (q.Page - 1) * q.PageSize
	}

	return f
}
