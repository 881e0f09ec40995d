package web

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoACL-Admin/GoACL-Admin/internal/apperr"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/response"
)

// ErrRouteNotFound is returned by the fallback route.
var ErrRouteNotFound = errors.New("route not found")

// ErrorHandler renders every handler error as a failure envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return response.Fail(c, fe.Code, fiberCode(fe.Code), fe.Message)
		}

		appErr = apperr.From(err)
	}

	if appErr.Kind == apperr.KindInternal {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}

	return response.Fail(c, appErr.Status(), appErr.Code(), appErr.Message)
}

// fiberCode maps the status of a fiber error to the apperr machine codes.
func fiberCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperr.KindValidation.Code()
	case http.StatusUnauthorized:
		return apperr.KindUnauthorized.Code()
	case http.StatusNotFound:
		return apperr.KindNotFound.Code()
	case http.StatusConflict:
		return apperr.KindConflict.Code()
	default:
		if status < http.StatusInternalServerError {
			return http.StatusText(status)
		}

		return apperr.KindInternal.Code()
	}
}

// notFound is the last route of the app.
func notFound(c *fiber.Ctx) error {
	return apperr.NotFound(ErrRouteNotFound.Error() + ": " + c.Method() + " " + c.Path())
}
