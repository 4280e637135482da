package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog-api/internal/catalog"
	"github.com/iliyamo/movie-catalog-api/internal/middleware"
)

// apiError is the JSON body of every error response.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError renders err with a fixed status and a generic message.  The
// error itself is only attached to the context for the request logger.
func writeError(c echo.Context, err error) error {
	c.Set(middleware.ErrorCauseKey, err)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return c.JSON(http.StatusNotFound, apiError{"not_found", "film not found"})
	case errors.Is(err, catalog.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, apiError{"unavailable", "movie store unavailable, retry later"})
	default:
		return c.JSON(http.StatusInternalServerError, apiError{"internal_error", "internal server error"})
	}
}

// ErrorHandler replaces echo's default HTTPErrorHandler so framework errors
// (unknown route, wrong method, panics recovered by middleware) use the same
// JSON shape as handler errors.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		_ = writeError(c, err)
		return
	}
	if he.Internal != nil {
		c.Set(middleware.ErrorCauseKey, he.Internal)
	}

	body := apiError{Error: "internal_error", Message: http.StatusText(he.Code)}
	switch he.Code {
	case http.StatusNotFound:
		body = apiError{"not_found", "resource not found"}
	case http.StatusMethodNotAllowed:
		body = apiError{"method_not_allowed", "only GET is allowed"}
	case http.StatusBadRequest:
		body = apiError{"bad_request", "malformed request"}
	case http.StatusServiceUnavailable:
		body = apiError{"unavailable", "service unavailable"}
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(he.Code)
		return
	}
	_ = c.JSON(he.Code, body)
}
