package router // package router defines how HTTP routes are registered for the API

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movie-catalog-api/internal/handler"
	"github.com/iliyamo/movie-catalog-api/internal/middleware"
)

// New creates the Echo instance with the JSON error handler, request
// logging and panic recovery installed.  The logger sits outermost so
// recovered panics are logged as 500s.
func New(log logrus.FieldLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			c.Set(middleware.ErrorCauseKey, fmt.Errorf("panic: %w\n%s", err, stack))
			return err
		},
	}))
	return e
}

// RegisterRoutes registers the probe endpoints.  /healthz only says the
// process is up; /readyz also checks the database.
func RegisterRoutes(e *echo.Echo, ready echo.HandlerFunc) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", ready)
}

// RegisterMovies registers the movie endpoints under prefix (may be empty).
// Each path is served with and without the trailing slash.  Only GET is
// registered, so echo answers every other method with 405.  OPTIONS is the
// exception: echo replies 204 to it on any matched path, so it is routed to
// rejectOptions explicitly.  Middleware is attached per route rather than on
// the group, which would otherwise install catch-all routes under the prefix.
func RegisterMovies(e *echo.Echo, prefix string, h *handler.MoviesHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group(strings.TrimSuffix(prefix, "/"))
	g.GET("/movies", h.List, mw...)
	g.GET("/movies/", h.List, mw...)
	g.GET("/movies/:id", h.Detail, mw...)
	g.GET("/movies/:id/", h.Detail, mw...)
	for _, path := range []string{"/movies", "/movies/", "/movies/:id", "/movies/:id/"} {
		g.OPTIONS(path, rejectOptions)
	}
}

// rejectOptions answers OPTIONS with the same 405 body as every other
// non-GET method.
func rejectOptions(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderAllow, http.MethodGet)
	return echo.ErrMethodNotAllowed
}
