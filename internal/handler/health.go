package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog-api/internal/middleware"
)

// Health is a liveness endpoint used by load balancers and monitoring
// systems.  It returns a plain text "ok" with status 200 and touches nothing
// else.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Pinger is satisfied by *repository.FilmRepo and *sql.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ready returns a readiness handler that pings the database.  The ping is
// bounded to two seconds so a hung store fails the probe rather than
// stalling it.
func Ready(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.Set(middleware.ErrorCauseKey, err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"error":   "unavailable",
				"message": "database unreachable",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}
}
