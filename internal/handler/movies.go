// Package handler exposes the HTTP handlers of the movie API.  The list and
// detail endpoints are independent functions over a shared catalog.Service;
// they only translate between echo and the service.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog-api/internal/catalog"
)

// MoviesHandler serves the read-only movie endpoints.
type MoviesHandler struct {
	Catalog *catalog.Service
}

// List handles GET /movies/?page=N.  A missing or non-numeric page means
// page 1; out-of-range pages are clamped by the service.
func (h *MoviesHandler) List(c echo.Context) error {
	page := catalog.ParsePage(c.QueryParam("page"))
	info, err := h.Catalog.ListMovies(c.Request().Context(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, info)
}

// Detail handles GET /movies/:id/.  Unknown and malformed ids both yield 404.
func (h *MoviesHandler) Detail(c echo.Context) error {
	doc, err := h.Catalog.GetMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, doc)
}
