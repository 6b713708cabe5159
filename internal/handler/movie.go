package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-editor/internal/catalog"
)

// MovieHandler serves the movie listing.
type MovieHandler struct {
	Catalog *catalog.Catalog
}

func NewMovieHandler(c *catalog.Catalog) *MovieHandler { return &MovieHandler{Catalog: c} }

type movieQuery struct {
	Page          int    `query:"page"`
	PageSize      int    `query:"pageSize"`
	SortField     string `query:"sortField"`
	SortDirection string `query:"sortDirection"`
	Search        string `query:"search"`
	Genre         string `query:"genre"`
	Language      string `query:"language"`
	DateFrom      string `query:"dateFrom"`
	DateTo        string `query:"dateTo"`
	Status        string `query:"status"`
}

// List filters, sorts and paginates movies.
func (h *MovieHandler) List(c echo.Context) error {
	var q movieQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return badRequest(c, errors.New("invalid query"))
	}
	page, err := h.Catalog.List(catalog.Query(q))
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSON(http.StatusOK, page)
}
