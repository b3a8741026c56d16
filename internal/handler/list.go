package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rechilab/volley-backend/internal/repository"
)

// listResult is the result payload of every listing endpoint.
type listResult struct {
	Data  any   `json:"data"`
	Total int64 `json:"total"`
}

// listQueryFrom reads the shared listing parameters from the query string.
// Defaults mirror the frontend contract: sort by creation time descending,
// 20 items starting at page 1.  A zero or unparseable sortOrder falls back
// to descending; itemsPerPage of -1 disables pagination.
func listQueryFrom(c echo.Context) repository.ListQuery {
	q := repository.ListQuery{
		SortBy:       c.QueryParam("sortBy"),
		SortOrder:    -1,
		ItemsPerPage: 20,
		Page:         1,
		Search:       c.QueryParam("search"),
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	if n, err := strconv.Atoi(c.QueryParam("sortOrder")); err == nil && n != 0 {
		q.SortOrder = n
	}
	if n, err := strconv.Atoi(c.QueryParam("itemsPerPage")); err == nil && n != 0 {
		q.ItemsPerPage = n
	}
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		q.Page = n
	}
	return q
}
