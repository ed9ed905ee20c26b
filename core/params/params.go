package params

import (
	"strconv"

	"gestimmo-api/core/constants"

	"github.com/labstack/echo/v4"
)

// QueryParams carries common list-endpoint query parameters.
type QueryParams struct {
	Page     int
	PageSize int
}

// FromContext parses pagination parameters with sane bounds.
func FromContext(c echo.Context) QueryParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	return QueryParams{Page: page, PageSize: pageSize}
}

func (q QueryParams) Limit() int {
	return q.PageSize
}

func (q QueryParams) Offset() int {
	return (q.Page - 1) * q.PageSize
}
