package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"clientdesk/internal/common"
)

func paginationFromQuery(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	return common.ValidatePaginationParams(limit, offset)
}
