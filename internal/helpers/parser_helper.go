package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParsePagination reads page/perPage query params, clamping to sane bounds.
func ParsePagination(c *gin.Context) (page, perPage int) {
	page, err := StringToInt(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err = StringToInt(c.DefaultQuery("perPage", strconv.Itoa(defaultPerPage)))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// ParseSort validates the sort/direction query params against an allow-list
// of sortable columns and returns an ORDER BY clause.
func ParseSort(c *gin.Context, allowed map[string]string, fallback string) string {
	column, ok := allowed[c.DefaultQuery("sort", "")]
	if !ok {
		column = fallback
	}

	direction := "DESC"
	if c.Query("direction") == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}
