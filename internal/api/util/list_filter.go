package util

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// MaxLimit caps the page size a client may ask for
const MaxLimit = 100

// ListFilter holds the pagination window of a list endpoint
type ListFilter struct {
	Limit  int
	Offset int
}

// ParseListFilter reads ?limit and ?offset. Missing values fall back to
// defaultLimit and 0; limits above MaxLimit are clamped.
func ParseListFilter(c *gin.Context, defaultLimit int) (ListFilter, error) {
	filter := ListFilter{Limit: defaultLimit}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("limit must be an integer")
		}
		filter.Limit = limit
	}

	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("offset must be an integer")
		}
		filter.Offset = offset
	}

	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	return filter, nil
}
