package pagination

import (
	"strconv"

	"github.com/blogzone/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page  int
	Limit int
}

// FromContext extracts and clamps page/limit from the request.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.DefaultQuery("page", "1"), DefaultPage)
	limit := parseIntOr(c.DefaultQuery("limit", "10"), DefaultLimit)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Query{Page: page, Limit: limit}
}

// Skip returns the document offset for the query.
func (q Query) Skip() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}

// Meta builds the pagination metadata for a total document count.
func (q Query) Meta(total int64) response.Pagination {
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		Size:        q.Limit,
		HasNextPage: q.Page < totalPages,
	}
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
