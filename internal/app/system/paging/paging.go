// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows in a paged list.
const PageSize = 50

// MaxPageSize caps the "limit" query parameter.
const MaxPageSize = 200

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	return positive(query.Get(r, "page"), 1)
}

// ParseLimit extracts the "limit" query parameter, defaulting to PageSize
// and clamped to MaxPageSize.
func ParseLimit(r *http.Request) int {
	n := positive(query.Get(r, "limit"), PageSize)
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func positive(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Offset returns the number of rows to skip for page.
func Offset(page, size int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * size)
}

// Pages describes where a page sits in the full result.
type Pages struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	Total      int64 `json:"total"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
	PrevPage   int   `json:"prev_page"`
	NextPage   int   `json:"next_page"`
}

// Compute derives page links from the current page, page size and total
// row count. There is always at least one page.
func Compute(page, size int, total int64) Pages {
	if size < 1 {
		size = PageSize
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}

	prev := page - 1
	if prev < 1 {
		prev = 1
	}
	next := page + 1
	if next > totalPages {
		next = totalPages
	}

	return Pages{
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		PrevPage:   prev,
		NextPage:   next,
	}
}
