// Package listing splits event listings into time cohorts, filters them and
// computes paging metadata.
package listing

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultPage is used whenever the page parameter is absent or not a positive number.
	DefaultPage = 1
	// DefaultPerPage is the page size used when a caller passes none.
	DefaultPerPage = 10
)

// PagingMetadata describes one page of a result set.
type PagingMetadata struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// Paginate derives paging metadata. Non-positive page or perPage fall back to
// DefaultPage and DefaultPerPage; a page beyond TotalPages is kept as is so the
// caller returns an empty window.
func Paginate(page, perPage int, total int64) PagingMetadata {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if total < 0 {
		total = 0
	}
	return PagingMetadata{
		Page:       page,
		PerPage:    perPage,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(perPage))),
	}
}

// Offset is the number of rows to skip for the page, saturating at math.MaxInt.
func (p PagingMetadata) Offset() int {
	if p.Page < 1 || p.PerPage < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// Beyond reports whether the page lies past the last page.
func (p PagingMetadata) Beyond() bool {
	return p.Page > p.TotalPages
}

// ParsePage coerces a raw page parameter.
func ParsePage(raw string) int {
	return parsePositive(raw, DefaultPage)
}

// ParsePerPage coerces a raw per_page parameter, falling back to def.
func ParsePerPage(raw string, def int) int {
	return parsePositive(raw, def)
}

func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}
