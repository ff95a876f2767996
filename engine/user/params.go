package user

import (
	"math"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ListParams holds the optional filters and page window of a listing request.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
	Role    string
	// IsActive is nil when the caller did not filter on activity.
	IsActive *bool
}

// Normalize applies page bounds. A page below 1 becomes the first page,
// a non-positive page size falls back to defPerPage and oversized pages
// are clamped to maxPerPage.
func (p ListParams) Normalize(defPerPage, maxPerPage int) ListParams {
	if defPerPage <= 0 {
		defPerPage = DefaultPerPage
	}
	if maxPerPage <= 0 {
		maxPerPage = MaxPerPage
	}
	if defPerPage > maxPerPage {
		defPerPage = maxPerPage
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = defPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	return p
}

// Offset is the number of matching rows skipped before the current page.
// It saturates at math.MaxInt, which selects an empty page.
func (p ListParams) Offset() int {
	if p.Page < 1 || p.PerPage < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// ParseActiveFlag interprets a present is_active query value: only "true"
// (any case, no surrounding spaces) means active, everything else filters on
// inactive users.
func ParseActiveFlag(raw string) bool {
	return strings.EqualFold(raw, "true")
}
