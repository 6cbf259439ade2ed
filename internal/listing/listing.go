// Package listing normalizes untrusted list parameters (page, size, sort,
// search, date ranges) into bounded query values. Every function here fails
// open: malformed input degrades to the documented default and no function
// returns an error, so list endpoints stay responsive no matter what the
// client sends.
package listing

import (
	"strconv"
	"strings"
	"time"
)

const (
	// Admin listings (applications, users).
	AdminDefaultPageSize = 10
	AdminMaxPageSize     = 50

	// Buyer marketplace.
	MarketplaceDefaultPageSize = 12
	MarketplaceMaxPageSize     = 48
)

// Page is a normalized pagination window.
type Page struct {
	Number int
	Size   int
}

// Offset returns the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// NormalizePage parses page/pageSize strings, clamping the page to >= 1 and
// the size to [1, maxSize]. Non-numeric input falls back to the defaults.
func NormalizePage(page, size string, defSize, maxSize int) Page {
	n, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || n < 1 {
		n = 1
	}
	s, err := strconv.Atoi(strings.TrimSpace(size))
	if err != nil {
		s = defSize
	}
	if s < 1 {
		s = 1
	}
	if s > maxSize {
		s = maxSize
	}
	return Page{Number: n, Size: s}
}

// TotalPages is never zero, even with zero results, so page selectors in the
// UI never divide by zero.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Sort is a normalized ordering: By is guaranteed to come from the
// resource's allow-list and Dir is "asc" or "desc".
type Sort struct {
	By  string
	Dir string
}

// Allow-listed sort keys per resource.
var (
	ApplicationSortKeys = []string{"createdAt", "status"}
	UserSortKeys        = []string{"dateJoined", "firstName", "lastName", "role", "isAdmin", "isDeleted"}
)

// NormalizeSort validates by against the allow-list and falls back to
// defaultBy for anything outside it. Dir defaults to desc; only an explicit
// "asc" flips it.
func NormalizeSort(by, dir string, allowed []string, defaultBy string) Sort {
	out := Sort{By: defaultBy, Dir: "desc"}
	for _, key := range allowed {
		if key == by {
			out.By = by
			break
		}
	}
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		out.Dir = "asc"
	}
	return out
}

// MarketplaceSort is the combined sort enum for the buyer marketplace.
type MarketplaceSort string

const (
	SortNewest    MarketplaceSort = "newest"
	SortPriceAsc  MarketplaceSort = "priceAsc"
	SortPriceDesc MarketplaceSort = "priceDesc"
	SortRating    MarketplaceSort = "rating"
)

// NormalizeMarketplaceSort falls back to newest for unknown values.
func NormalizeMarketplaceSort(s string) MarketplaceSort {
	switch MarketplaceSort(s) {
	case SortPriceAsc, SortPriceDesc, SortRating:
		return MarketplaceSort(s)
	default:
		return SortNewest
	}
}

// NormalizeSearch trims free-text search input; an all-whitespace query is
// treated as absent.
func NormalizeSearch(q string) string {
	return strings.TrimSpace(q)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// NormalizeDate parses a date filter value. Invalid dates are dropped
// silently (nil), never rejected.
func NormalizeDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
