package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		size     string
		wantPage int
		wantSize int
	}{
		{"defaults on empty", "", "", 1, AdminDefaultPageSize},
		{"valid values", "3", "25", 3, 25},
		{"zero page clamps to one", "0", "10", 1, 10},
		{"negative page clamps to one", "-4", "10", 1, 10},
		{"non-numeric page falls back", "abc", "10", 1, 10},
		{"non-numeric size falls back", "2", "lots", 2, AdminDefaultPageSize},
		{"oversized clamps to max", "1", "500", 1, AdminMaxPageSize},
		{"zero size clamps to one", "1", "0", 1, 1},
		{"whitespace tolerated", " 2 ", " 20 ", 2, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NormalizePage(tt.page, tt.size, AdminDefaultPageSize, AdminMaxPageSize)
			assert.Equal(t, tt.wantPage, p.Number)
			assert.Equal(t, tt.wantSize, p.Size)
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Size: 10}.Offset())
	assert.Equal(t, 10, Page{Number: 2, Size: 10}.Offset())
	assert.Equal(t, 24, Page{Number: 3, Size: 12}.Offset())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 12, 9},
		{5, 0, 5}, // degenerate size clamps to 1
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestNormalizeSort(t *testing.T) {
	s := NormalizeSort("status", "asc", ApplicationSortKeys, "createdAt")
	assert.Equal(t, Sort{By: "status", Dir: "asc"}, s)

	s = NormalizeSort("createdAt", "", ApplicationSortKeys, "createdAt")
	assert.Equal(t, Sort{By: "createdAt", Dir: "desc"}, s)

	// outside the allow-list falls back to the default key
	s = NormalizeSort("password_hash; DROP TABLE users", "desc", UserSortKeys, "dateJoined")
	assert.Equal(t, Sort{By: "dateJoined", Dir: "desc"}, s)

	// only explicit asc flips direction
	s = NormalizeSort("firstName", "ascending", UserSortKeys, "dateJoined")
	assert.Equal(t, "desc", s.Dir)
	s = NormalizeSort("firstName", "ASC", UserSortKeys, "dateJoined")
	assert.Equal(t, "asc", s.Dir)
}

func TestNormalizeMarketplaceSort(t *testing.T) {
	assert.Equal(t, SortPriceAsc, NormalizeMarketplaceSort("priceAsc"))
	assert.Equal(t, SortPriceDesc, NormalizeMarketplaceSort("priceDesc"))
	assert.Equal(t, SortRating, NormalizeMarketplaceSort("rating"))
	assert.Equal(t, SortNewest, NormalizeMarketplaceSort("newest"))
	assert.Equal(t, SortNewest, NormalizeMarketplaceSort(""))
	assert.Equal(t, SortNewest, NormalizeMarketplaceSort("cheapest"))
}

func TestNormalizeSearch(t *testing.T) {
	assert.Equal(t, "sunset", NormalizeSearch("  sunset  "))
	assert.Equal(t, "", NormalizeSearch("   "))
}

func TestNormalizeDate(t *testing.T) {
	got := NormalizeDate("2024-03-01")
	if assert.NotNil(t, got) {
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got.UTC())
	}

	got = NormalizeDate("2024-03-01T10:30:00Z")
	if assert.NotNil(t, got) {
		assert.Equal(t, 10, got.UTC().Hour())
	}

	assert.Nil(t, NormalizeDate(""))
	assert.Nil(t, NormalizeDate("yesterday"))
	assert.Nil(t, NormalizeDate("2024-13-45"))
}
