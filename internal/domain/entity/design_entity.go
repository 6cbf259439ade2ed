package entity

import "time"

// Category groups designs for marketplace filtering.
// Slug is the URL-safe identifier the client filters by.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Design is a catalog entry. Only published designs are ever exposed through
// the marketplace; unpublished rows exist solely for the editing pipeline.
type Design struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"imageUrl"`
	Tags          []string  `json:"tags"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int       `json:"reviewCount"`
	IsPublished   bool      `json:"isPublished"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MarketplaceDesign is a Design enriched with the per-request favorite state
// of the requesting user. The favorite fields are computed per query and are
// never cached on the design row.
type MarketplaceDesign struct {
	Design
	Categories     []Category `json:"categories"`
	IsFavorite     bool       `json:"isFavorite"`
	FavoritesCount int        `json:"favoritesCount"`
}
