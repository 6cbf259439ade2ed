package repository

import (
	"context"

	"github.com/customtee/platform-api/internal/domain/entity"
	"github.com/customtee/platform-api/internal/listing"
)

// DesignFilter narrows the marketplace listing. ViewerID is the requesting
// user; it only affects the computed isFavorite flag, never the result set.
type DesignFilter struct {
	Search       string // ILIKE over title/description
	CategorySlug string // "" or "all" = no category filter
	Sort         listing.MarketplaceSort
	Page         listing.Page
	ViewerID     string
}

// DesignRepository defines the persistence contract for the design catalog
// and its favorite join records.
type DesignRepository interface {
	// ListPublished returns published designs matching f, each enriched
	// with the viewer's favorite flag and the total favorite count, plus
	// the total number of matching rows.
	ListPublished(ctx context.Context, f DesignFilter) ([]entity.MarketplaceDesign, int, error)

	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]entity.Category, error)

	// GetPublished fetches one published design by id; ErrNotFound covers
	// both missing and unpublished rows.
	GetPublished(ctx context.Context, id string) (*entity.Design, error)

	FavoriteExists(ctx context.Context, designID, userID string) (bool, error)
	AddFavorite(ctx context.Context, designID, userID string) error
	RemoveFavorite(ctx context.Context, designID, userID string) error
	CountFavorites(ctx context.Context, designID string) (int, error)
}
