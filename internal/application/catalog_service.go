package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/customtee/platform-api/internal/domain/entity"
	repo "github.com/customtee/platform-api/internal/domain/repository"
	"github.com/customtee/platform-api/internal/listing"
)

var ErrDesignNotFound = errors.New("design not found")

// CatalogService serves the buyer marketplace: the published-design listing
// and the favorite toggle.
type CatalogService struct {
	Designs repo.DesignRepository
	Logger  *logrus.Logger
}

func NewCatalogService(designs repo.DesignRepository, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Designs: designs, Logger: logger}
}

// MarketplaceParams are the raw query parameters of the marketplace
// endpoint, normalized inside ListDesigns.
type MarketplaceParams struct {
	Search   string
	Category string
	Sort     string
	Page     string
	PageSize string
}

// Pagination is the listing meta block shared by paginated payloads.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// MarketplacePage is the marketplace listing payload.
type MarketplacePage struct {
	Designs             []entity.MarketplaceDesign `json:"designs"`
	AvailableCategories []entity.Category          `json:"availableCategories"`
	Pagination          Pagination                 `json:"pagination"`
}

// ListDesigns returns the marketplace page for the given viewer. The read
// path never fails: any repository error is logged and the caller gets an
// empty page so the storefront stays up while a dependency is down.
func (s *CatalogService) ListDesigns(ctx context.Context, viewerID string, p MarketplaceParams) *MarketplacePage {
	page := listing.NormalizePage(p.Page, p.PageSize, listing.MarketplaceDefaultPageSize, listing.MarketplaceMaxPageSize)

	category := listing.NormalizeSearch(p.Category)
	if category == "all" {
		category = ""
	}

	filter := repo.DesignFilter{
		Search:       listing.NormalizeSearch(p.Search),
		CategorySlug: category,
		Sort:         listing.NormalizeMarketplaceSort(p.Sort),
		Page:         page,
		ViewerID:     viewerID,
	}

	designs, total, err := s.Designs.ListPublished(ctx, filter)
	if err != nil {
		s.Logger.WithError(err).Error("marketplace listing failed, serving empty page")
		return emptyMarketplacePage(page)
	}

	categories, err := s.Designs.ListCategories(ctx)
	if err != nil {
		s.Logger.WithError(err).Error("category listing failed, serving empty page")
		return emptyMarketplacePage(page)
	}

	if designs == nil {
		designs = []entity.MarketplaceDesign{}
	}
	if categories == nil {
		categories = []entity.Category{}
	}

	return &MarketplacePage{
		Designs:             designs,
		AvailableCategories: categories,
		Pagination: Pagination{
			Page:       page.Number,
			PageSize:   page.Size,
			Total:      total,
			TotalPages: listing.TotalPages(total, page.Size),
		},
	}
}

func emptyMarketplacePage(page listing.Page) *MarketplacePage {
	return &MarketplacePage{
		Designs:             []entity.MarketplaceDesign{},
		AvailableCategories: []entity.Category{},
		Pagination: Pagination{
			Page:       page.Number,
			PageSize:   page.Size,
			Total:      0,
			TotalPages: 1,
		},
	}
}

// FavoriteResult is the outcome of a favorite toggle.
type FavoriteResult struct {
	DesignID       string `json:"designId"`
	IsFavorite     bool   `json:"isFavorite"`
	FavoritesCount int    `json:"favoritesCount"`
	Message        string `json:"-"`
}

// ToggleFavorite flips the favorite state of (user, design). Unlike the
// listing, this is a mutation: storage errors propagate to the caller.
func (s *CatalogService) ToggleFavorite(ctx context.Context, userID, designID string) (*FavoriteResult, error) {
	if _, err := s.Designs.GetPublished(ctx, designID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, err
	}

	exists, err := s.Designs.FavoriteExists(ctx, designID, userID)
	if err != nil {
		return nil, err
	}

	res := &FavoriteResult{DesignID: designID}
	if exists {
		if err := s.Designs.RemoveFavorite(ctx, designID, userID); err != nil {
			return nil, err
		}
		res.IsFavorite = false
		res.Message = "Removed from favorites."
	} else {
		if err := s.Designs.AddFavorite(ctx, designID, userID); err != nil {
			return nil, err
		}
		res.IsFavorite = true
		res.Message = "Added to favorites."
	}

	count, err := s.Designs.CountFavorites(ctx, designID)
	if err != nil {
		return nil, err
	}
	res.FavoritesCount = count
	return res, nil
}
