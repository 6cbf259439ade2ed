package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customtee/platform-api/internal/application"
	"github.com/customtee/platform-api/internal/domain/entity"
	repo "github.com/customtee/platform-api/internal/domain/repository"
)

// stubDesignRepo serves a fixed set of published designs for handler tests.
type stubDesignRepo struct {
	designs   []entity.MarketplaceDesign
	favorites map[string]bool // designID, favorite state of the single test user
}

func (s *stubDesignRepo) ListPublished(_ context.Context, f repo.DesignFilter) ([]entity.MarketplaceDesign, int, error) {
	total := len(s.designs)
	start := f.Page.Offset()
	if start > total {
		start = total
	}
	end := start + f.Page.Size
	if end > total {
		end = total
	}
	return s.designs[start:end], total, nil
}

func (s *stubDesignRepo) ListCategories(context.Context) ([]entity.Category, error) {
	return []entity.Category{{ID: "c1", Name: "Nature", Slug: "nature"}}, nil
}

func (s *stubDesignRepo) GetPublished(_ context.Context, id string) (*entity.Design, error) {
	for _, d := range s.designs {
		if d.ID == id {
			design := d.Design
			return &design, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *stubDesignRepo) FavoriteExists(_ context.Context, designID, _ string) (bool, error) {
	return s.favorites[designID], nil
}

func (s *stubDesignRepo) AddFavorite(_ context.Context, designID, _ string) error {
	s.favorites[designID] = true
	return nil
}

func (s *stubDesignRepo) RemoveFavorite(_ context.Context, designID, _ string) error {
	delete(s.favorites, designID)
	return nil
}

func (s *stubDesignRepo) CountFavorites(_ context.Context, designID string) (int, error) {
	if s.favorites[designID] {
		return 1, nil
	}
	return 0, nil
}

func newTestRouter() (*gin.Engine, *stubDesignRepo) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	designs := &stubDesignRepo{
		designs: []entity.MarketplaceDesign{
			{Design: entity.Design{ID: "d1", Title: "Sunset Horizon", IsPublished: true}, Categories: []entity.Category{}},
			{Design: entity.Design{ID: "d2", Title: "Retro Wave", IsPublished: true}, Categories: []entity.Category{}},
		},
		favorites: map[string]bool{},
	}

	catalog := application.NewCatalogService(designs, logger)
	h := NewDashboardHandler(catalog, nil, logger)

	r := gin.New()
	// stand-in for the auth middleware
	r.Use(func(c *gin.Context) { c.Set("userID", "u1") })
	r.GET("/api/dashboard/buyer/marketplace", h.Marketplace)
	r.POST("/api/designs/:id/favorite", h.ToggleFavorite)
	return r, designs
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestMarketplaceEndpointNormalizesParams(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/buyer/marketplace?page=banana&pageSize=9999&sort=cheapest", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Success)

	var data struct {
		Designs    []entity.MarketplaceDesign `json:"designs"`
		Pagination application.Pagination     `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.Pagination.Page)
	assert.Equal(t, 48, data.Pagination.PageSize)
	assert.Equal(t, 2, data.Pagination.Total)
	assert.Len(t, data.Designs, 2)
}

func TestToggleFavoriteEndpoint(t *testing.T) {
	r, designs := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/designs/d1/favorite", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "Added to favorites.", env.Message)
	assert.True(t, designs.favorites["d1"])

	var data struct {
		IsFavorite     bool `json:"isFavorite"`
		FavoritesCount int  `json:"favoritesCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.IsFavorite)
	assert.Equal(t, 1, data.FavoritesCount)
}

func TestToggleFavoriteUnknownDesignReturns404(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/designs/missing/favorite", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "design not found", env.Message)
}
