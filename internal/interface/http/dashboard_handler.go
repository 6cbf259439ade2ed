package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/customtee/platform-api/internal/application"
	"github.com/customtee/platform-api/pkg/response"
)

type DashboardHandler struct {
	Catalog  *application.CatalogService
	Overview *application.OverviewService
	Logger   *logrus.Logger
}

func NewDashboardHandler(catalog *application.CatalogService, overview *application.OverviewService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Catalog: catalog, Overview: overview, Logger: logger}
}

// Marketplace serves GET /dashboard/buyer/marketplace. The service already
// absorbs storage failures, so this handler always answers 200.
func (h *DashboardHandler) Marketplace(c *gin.Context) {
	page := h.Catalog.ListDesigns(c.Request.Context(), c.GetString("userID"), application.MarketplaceParams{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Page:     c.Query("page"),
		PageSize: c.Query("pageSize"),
	})
	response.Success(c, http.StatusOK, page, "", nil)
}

// ToggleFavorite serves POST /designs/:id/favorite.
func (h *DashboardHandler) ToggleFavorite(c *gin.Context) {
	res, err := h.Catalog.ToggleFavorite(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrDesignNotFound) {
			response.Error(c, http.StatusNotFound, "design not found", nil)
			return
		}
		h.Logger.WithError(err).Error("favorite toggle failed")
		response.Error(c, http.StatusInternalServerError, "could not update favorite", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"isFavorite":     res.IsFavorite,
		"favoritesCount": res.FavoritesCount,
	}, res.Message, nil)
}

// AdminOverview serves GET /dashboard/admin/overview.
func (h *DashboardHandler) AdminOverview(c *gin.Context) {
	stats := h.Overview.AdminStats(c.Request.Context())
	response.Success(c, http.StatusOK, stats, "", nil)
}

// BuyerOrders is a stub until ordering lands.
func (h *DashboardHandler) BuyerOrders(c *gin.Context) {
	response.Success[any](c, http.StatusOK, gin.H{"orders": []any{}}, "", nil)
}

// FreelancerPortfolio is a stub until design authorship lands.
func (h *DashboardHandler) FreelancerPortfolio(c *gin.Context) {
	response.Success[any](c, http.StatusOK, gin.H{"designs": []any{}}, "", nil)
}
