package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/customtee/platform-api/internal/application"
	"github.com/customtee/platform-api/internal/container"
	handlers "github.com/customtee/platform-api/internal/interface/http"
	"github.com/customtee/platform-api/internal/interface/middleware"
)

// DashboardModule wires the buyer marketplace, favorite toggle, the
// role-specific dashboard stubs and the admin overview.
type DashboardModule struct {
	Handler *handlers.DashboardHandler
	Auth    *application.AuthService
}

func NewDashboardModule(h *handlers.DashboardHandler, auth *application.AuthService) *DashboardModule {
	return &DashboardModule{Handler: h, Auth: auth}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	authed := rg.Group("/")
	authed.Use(
		middleware.Auth(m.Auth),
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		authed.GET("/dashboard/buyer/marketplace", m.Handler.Marketplace)
		authed.GET("/dashboard/buyer/orders", m.Handler.BuyerOrders)
		authed.GET("/dashboard/freelancer/portfolio", m.Handler.FreelancerPortfolio)
		authed.POST("/designs/:id/favorite", m.Handler.ToggleFavorite)
	}

	admin := authed.Group("/")
	admin.Use(middleware.AdminOnly(m.Auth))
	{
		admin.GET("/dashboard/admin/overview", m.Handler.AdminOverview)
	}
}
