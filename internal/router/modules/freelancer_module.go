package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/customtee/platform-api/internal/application"
	"github.com/customtee/platform-api/internal/container"
	handlers "github.com/customtee/platform-api/internal/interface/http"
	"github.com/customtee/platform-api/internal/interface/middleware"
)

// FreelancerModule wires the applicant-facing application routes.
type FreelancerModule struct {
	Handler *handlers.FreelancerHandler
	Auth    *application.AuthService
}

func NewFreelancerModule(h *handlers.FreelancerHandler, auth *application.AuthService) *FreelancerModule {
	return &FreelancerModule{Handler: h, Auth: auth}
}

func (m *FreelancerModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/freelancers")
	grp.Use(middleware.Auth(m.Auth))
	{
		// Submissions are throttled harder than reads
		applyLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByUserID(), nil)
		grp.POST("/apply", applyLimiter, m.Handler.Apply)
		grp.GET("/application", m.Handler.Mine)
	}
}
