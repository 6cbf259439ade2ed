package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/customtee/platform-api/internal/application"
	"github.com/customtee/platform-api/internal/container"
	handlers "github.com/customtee/platform-api/internal/interface/http"
	"github.com/customtee/platform-api/internal/interface/middleware"
)

// AuthModule wires the identity routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: POST /api/auth/logout, GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    *application.AuthService
}

func NewAuthModule(h *handlers.AuthHandler, auth *application.AuthService) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get a tight per-IP limiter
	credLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	grp := rg.Group("/auth")
	grp.POST("/register", credLimiter, m.Handler.Register)
	grp.POST("/login", credLimiter, m.Handler.Login)

	authed := grp.Group("/")
	authed.Use(middleware.Auth(m.Auth))
	{
		authed.POST("/logout", m.Handler.Logout)
		authed.GET("/me", m.Handler.Me)
	}
}
