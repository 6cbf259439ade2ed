package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/customtee/platform-api/internal/application"
	handlers "github.com/customtee/platform-api/internal/interface/http"
	"github.com/customtee/platform-api/internal/interface/middleware"
)

// AdminModule wires the review queue and the user directory. Every route
// sits behind Auth + AdminOnly.
type AdminModule struct {
	Handler *handlers.AdminHandler
	Auth    *application.AuthService
}

func NewAdminModule(h *handlers.AdminHandler, auth *application.AuthService) *AdminModule {
	return &AdminModule{Handler: h, Auth: auth}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/admin")
	grp.Use(middleware.Auth(m.Auth), middleware.AdminOnly(m.Auth))
	{
		grp.GET("/freelancers/applications", m.Handler.ListApplications)
		grp.POST("/freelancers/:id/approve", m.Handler.ApproveApplication)
		grp.POST("/freelancers/:id/reject", m.Handler.RejectApplication)

		grp.GET("/users", m.Handler.ListUsers)
		grp.PATCH("/users/:id/role", m.Handler.SetRole)
		grp.PATCH("/users/:id/admin", m.Handler.SetAdmin)
		grp.PATCH("/users/:id/active", m.Handler.SetActive)
	}
}
