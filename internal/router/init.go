package router

import (
	"github.com/customtee/platform-api/internal/application"
	"github.com/customtee/platform-api/internal/container"
	pginfra "github.com/customtee/platform-api/internal/infrastructure/postgres"
	handlers "github.com/customtee/platform-api/internal/interface/http"
	"github.com/customtee/platform-api/internal/router/modules"
)

// InitModules constructs every feature module from the container singletons
// and registers it. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	log := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	designRepo := pginfra.NewDesignRepository(pool)
	appRepo := pginfra.NewApplicationRepository(pool)

	var notifier application.Notifier = application.NopNotifier{}
	if cfg.MailSendEnabled && container.GetRabbitPub() != nil {
		notifier = application.NewQueueNotifier(container.GetRabbitPub())
	}

	branding := application.MailBranding{
		CompanyName:    cfg.CompanyName,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		DashboardURL:   cfg.ClientURL + "/dashboard",
		UnsubscribeURL: cfg.UnsubscribeURL,
	}

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), container.GetRedis(), log)
	catalogSvc := application.NewCatalogService(designRepo, log)
	reviewSvc := application.NewReviewService(appRepo, userRepo, notifier, branding, log)
	directorySvc := application.NewDirectoryService(userRepo, log)
	overviewSvc := application.NewOverviewService(userRepo, appRepo, log)

	authHandler := handlers.NewAuthHandler(authSvc, log, cfg.CookieDomain, cfg.CookieSecure)
	dashboardHandler := handlers.NewDashboardHandler(catalogSvc, overviewSvc, log)
	freelancerHandler := handlers.NewFreelancerHandler(reviewSvc, log)
	adminHandler := handlers.NewAdminHandler(reviewSvc, directorySvc, log)

	r.Add(modules.NewAuthModule(authHandler, authSvc))
	r.Add(modules.NewDashboardModule(dashboardHandler, authSvc))
	r.Add(modules.NewFreelancerModule(freelancerHandler, authSvc))
	r.Add(modules.NewAdminModule(adminHandler, authSvc))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
