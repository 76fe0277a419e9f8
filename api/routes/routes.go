package routes

import (
	"github.com/ccpc-cuj/membership-backend/internal/config"
	"github.com/ccpc-cuj/membership-backend/internal/handlers"
	"github.com/ccpc-cuj/membership-backend/internal/metrics"
	"github.com/ccpc-cuj/membership-backend/internal/middleware"
	"github.com/ccpc-cuj/membership-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HandlerDependencies holds everything the router wires into routes
type HandlerDependencies struct {
	RegistrationHandler *handlers.RegistrationHandler
	AdminHandler        *handlers.AdminHandler
	LegacyHandler       *handlers.LegacyHandler
	EmailHandler        *handlers.EmailHandler
	AdminVerifier       services.Verifier
	Metrics             *metrics.Metrics
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies, log zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log, deps.Metrics))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handlers.Health)
	router.GET("/", handlers.Root)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Public registration
	router.POST("/login", deps.RegistrationHandler.Register)
	router.POST("/api/register", deps.RegistrationHandler.Register)

	// Token-based admin console
	router.POST("/admin/login", deps.AdminHandler.Login)
	admin := router.Group("/admin")
	admin.Use(middleware.AdminGuard(deps.AdminVerifier, "ok", log))
	{
		admin.GET("/users", deps.AdminHandler.ListUsers)
		admin.GET("/users/:id", deps.AdminHandler.GetUser)
		admin.POST("/email/user/:id", deps.AdminHandler.EmailUser)
		admin.POST("/email/users", deps.AdminHandler.EmailUsers)
		admin.POST("/email/all", deps.AdminHandler.EmailAll)
	}

	// Older admin panel
	api := router.Group("/api")
	{
		api.POST("/admin/login", deps.LegacyHandler.Login)
		api.GET("/settings/registration-status", deps.LegacyHandler.GetRegistrationStatus)
		api.GET("/users", deps.LegacyHandler.ListUsers)

		guarded := api.Group("")
		if cfg.Admin.GuardLegacyRoutes {
			guarded.Use(middleware.AdminGuard(deps.AdminVerifier, "success", log))
		} else {
			log.Warn().Msg("legacy admin routes are not guarded")
		}
		guarded.PUT("/settings/registration-status", deps.LegacyHandler.SetRegistrationStatus)
		guarded.PUT("/users/:id/status", deps.LegacyHandler.UpdateStatus)
		guarded.POST("/users/:id/task", deps.LegacyHandler.AddTask)
		guarded.PUT("/users/:id/updateTasks", deps.LegacyHandler.ReplaceTasks)

		email := guarded.Group("/email")
		{
			email.POST("/send-individual", deps.EmailHandler.SendIndividual)
			email.POST("/send-bulk", deps.EmailHandler.SendBulk)
			email.POST("/send-custom", deps.EmailHandler.SendCustom)
			email.GET("/logs", deps.EmailHandler.ListLogs)
			email.GET("/logs/:id", deps.EmailHandler.GetLog)
		}
	}

	router.NoRoute(handlers.NotFound)

	return router
}
