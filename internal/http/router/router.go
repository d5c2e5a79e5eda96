package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"leados.app/inbox/internal/http/handler"
	"leados.app/inbox/internal/http/middleware"
	"leados.app/inbox/internal/service"
)

type RouterConfig struct {
	DashboardURL string
	IsProduction bool
	// Ping reports database health for /health. Optional.
	Ping func(ctx context.Context) error
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		if cfg.Ping != nil {
			if err := cfg.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authService := services.Auth()
	requireAuth := middleware.RequireAuth(authService)

	authHandler := handler.NewAuthHandler(authService, cfg.DashboardURL, cfg.IsProduction)
	AuthRouter(router.Group("/auth"), authHandler, requireAuth)

	api := router.Group("/api", requireAuth)
	{
		ConversationRouter(api.Group("/conversations"), handler.NewConversationHandler(services.Conversations()))
		LeadRouter(api.Group("/leads"), handler.NewLeadHandler(services.Leads()))
		MessageRouter(api.Group("/messages"), handler.NewMessageHandler(services.Messages()))
		AppointmentRouter(api.Group("/appointments"), handler.NewAppointmentHandler(services.Appointments()))
	}
}
