// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/packdash/backend-go/internal/api/handlers"
	"github.com/packdash/backend-go/internal/api/middleware"
	"github.com/packdash/backend-go/internal/service"
)

type Services struct {
	Clients  handlers.ClientService
	Orders   handlers.OrderService
	Insights handlers.InsightService
	Clock    service.Clock
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")
	apiGroup.GET("/catalog", handlers.Catalog)

	if services == nil {
		return router
	}

	if services.Clients != nil && services.Orders != nil && services.Insights != nil {
		clientHandler := handlers.NewClientHandler(services.Clients, services.Orders, services.Insights, services.Clock)
		clientGroup := apiGroup.Group("/clients")
		{
			clientGroup.GET("", clientHandler.List)
			clientGroup.POST("", clientHandler.Create)
			clientGroup.GET("/:id", clientHandler.Get)
			clientGroup.PUT("/:id", clientHandler.Update)
			clientGroup.DELETE("/:id", clientHandler.Delete)
			clientGroup.GET("/:id/orders", clientHandler.Orders)
			clientGroup.GET("/:id/insight", clientHandler.Insight)
		}
	}

	if services.Orders != nil {
		orderHandler := handlers.NewOrderHandler(services.Orders)
		orderGroup := apiGroup.Group("/orders")
		{
			orderGroup.GET("", orderHandler.List)
			orderGroup.POST("", orderHandler.Create)
			orderGroup.GET("/:id", orderHandler.Get)
			orderGroup.PUT("/:id", orderHandler.Update)
			orderGroup.DELETE("/:id", orderHandler.Delete)
		}
	}

	if services.Insights != nil {
		insightHandler := handlers.NewInsightHandler(services.Insights, services.Clock)
		insightGroup := apiGroup.Group("/insights")
		{
			insightGroup.GET("/dashboard", insightHandler.Dashboard)
			insightGroup.GET("/overdue", insightHandler.Overdue)
			insightGroup.GET("/upcoming", insightHandler.Upcoming)
			insightGroup.GET("/inactive", insightHandler.Inactive)
		}

		notificationGroup := apiGroup.Group("/notifications")
		{
			notificationGroup.GET("", insightHandler.Notifications)
			notificationGroup.DELETE("", insightHandler.ClearNotifications)
			notificationGroup.POST("/read", insightHandler.MarkAllRead)
			notificationGroup.POST("/:id/read", insightHandler.MarkRead)
			notificationGroup.DELETE("/:id", insightHandler.DeleteNotification)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
