package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/interfaces/http/handler"
	"github.com/shopcore/backend/internal/interfaces/http/middleware"
)

// Dependencies holds everything the router needs
type Dependencies struct {
	Logger       *zap.Logger
	OrderHandler *handler.OrderHandler
	HealthCheck  func() error
}

// New builds the gin engine with all routes and middleware
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logging(deps.Logger))

	engine.GET("/health", func(c *gin.Context) {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		{
			orders.POST("", deps.OrderHandler.PlaceOrder)
			orders.GET("/:id", deps.OrderHandler.GetOrder)
			orders.POST("/:id/pay", deps.OrderHandler.PayOrder)
		}
	}

	return engine
}
