package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter builds the gin engine serving the fulfillment API.
func NewRouter(serviceName string, handlers *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))

	Register(router, handlers)
	return router
}

// Register mounts the fulfillment routes on an existing engine.
func Register(router gin.IRouter, handlers *Handlers) {
	group := router.Group("/api/fulfillment")
	group.GET("/orders", handlers.ListOpenOrders)
	group.GET("/orders/:orderID", handlers.OrderDetail)
	group.GET("/orders/:orderID/progress", handlers.Progress)
	group.POST("/orders/:orderID/scan", handlers.Scan)
	group.POST("/orders/:orderID/search", handlers.Search)
	group.POST("/orders/:orderID/substitute", handlers.Substitute)
	group.POST("/orders/:orderID/unavailable", handlers.Unavailable)
}
