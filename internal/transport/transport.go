package transport

import (
	"github.com/aruizmx/invitados/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

func InitRoutes(guestHandler *GuestHandler) *gin.Engine {

	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	// API routes
	api := router.Group("/api/v1")
	{
		guests := api.Group("/guests")
		{
			guests.POST("", guestHandler.CreateGuest)
			guests.GET("", guestHandler.ListGuests)
			guests.GET("/export", guestHandler.ExportGuests)
			guests.GET("/:id", guestHandler.GetGuest)
			guests.PUT("/:id", guestHandler.UpdateGuest)
			guests.DELETE("/:id", guestHandler.DeleteGuest)
		}

		api.GET("/stats", guestHandler.GetStats)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return router
}
