package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson"

	"roastedin/api/handlers"
	"roastedin/api/middleware"
	"roastedin/db"
	_ "roastedin/docs"
	"roastedin/services"
)

func New(roastSvc *services.RoastService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())
	r.Use(middleware.RequestLoggingMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		// Try ping MongoDB
		if err := db.Database().RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.POST("/roasts", handlers.RoastProfileHandler(roastSvc))
		api.GET("/roasts", handlers.ListRoastsHandler(roastSvc))
		api.GET("/roasts/:id", handlers.GetRoastHandler(roastSvc))
	}

	return r
}
