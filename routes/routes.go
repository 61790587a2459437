package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-guest-service/api"
	"hotel-guest-service/controllers"
	"hotel-guest-service/middleware"
	"hotel-guest-service/utils"
)

// SetupRouter wires middleware and the guest routes.
func SetupRouter(gc *controllers.GuestController, origins []string, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery())

	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound, "Resource not found")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/openapi.yaml", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/yaml; charset=utf-8", api.OpenAPISpec)
		})

		guests := v1.Group("/guests")
		{
			guests.POST("", gc.CreateGuest)
			guests.GET("", gc.GetGuests)

			// static search paths are registered alongside /:id; gin prefers them
			guests.GET("/search", gc.SearchGuests)
			guests.GET("/search/email", gc.SearchByEmail)
			guests.GET("/search/phone", gc.SearchByPhone)
			guests.GET("/search/loyalty-points", gc.SearchByLoyaltyPoints)

			guests.GET("/:id", gc.GetGuestByID)
			guests.PUT("/:id", gc.UpdateGuest)
			guests.DELETE("/:id", gc.DeleteGuest)
		}
	}

	return r
}
