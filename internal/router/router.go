package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/steelhall-dev/steelhall/internal/handlers"
	"github.com/steelhall-dev/steelhall/internal/middleware"
	"github.com/steelhall-dev/steelhall/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)

	authed := r.Group("", middleware.AuthMiddleware())
	{
		authed.GET("/me", handlers.Me)

		halls := authed.Group("/halls")
		{
			halls.GET("", handlers.ListHalls)
			halls.POST("", handlers.CreateHall)
			halls.GET("/:id", handlers.GetHall)
			halls.PUT("/:id", handlers.UpdateHall)
			halls.DELETE("/:id", handlers.DeleteHall)
			halls.GET("/:id/calculate", handlers.CalculateHall)
		}

		prices := authed.Group("/prices")
		{
			prices.GET("", handlers.ListMaterials)
			prices.POST("", handlers.CreateMaterial)
			prices.GET("/:id", handlers.GetMaterial)
			prices.PUT("/:id", handlers.UpdateMaterial)
			prices.DELETE("/:id", handlers.DeleteMaterial)
		}

		amounts := authed.Group("/amounts")
		{
			amounts.GET("", handlers.ListUsages)
			amounts.POST("", handlers.CreateUsage)
			amounts.GET("/:id", handlers.GetUsage)
			amounts.PUT("/:id", handlers.UpdateUsage)
			amounts.DELETE("/:id", handlers.DeleteUsage)
		}

		users := authed.Group("/users")
		{
			users.GET("", handlers.ListUsers)
			users.GET("/:id", handlers.GetUser)
			users.PUT("/:id", handlers.UpdateUser)
			users.DELETE("/:id", handlers.DeleteUser)
		}
	}

	return r
}
