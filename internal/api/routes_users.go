package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/handlers"
	"github.com/dvcruz/progtrack/internal/middleware"
	"github.com/dvcruz/progtrack/internal/services"
)

func registerUserRoutes(api *gin.RouterGroup, db *gorm.DB, hook *audit.Hook) error {
	svc, err := services.NewUserService(db, hook)
	if err != nil {
		return err
	}
	handler := handlers.NewUserHandler(svc)

	users := api.Group("/users")
	users.Use(middleware.RequireAdmin())
	{
		users.GET("", handler.List)
		users.GET("/:id", handler.Get)
		users.POST("", handler.Create)
		users.PUT("/:id", handler.Update)
		users.DELETE("/:id", handler.Delete)
	}
	return nil
}
