package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/handlers"
	"github.com/dvcruz/progtrack/internal/services"
)

func registerResolutionRoutes(api *gin.RouterGroup, db *gorm.DB, hook *audit.Hook) error {
	svc, err := services.NewResolutionService(db, hook)
	if err != nil {
		return err
	}
	handler := handlers.NewResolutionHandler(svc)

	resolutions := api.Group("/resolutions")
	{
		resolutions.GET("", handler.List)
		resolutions.GET("/:id", handler.Get)
		resolutions.POST("", handler.Create)
		resolutions.PUT("/:id", handler.Update)
		resolutions.POST("/:id/archive", handler.Archive)
	}
	return nil
}
