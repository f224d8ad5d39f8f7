package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/handlers"
	"github.com/dvcruz/progtrack/internal/services"
)

func registerIntlPartnerRoutes(api *gin.RouterGroup, db *gorm.DB, hook *audit.Hook) error {
	svc, err := services.NewIntlPartnerService(db, hook)
	if err != nil {
		return err
	}
	handler := handlers.NewIntlPartnerHandler(svc)

	partners := api.Group("/international-partners")
	{
		partners.GET("", handler.List)
		partners.GET("/:id", handler.Get)
		partners.POST("", handler.Create)
		partners.PUT("/:id", handler.Update)
		partners.POST("/:id/archive", handler.Archive)
	}
	return nil
}
