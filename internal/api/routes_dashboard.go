package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/handlers"
	"github.com/dvcruz/progtrack/internal/middleware"
	"github.com/dvcruz/progtrack/internal/services"
)

func registerDashboardRoutes(api *gin.RouterGroup, db *gorm.DB, store *audit.Store) error {
	svc, err := services.NewDashboardService(db, store)
	if err != nil {
		return err
	}
	handler := handlers.NewDashboardHandler(svc)

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/admin", middleware.RequireAdmin(), handler.Admin)
		dashboard.GET("/me", handler.Me)
	}
	return nil
}
