package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/handlers"
	"github.com/dvcruz/progtrack/internal/middleware"
	"github.com/dvcruz/progtrack/internal/services"
)

func registerReviewRoutes(api *gin.RouterGroup, db *gorm.DB, hook *audit.Hook) error {
	svc, err := services.NewReviewService(db, hook)
	if err != nil {
		return err
	}
	handler := handlers.NewReviewHandler(svc)

	reviews := api.Group("/review")
	reviews.Use(middleware.RequireAdmin())
	{
		reviews.GET("/pending", handler.Pending)
		reviews.GET("/pending/counts", handler.PendingCounts)
		reviews.POST("/:kind/:id", handler.Decide)
	}
	return nil
}
