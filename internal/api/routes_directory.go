package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/handlers"
	"github.com/dvcruz/progtrack/internal/middleware"
	"github.com/dvcruz/progtrack/internal/services"
)

// registerDirectoryRoutes mounts the campus and college directory. Reads are
// open to every authenticated user; writes are administrative.
func registerDirectoryRoutes(api *gin.RouterGroup, db *gorm.DB, hook *audit.Hook) error {
	campusSvc, err := services.NewCampusService(db, hook)
	if err != nil {
		return err
	}
	collegeSvc, err := services.NewCollegeService(db, hook)
	if err != nil {
		return err
	}

	campusHandler := handlers.NewCampusHandler(campusSvc)
	collegeHandler := handlers.NewCollegeHandler(collegeSvc)
	requireAdmin := middleware.RequireAdmin()

	campuses := api.Group("/campuses")
	{
		campuses.GET("", campusHandler.List)
		campuses.GET("/:id", campusHandler.Get)
		campuses.POST("", requireAdmin, campusHandler.Create)
		campuses.PUT("/:id", requireAdmin, campusHandler.Update)
		campuses.DELETE("/:id", requireAdmin, campusHandler.Delete)
	}

	colleges := api.Group("/colleges")
	{
		colleges.GET("", collegeHandler.List)
		colleges.GET("/:id", collegeHandler.Get)
		colleges.POST("", requireAdmin, collegeHandler.Create)
		colleges.PUT("/:id", requireAdmin, collegeHandler.Update)
		colleges.DELETE("/:id", requireAdmin, collegeHandler.Delete)
	}
	return nil
}
