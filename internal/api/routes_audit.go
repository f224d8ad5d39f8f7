package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/handlers"
	"github.com/dvcruz/progtrack/internal/middleware"
)

// registerAuditRoutes mounts the read-only audit trail. The trail is an
// administrative surface; there is no write route because audit rows are
// appended exclusively by the recorder.
func registerAuditRoutes(api *gin.RouterGroup, store *audit.Store) {
	handler := handlers.NewAuditHandler(store)

	trail := api.Group("/audit")
	trail.Use(middleware.RequireAdmin())
	{
		trail.GET("", handler.List)
		trail.GET("/export", handler.Export)
		trail.GET("/statistics", handler.Statistics)
		trail.GET("/:kind/:id", handler.EntityHistory)
	}
}
