package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/audit"
	"github.com/dvcruz/progtrack/internal/handlers"
	"github.com/dvcruz/progtrack/internal/middleware"
	"github.com/dvcruz/progtrack/internal/models"
	"github.com/dvcruz/progtrack/internal/review"
	"github.com/dvcruz/progtrack/internal/services"
)

// registerSubmissionRoutes mounts one route group per review-eligible entity
// kind, each backed by its own typed service sharing the audit hook.
func registerSubmissionRoutes(api *gin.RouterGroup, db *gorm.DB, hook *audit.Hook, policies map[models.EntityKind]review.Policy) error {
	if err := mountSubmission[models.TechTransfer](api, db, hook, policies); err != nil {
		return err
	}
	if err := mountSubmission[models.Award](api, db, hook, policies); err != nil {
		return err
	}
	if err := mountSubmission[models.Engagement](api, db, hook, policies); err != nil {
		return err
	}
	if err := mountSubmission[models.Modality](api, db, hook, policies); err != nil {
		return err
	}
	return mountSubmission[models.ImpactAssessment](api, db, hook, policies)
}

func mountSubmission[T any, PT services.SubmissionPtr[T]](api *gin.RouterGroup, db *gorm.DB, hook *audit.Hook, policies map[models.EntityKind]review.Policy) error {
	kind := PT(new(T)).AuditKind()
	policy, ok := policies[kind]
	if !ok {
		policy = review.DefaultPolicy()
	}

	svc, err := services.NewSubmissionService[T, PT](db, hook, policy)
	if err != nil {
		return err
	}
	handler := handlers.NewSubmissionHandler(svc)

	group := api.Group("/" + kind.Slug())
	{
		group.GET("", handler.List)
		group.GET("/statistics", handler.Statistics)
		group.GET("/:id", handler.Get)
		group.POST("", handler.Create)
		group.PUT("/:id", handler.Update)
		group.POST("/:id/archive", handler.Archive)
		group.DELETE("/:id", middleware.RequireAdmin(), handler.Delete)
	}
	return nil
}
