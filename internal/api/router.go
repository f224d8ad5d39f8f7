package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/app"
	"github.com/dvcruz/progtrack/internal/audit"
	iauth "github.com/dvcruz/progtrack/internal/auth"
	"github.com/dvcruz/progtrack/internal/handlers"
	"github.com/dvcruz/progtrack/internal/middleware"
	"github.com/dvcruz/progtrack/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers every route.
// The audit pipeline (store, recorder, lifecycle hook) is constructed here and
// shared by all services so every mutation flows through a single recorder.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	store, err := audit.NewStore(db)
	if err != nil {
		return nil, err
	}
	recorder := audit.NewRecorder(store)
	hook := audit.NewHook(recorder)

	policies, err := cfg.Audit.VisibilityPolicies()
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	// Health endpoint (public)
	if cfg.Monitoring.Health.Enabled {
		r.GET("/health", handlers.Health(db))
	}

	authSvc, err := services.NewAuthService(db, jwt, recorder)
	if err != nil {
		return nil, err
	}
	authHandler := handlers.NewAuthHandler(authSvc)

	// Public auth routes. The anonymous actor middleware captures client
	// metadata so login attempts are attributable before authentication.
	public := r.Group("/api/auth")
	public.Use(middleware.AnonymousActor())
	{
		public.POST("/login", authHandler.Login)
	}

	requireAuth := middleware.Auth(jwt)

	api := r.Group("/api")
	api.Use(requireAuth)

	registerAuthRoutes(api, authHandler)

	if err := registerUserRoutes(api, db, hook); err != nil {
		return nil, err
	}
	if err := registerDirectoryRoutes(api, db, hook); err != nil {
		return nil, err
	}
	if err := registerSubmissionRoutes(api, db, hook, policies); err != nil {
		return nil, err
	}
	if err := registerReviewRoutes(api, db, hook); err != nil {
		return nil, err
	}
	if err := registerResolutionRoutes(api, db, hook); err != nil {
		return nil, err
	}
	if err := registerIntlPartnerRoutes(api, db, hook); err != nil {
		return nil, err
	}
	registerAuditRoutes(api, store)
	if err := registerDashboardRoutes(api, db, store); err != nil {
		return nil, err
	}

	// Metrics endpoint
	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
