package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/brokerpulse/config"
	"github.com/guttosm/brokerpulse/internal/api"
	"github.com/guttosm/brokerpulse/internal/service"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the configured data source (postgres, s3 or file, optionally cached).
//   - Initializes the dashboard service.
//   - Creates the HTTP handler layer with the dashboard defaults.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources.
func InitializeApp(ctx context.Context) (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	src, cleanup, err := NewDataSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// Initialize service layer (business logic)
	svc := service.NewDashboardService(src)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc, api.Defaults{
		TopK:   cfg.Dashboard.TopK,
		Pinned: cfg.Dashboard.PinnedEntity,
	})

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	api.NewHealthHandler(src.Ping).Register(router)

	return router, cleanup, nil
}
