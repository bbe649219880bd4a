package handlers

import (
	portssvc "github.com/finbooks/ledger/internal/core/ports/services"
	"github.com/finbooks/ledger/internal/dto"
	"github.com/finbooks/ledger/internal/middleware"
	"github.com/finbooks/ledger/pkg/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	dto.RegisterValidations()

	// Health check route stays public.
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Every v1 route requires a caller identity for the audit columns.
	v1 := r.Group("/api/v1", middleware.IdentityMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, services.Registry, services.Reporting)
	registerLedgerRoutes(v1, services.Ledger)
	registerPeriodRoutes(v1, services.Periods)
	registerReportingRoutes(v1, services.Reporting)
	registerDocumentRoutes(v1, services.Documents)
	registerAuditRoutes(v1, services.Audit)
}
