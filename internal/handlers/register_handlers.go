package handlers

import (
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/gold_ledger_app/internal/middleware"
	"github.com/aurumworks/gold_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// The acting user comes from the X-Actor-ID header; authn itself lives
	// outside this service.
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	registerAccountRoutes(v1, service.Account)
	registerJournalRoutes(v1, service.Journal)
	registerTreasuryRoutes(v1, service.Treasury)
	registerVoucherRoutes(v1, service.Voucher)
	registerWorkshopRoutes(v1, service.Workshop)
	registerManufacturingRoutes(v1, service.Manufacturing)
	registerPartyRoutes(v1, service.Party)
	registerSettingsRoutes(v1, service.Settings, service.Notification)
	registerInvoiceRoutes(v1, service.Posting)
	registerAuditRoutes(v1, service.Audit)
}
