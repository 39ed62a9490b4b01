package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/middleware"
	"github.com/terratale/ledgerd/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service provider.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceProvider) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1", middleware.TokenAuthMiddleware(cfg.APIToken))

	registerUserRoutes(v1, services.UserSvc, services.AccountSvc)
	registerBankRoutes(v1, services.BankSvc, services.LedgerSvc)
	registerAccountRoutes(v1, services.AccountSvc, services.LedgerSvc, services.InvoiceSvc)
	registerLedgerRoutes(v1, services.LedgerSvc)
	registerInvoiceRoutes(v1, services.InvoiceSvc)
	registerScheduleRoutes(v1, services.ScheduleSvc)
}
