package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mahmoudraed/accounting-api/internal/application/tenancy"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	ProvisionUC *tenancy.ProvisionUseCase
	TenantUC    *tenancy.TenantUseCase
	MigrateUC   *tenancy.MigrateUseCase
	JWTSecret   string
}

// Router registers the API routes. Every route requires a Bearer token; the
// admin group (provisioning, migrations) additionally requires the admin role.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	tenantHandler := NewTenantHandler(deps.ProvisionUC, deps.TenantUC)
	migrationHandler := NewMigrationHandler(deps.MigrateUC)

	// Tenant record (any authenticated role)
	tenants := api.Group("/tenants")
	tenants.Get("/:id", tenantHandler.GetByID)

	// Operator-only surface
	admin := api.Group("/admin", RequireRole("admin"))
	admin.Post("/tenants/provision", tenantHandler.Provision)
	admin.Post("/migrations/legacy", migrationHandler.MigrateLegacy)

	// Exchange-rate edits change how every ledger is valued; keep them admin-only.
	admin.Put("/tenants/:id/exchange-rates", tenantHandler.UpdateExchangeRates)
}
