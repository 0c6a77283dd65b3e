package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mahmoudraed/accounting-api/internal/application/dto"
	"github.com/mahmoudraed/accounting-api/internal/application/tenancy"
	"github.com/mahmoudraed/accounting-api/internal/domain"
	"github.com/mahmoudraed/accounting-api/internal/domain/entity"
)

// MigrationHandler exposes the operator-triggered legacy data migration.
type MigrationHandler struct {
	migrateUC *tenancy.MigrateUseCase
}

// NewMigrationHandler builds the handler injecting the use case.
func NewMigrationHandler(migrateUC *tenancy.MigrateUseCase) *MigrationHandler {
	return &MigrationHandler{migrateUC: migrateUC}
}

// MigrateLegacy godoc
// @Summary      Run the legacy data migration for a tenant
// @Description  Copies the flat legacy collections into per-tenant
// @Description  subcollections. Safe to re-invoke: every write is an
// @Description  idempotent full replace keyed by the legacy document ID.
// @Tags         migrations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MigrateLegacyRequest  false  "Target tenant (defaults to the primary tenant)"
// @Success      200   {object}  dto.MigrationReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/migrations/legacy [post]
func (h *MigrationHandler) MigrateLegacy(c *fiber.Ctx) error {
	var in dto.MigrateLegacyRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.TenantID == "" {
		in.TenantID = entity.PrimaryTenantID
	}

	report, err := h.migrateUC.MigrateLegacyData(c.Context(), in.TenantID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	// Business-data failures live inside the report, not in the status code.
	return c.JSON(report.ToResponse())
}
