package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mahmoudraed/accounting-api/internal/application/dto"
	"github.com/mahmoudraed/accounting-api/internal/application/tenancy"
	"github.com/mahmoudraed/accounting-api/internal/domain"
)

// TenantHandler handles HTTP requests for the tenant resource.
type TenantHandler struct {
	provisionUC *tenancy.ProvisionUseCase
	tenantUC    *tenancy.TenantUseCase
}

// NewTenantHandler builds the handler injecting the use cases.
func NewTenantHandler(provisionUC *tenancy.ProvisionUseCase, tenantUC *tenancy.TenantUseCase) *TenantHandler {
	return &TenantHandler{provisionUC: provisionUC, tenantUC: tenantUC}
}

// Provision godoc
// @Summary      Provision the tenant record
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProvisionTenantRequest  true  "Tenant data (all fields optional)"
// @Success      201   {object}  dto.ProvisionTenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/provision [post]
func (h *TenantHandler) Provision(c *fiber.Ctx) error {
	var in dto.ProvisionTenantRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	tenantID, err := h.provisionUC.ProvisionTenant(c.Context(), in)
	if err != nil {
		var provErr *domain.ProvisionError
		if errors.As(err, &provErr) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "STORE_WRITE_FAILED", Message: provErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProvisionTenantResponse{TenantID: tenantID})
}

// GetByID godoc
// @Summary      Get tenant by ID
// @Tags         tenants
// @Produce      json
// @Param        id   path  string  true  "Tenant ID"
// @Success      200  {object}  dto.TenantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id} [get]
func (h *TenantHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	tenant, err := h.tenantUC.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tenant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(tenancy.ToTenantResponse(tenant))
}

// UpdateExchangeRates godoc
// @Summary      Replace the tenant's exchange-rate table
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "Tenant ID"
// @Param        body  body  dto.UpdateExchangeRatesRequest  true  "New rates"
// @Success      200   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/exchange-rates [put]
func (h *TenantHandler) UpdateExchangeRates(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	var in dto.UpdateExchangeRatesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	tenant, err := h.tenantUC.UpdateExchangeRates(c.Context(), id, in.Rates)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRate):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RATE", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tenant not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(tenancy.ToTenantResponse(tenant))
}
