package tenancy

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahmoudraed/accounting-api/internal/application/dto"
	"github.com/mahmoudraed/accounting-api/internal/domain/entity"
	"github.com/mahmoudraed/accounting-api/internal/domain/repository"
	"github.com/mahmoudraed/accounting-api/pkg/logger"
)

// TenantUseCase reads and updates the tenant record after provisioning.
type TenantUseCase struct {
	store repository.DocumentStore
	log   *logger.Logger
}

// NewTenantUseCase builds the use case with the persistence port.
func NewTenantUseCase(store repository.DocumentStore, log *logger.Logger) *TenantUseCase {
	return &TenantUseCase{store: store, log: log}
}

// Get returns the tenant record, or domain.ErrNotFound (wrapped) when absent.
func (uc *TenantUseCase) Get(ctx context.Context, tenantID string) (*entity.Tenant, error) {
	doc, err := uc.store.GetDocument(ctx, entity.TenantPath(tenantID))
	if err != nil {
		return nil, err
	}
	return entity.TenantFromFields(doc.Fields)
}

// UpdateExchangeRates replaces the tenant's exchange-rate table after
// validation and bumps updatedAt. The write is a read-modify-write of the
// whole record, so the new rates propagate to every reader of the tenant
// document in one step.
func (uc *TenantUseCase) UpdateExchangeRates(ctx context.Context, tenantID string, rates map[string]decimal.Decimal) (*entity.Tenant, error) {
	if err := entity.ValidateExchangeRates(rates); err != nil {
		return nil, err
	}

	tenant, err := uc.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	next := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		next[code] = rate
	}
	tenant.Settings.ExchangeRates = next
	tenant.UpdatedAt = time.Now().UTC()

	if err := uc.store.PutDocument(ctx, entity.TenantPath(tenantID), tenant.ToFields()); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("tenant_id", tenantID).
		Int("currencies", len(next)).
		Msg("exchange rates updated")
	return tenant, nil
}

// ToTenantResponse converts a tenant entity to its HTTP representation.
func ToTenantResponse(t *entity.Tenant) dto.TenantResponse {
	return dto.TenantResponse{
		ID:             t.ID,
		Name:           t.Name,
		Slug:           t.Slug,
		Phone:          t.Phone,
		Email:          t.Email,
		Address:        t.Address,
		Logo:           t.LogoURL,
		WhatsappQRCode: t.WhatsappQRURL,
		Settings: dto.TenantSettingsResponse{
			Currency:      t.Settings.Currency,
			Language:      t.Settings.Language,
			Timezone:      t.Settings.Timezone,
			ExchangeRates: t.Settings.ExchangeRates,
		},
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
