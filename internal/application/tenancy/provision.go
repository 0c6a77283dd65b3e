package tenancy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mahmoudraed/accounting-api/internal/application/dto"
	"github.com/mahmoudraed/accounting-api/internal/domain"
	"github.com/mahmoudraed/accounting-api/internal/domain/entity"
	"github.com/mahmoudraed/accounting-api/internal/domain/repository"
	"github.com/mahmoudraed/accounting-api/pkg/logger"
)

// ProvisionUseCase creates the well-known tenant record at first-run setup.
type ProvisionUseCase struct {
	store repository.DocumentStore
	log   *logger.Logger
}

// NewProvisionUseCase builds the use case with the persistence port.
func NewProvisionUseCase(store repository.DocumentStore, log *logger.Logger) *ProvisionUseCase {
	return &ProvisionUseCase{store: store, log: log}
}

// ProvisionTenant writes the tenant record at tenants/{id} with the fixed
// identifier and default settings, fully replacing any prior value, so
// re-invocation overwrites rather than duplicating. Returns the tenant ID, or
// a *domain.ProvisionError when the write fails.
func (uc *ProvisionUseCase) ProvisionTenant(ctx context.Context, in dto.ProvisionTenantRequest) (string, error) {
	if uc.store == nil {
		return "", fmt.Errorf("provision: %w: document store not initialized", domain.ErrInvalidInput)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = entity.DefaultTenantName
	}

	now := time.Now().UTC()
	tenant := &entity.Tenant{
		ID:            entity.PrimaryTenantID,
		Name:          name,
		Slug:          entity.Slugify(name),
		Phone:         in.Phone,
		LogoURL:       in.Logo,
		WhatsappQRURL: in.WhatsappQRCode,
		Settings: entity.TenantSettings{
			Currency:      entity.DefaultCurrency,
			Language:      entity.DefaultLanguage,
			Timezone:      entity.DefaultTimezone,
			ExchangeRates: entity.DefaultExchangeRates(),
		},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.store.PutDocument(ctx, entity.TenantPath(tenant.ID), tenant.ToFields()); err != nil {
		return "", &domain.ProvisionError{TenantID: tenant.ID, Cause: err}
	}

	uc.log.Info().
		Str("tenant_id", tenant.ID).
		Str("name", tenant.Name).
		Msg("tenant provisioned")
	return tenant.ID, nil
}
