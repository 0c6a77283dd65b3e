package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProvisionTenantRequest input for first-run tenant provisioning.
// Every field is optional; an absent name falls back to the default Arabic
// display name.
type ProvisionTenantRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Logo           string `json:"logo"`
	WhatsappQRCode string `json:"whatsappQRCode"`
}

// ProvisionTenantResponse returns the identifier of the provisioned tenant.
type ProvisionTenantResponse struct {
	TenantID string `json:"tenantId"`
}

// UpdateExchangeRatesRequest replaces the tenant's exchange-rate table.
type UpdateExchangeRatesRequest struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// TenantSettingsResponse tenant localization and currency settings.
type TenantSettingsResponse struct {
	Currency      string                     `json:"currency"`
	Language      string                     `json:"language"`
	Timezone      string                     `json:"timezone"`
	ExchangeRates map[string]decimal.Decimal `json:"exchangeRates"`
}

// TenantResponse tenant record as exposed over HTTP.
type TenantResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Slug           string                 `json:"slug"`
	Phone          string                 `json:"phone"`
	Email          string                 `json:"email"`
	Address        string                 `json:"address"`
	Logo           string                 `json:"logo"`
	WhatsappQRCode string                 `json:"whatsappQRCode"`
	Settings       TenantSettingsResponse `json:"settings"`
	IsActive       bool                   `json:"isActive"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}
