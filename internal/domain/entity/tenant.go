package entity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahmoudraed/accounting-api/internal/domain"
)

// Well-known tenant defaults. The single tenant keeps a fixed identifier so
// provisioning is naturally idempotent: re-running overwrites the same record.
const (
	PrimaryTenantID   = "main"
	DefaultTenantName = "مؤسستي" // fallback display name
	DefaultCurrency   = "ILS"
	DefaultLanguage   = "ar"
	DefaultTimezone   = "Asia/Hebron"
)

// DefaultExchangeRates seeds the settings with the two currencies the ledgers
// are quoted against, in ILS per unit.
func DefaultExchangeRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": decimal.RequireFromString("3.65"),
		"JOD": decimal.RequireFromString("5.15"),
	}
}

// TenantSettings holds per-tenant localization and currency configuration.
type TenantSettings struct {
	Currency      string
	Language      string
	Timezone      string
	ExchangeRates map[string]decimal.Decimal
}

// Tenant represents one customer organization. All business data is scoped
// under its identifier, which is immutable once assigned.
type Tenant struct {
	ID            string
	Name          string
	Slug          string
	Phone         string
	Email         string
	Address       string
	LogoURL       string
	WhatsappQRURL string
	Settings      TenantSettings
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Slugify derives a URL-friendly slug from a display name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(s), "-")
}

// ValidateExchangeRates checks that every rate is a positive finite number
// keyed by a non-empty currency code. Returns domain.ErrInvalidRate otherwise.
func ValidateExchangeRates(rates map[string]decimal.Decimal) error {
	if len(rates) == 0 {
		return fmt.Errorf("%w: no rates given", domain.ErrInvalidRate)
	}
	for code, rate := range rates {
		if strings.TrimSpace(code) == "" {
			return fmt.Errorf("%w: empty currency code", domain.ErrInvalidRate)
		}
		if !rate.IsPositive() {
			return fmt.Errorf("%w: %s=%s", domain.ErrInvalidRate, code, rate)
		}
	}
	return nil
}

// ToFields serializes the tenant into its document representation.
// Exchange rates are written in sorted currency order so the stored record is
// deterministic across runs.
func (t *Tenant) ToFields() *Fields {
	rates := NewFields()
	codes := make([]string, 0, len(t.Settings.ExchangeRates))
	for code := range t.Settings.ExchangeRates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		rates.Set(code, Number(t.Settings.ExchangeRates[code]))
	}

	settings := NewFields().
		Set("currency", String(t.Settings.Currency)).
		Set("language", String(t.Settings.Language)).
		Set("timezone", String(t.Settings.Timezone)).
		Set("exchangeRates", Map(rates))

	return NewFields().
		Set("id", String(t.ID)).
		Set("name", String(t.Name)).
		Set("slug", String(t.Slug)).
		Set("phone", String(t.Phone)).
		Set("email", String(t.Email)).
		Set("address", String(t.Address)).
		Set("logo", String(t.LogoURL)).
		Set("whatsappQRCode", String(t.WhatsappQRURL)).
		Set("settings", Map(settings)).
		Set("isActive", Bool(t.IsActive)).
		Set("createdAt", Time(t.CreatedAt)).
		Set("updatedAt", Time(t.UpdatedAt))
}

// TenantFromFields rebuilds a tenant from its document representation.
func TenantFromFields(f *Fields) (*Tenant, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil tenant payload", domain.ErrInvalidInput)
	}
	t := &Tenant{
		ID:            fieldString(f, "id"),
		Name:          fieldString(f, "name"),
		Slug:          fieldString(f, "slug"),
		Phone:         fieldString(f, "phone"),
		Email:         fieldString(f, "email"),
		Address:       fieldString(f, "address"),
		LogoURL:       fieldString(f, "logo"),
		WhatsappQRURL: fieldString(f, "whatsappQRCode"),
	}
	if v, ok := f.Get("isActive"); ok {
		t.IsActive, _ = v.AsBool()
	}
	if v, ok := f.Get("createdAt"); ok {
		t.CreatedAt, _ = v.AsTime()
	}
	if v, ok := f.Get("updatedAt"); ok {
		t.UpdatedAt, _ = v.AsTime()
	}

	sv, ok := f.Get("settings")
	if !ok {
		return t, nil
	}
	sf, ok := sv.AsMap()
	if !ok {
		return nil, fmt.Errorf("%w: settings is not a map", domain.ErrInvalidInput)
	}
	t.Settings.Currency = fieldString(sf, "currency")
	t.Settings.Language = fieldString(sf, "language")
	t.Settings.Timezone = fieldString(sf, "timezone")
	if rv, ok := sf.Get("exchangeRates"); ok {
		rf, ok := rv.AsMap()
		if !ok {
			return nil, fmt.Errorf("%w: exchangeRates is not a map", domain.ErrInvalidInput)
		}
		t.Settings.ExchangeRates = make(map[string]decimal.Decimal, rf.Len())
		for _, code := range rf.Keys() {
			v, _ := rf.Get(code)
			rate, ok := v.AsNumber()
			if !ok {
				return nil, fmt.Errorf("%w: rate %s is not numeric", domain.ErrInvalidRate, code)
			}
			t.Settings.ExchangeRates[code] = rate
		}
	}
	return t, nil
}

func fieldString(f *Fields, key string) string {
	v, ok := f.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}
