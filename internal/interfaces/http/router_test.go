package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoudraed/accounting-api/internal/application/dto"
	"github.com/mahmoudraed/accounting-api/internal/application/tenancy"
	"github.com/mahmoudraed/accounting-api/internal/domain/entity"
	"github.com/mahmoudraed/accounting-api/internal/infrastructure/memory"
	apphttp "github.com/mahmoudraed/accounting-api/internal/interfaces/http"
	"github.com/mahmoudraed/accounting-api/pkg/logger"
)

// apiTestEnv wires the full HTTP stack over the in-memory store so handler
// tests exercise the same routes and middleware the binary serves.
type apiTestEnv struct {
	app   *fiber.App
	store *memory.DocumentStore
}

func newAPITestEnv(t *testing.T) *apiTestEnv {
	t.Helper()
	log := logger.New(logger.Config{Env: "test", Level: "disabled"})
	store := memory.NewDocumentStore()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProvisionUC: tenancy.NewProvisionUseCase(store, log),
		TenantUC:    tenancy.NewTenantUseCase(store, log),
		MigrateUC:   tenancy.NewMigrateUseCase(store, log, 2),
		JWTSecret:   testJWTSecret,
	})
	return &apiTestEnv{app: app, store: store}
}

func (env *apiTestEnv) do(t *testing.T, method, path, role string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAPI_ProvisionThenGetTenant(t *testing.T) {
	env := newAPITestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/admin/tenants/provision", "admin",
		dto.ProvisionTenantRequest{Name: "شركة النور", Phone: "0599000000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[dto.ProvisionTenantResponse](t, resp)
	assert.Equal(t, entity.PrimaryTenantID, created.TenantID,
		"provisioning always targets the primary tenant")

	resp = env.do(t, http.MethodGet, "/api/tenants/"+created.TenantID, "viewer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tenant := decodeBody[dto.TenantResponse](t, resp)
	assert.Equal(t, "شركة النور", tenant.Name)
	assert.Equal(t, entity.DefaultCurrency, tenant.Settings.Currency)
	assert.Equal(t, entity.DefaultLanguage, tenant.Settings.Language)
}

func TestAPI_GetUnknownTenantReturns404(t *testing.T) {
	env := newAPITestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/tenants/nope", "viewer", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ProvisionRequiresAdminRole(t *testing.T) {
	env := newAPITestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/admin/tenants/provision", "viewer",
		dto.ProvisionTenantRequest{Name: "x"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"only admins may provision the tenant record")
}

func TestAPI_MigrateLegacyReturnsFullReport(t *testing.T) {
	env := newAPITestEnv(t)
	env.store.Seed(entity.LegacyDocumentPath("sales", "inv-1"),
		entity.NewFields().Set("total", entity.Int(120)))
	env.store.Seed(entity.LegacyDocumentPath("customers", "c-1"),
		entity.NewFields().Set("name", entity.String("زبون")))

	resp := env.do(t, http.MethodPost, "/api/admin/migrations/legacy", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	report := decodeBody[dto.MigrationReportResponse](t, resp)
	assert.Equal(t, entity.PrimaryTenantID, report.TenantID)
	assert.False(t, report.Partial)
	assert.Len(t, report.Collections, len(entity.LegacyCollections),
		"the report covers every legacy collection, including empty ones")
	assert.Equal(t, 1, report.Collections["sales"].DocumentsMigrated)
	assert.Equal(t, 1, report.Collections["customers"].DocumentsMigrated)
	assert.Equal(t, 0, report.Collections["products"].DocumentsFound)

	// The copies landed under the tenant subtree.
	assert.Equal(t, 1, env.store.Len(entity.TenantCollectionPath(entity.PrimaryTenantID, "sales")))
}

func TestAPI_MigrateLegacyRequiresAdminRole(t *testing.T) {
	env := newAPITestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/admin/migrations/legacy", "accountant", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_UpdateExchangeRates(t *testing.T) {
	env := newAPITestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/admin/tenants/provision", "admin",
		dto.ProvisionTenantRequest{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPut, "/api/admin/tenants/"+entity.PrimaryTenantID+"/exchange-rates", "admin",
		dto.UpdateExchangeRatesRequest{Rates: map[string]decimal.Decimal{
			"USD": decimal.RequireFromString("3.70"),
		}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tenant := decodeBody[dto.TenantResponse](t, resp)
	assert.Equal(t, "3.7", tenant.Settings.ExchangeRates["USD"].String())
	_, hasJOD := tenant.Settings.ExchangeRates["JOD"]
	assert.False(t, hasJOD, "the rate table is replaced, not merged")
}

func TestAPI_UpdateExchangeRatesRejectsNonPositiveRate(t *testing.T) {
	env := newAPITestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/admin/tenants/provision", "admin",
		dto.ProvisionTenantRequest{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPut, "/api/admin/tenants/"+entity.PrimaryTenantID+"/exchange-rates", "admin",
		dto.UpdateExchangeRatesRequest{Rates: map[string]decimal.Decimal{
			"USD": decimal.Zero,
		}})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_RATE", body.Code)
}
