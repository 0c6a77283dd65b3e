package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoudraed/accounting-api/internal/domain"
	"github.com/mahmoudraed/accounting-api/internal/domain/entity"
)

func TestPaths_TenantLayout(t *testing.T) {
	assert.Equal(t, "tenants/main", entity.TenantPath("main"))
	assert.Equal(t, "tenants/main/sales", entity.TenantCollectionPath("main", "sales"))
	assert.Equal(t, "tenants/main/sales/s-1", entity.TenantDocumentPath("main", "sales", "s-1"))
	assert.Equal(t, "sales/s-1", entity.LegacyDocumentPath("sales", "s-1"))
}

func TestSplitDocumentPath(t *testing.T) {
	coll, id, err := entity.SplitDocumentPath("tenants/main/sales/s-1")
	require.NoError(t, err)
	assert.Equal(t, "tenants/main/sales", coll)
	assert.Equal(t, "s-1", id)

	coll, id, err = entity.SplitDocumentPath("sales/s-1")
	require.NoError(t, err)
	assert.Equal(t, "sales", coll)
	assert.Equal(t, "s-1", id)

	_, _, err = entity.SplitDocumentPath("sales")
	assert.ErrorIs(t, err, domain.ErrInvalidPath, "odd segment counts are collection paths")

	_, _, err = entity.SplitDocumentPath("sales//s-1")
	assert.ErrorIs(t, err, domain.ErrInvalidPath, "empty segments are invalid")
}

func TestValidateCollectionPath(t *testing.T) {
	assert.NoError(t, entity.ValidateCollectionPath("sales"))
	assert.NoError(t, entity.ValidateCollectionPath("tenants/main/sales"))
	assert.ErrorIs(t, entity.ValidateCollectionPath("tenants/main"), domain.ErrInvalidPath)
	assert.ErrorIs(t, entity.ValidateCollectionPath(""), domain.ErrInvalidPath)
}

func TestLegacyCollections_FixedOrder(t *testing.T) {
	// The migration order is part of the operational contract; a reorder would
	// change report reproducibility between releases.
	assert.Equal(t, []string{
		"purchases",
		"sales",
		"customers",
		"customer_receipts",
		"products",
		"suppliers",
		"supplierPayments",
	}, entity.LegacyCollections)

	assert.True(t, entity.IsLegacyCollection("supplierPayments"))
	assert.False(t, entity.IsLegacyCollection("tenants"))
}
