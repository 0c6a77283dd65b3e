package entity

import (
	"fmt"
	"strings"

	"github.com/mahmoudraed/accounting-api/internal/domain"
)

// Document is one record in the document store: an identifier plus an opaque
// ordered field payload. The migrator never interprets business fields.
type Document struct {
	ID     string
	Fields *Fields
}

// Provenance fields stamped on every migrated copy.
const (
	FieldTenantID   = "tenantId"
	FieldMigratedAt = "migratedAt"
)

// TenantsCollection is the root collection holding tenant records.
const TenantsCollection = "tenants"

// LegacyCollections are the flat pre-multi-tenancy collections, in the fixed
// order the migrator visits them. supplierPayments keeps its historical
// camelCase name; renaming it would orphan the legacy data.
var LegacyCollections = []string{
	"purchases",
	"sales",
	"customers",
	"customer_receipts",
	"products",
	"suppliers",
	"supplierPayments",
}

// IsLegacyCollection reports whether name is one of the fixed legacy collections.
func IsLegacyCollection(name string) bool {
	for _, c := range LegacyCollections {
		if c == name {
			return true
		}
	}
	return false
}

// TenantPath returns the document path of a tenant record: tenants/{tenantID}.
func TenantPath(tenantID string) string {
	return TenantsCollection + "/" + tenantID
}

// TenantCollectionPath returns the tenant-scoped collection path:
// tenants/{tenantID}/{collection}.
func TenantCollectionPath(tenantID, collection string) string {
	return TenantsCollection + "/" + tenantID + "/" + collection
}

// TenantDocumentPath returns the tenant-scoped document path:
// tenants/{tenantID}/{collection}/{docID}.
func TenantDocumentPath(tenantID, collection, docID string) string {
	return TenantCollectionPath(tenantID, collection) + "/" + docID
}

// LegacyDocumentPath returns the flat legacy document path: {collection}/{docID}.
func LegacyDocumentPath(collection, docID string) string {
	return collection + "/" + docID
}

// SplitDocumentPath splits a document path into its parent collection path and
// document ID. Document paths have an even number of non-empty segments;
// collection paths an odd number.
func SplitDocumentPath(path string) (collectionPath, docID string, err error) {
	segments := strings.Split(path, "/")
	if len(segments)%2 != 0 {
		return "", "", fmt.Errorf("%w: %q has %d segments, want even", domain.ErrInvalidPath, path, len(segments))
	}
	for _, s := range segments {
		if s == "" {
			return "", "", fmt.Errorf("%w: %q contains an empty segment", domain.ErrInvalidPath, path)
		}
	}
	return strings.Join(segments[:len(segments)-1], "/"), segments[len(segments)-1], nil
}

// ValidateCollectionPath checks that path names a collection (odd segment
// count, no empty segments).
func ValidateCollectionPath(path string) error {
	segments := strings.Split(path, "/")
	if len(segments)%2 != 1 {
		return fmt.Errorf("%w: %q has %d segments, want odd", domain.ErrInvalidPath, path, len(segments))
	}
	for _, s := range segments {
		if s == "" {
			return fmt.Errorf("%w: %q contains an empty segment", domain.ErrInvalidPath, path)
		}
	}
	return nil
}
