package repository

import (
	"context"

	"github.com/mahmoudraed/accounting-api/internal/domain/entity"
)

// DocumentStore is the persistence port for the document database (DIP).
// The implementation lives in infrastructure; it is constructed explicitly and
// passed in, never accessed as a global.
//
// Store failures surface as domain.ErrStoreUnavailable or
// domain.ErrPermissionDenied (wrapped); missing documents as domain.ErrNotFound.
type DocumentStore interface {
	// ListDocuments returns every document in the collection at collectionPath.
	// An existing-but-empty collection returns an empty slice, not an error.
	ListDocuments(ctx context.Context, collectionPath string) ([]entity.Document, error)

	// GetDocument returns the document at path.
	GetDocument(ctx context.Context, path string) (*entity.Document, error)

	// PutDocument writes fields at path with full-replace semantics (not a
	// merge): any prior value at the path is discarded.
	PutDocument(ctx context.Context, path string, fields *entity.Fields) error
}
