package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmoudraed/accounting-api/internal/domain"
	"github.com/mahmoudraed/accounting-api/internal/domain/entity"
	"github.com/mahmoudraed/accounting-api/internal/domain/repository"
)

// Ensure DocumentStore implements the port.
var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements the document store port on PostgreSQL. Documents
// live in a single table keyed by (collection_path, doc_id) with the payload
// in a JSON column, which gives the same path-addressed, schemaless model as
// the hosted document database it stands in for. The column is JSON rather
// than JSONB: JSONB reorders object keys, and stored payloads must keep field
// order across round-trips.
type DocumentStore struct {
	pool *pgxpool.Pool
}

// NewDocumentStore builds the persistence adapter.
func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

// ListDocuments returns every document in the collection, ordered by ID for
// reproducible migration runs. An empty or unknown collection returns an
// empty slice.
func (s *DocumentStore) ListDocuments(ctx context.Context, collectionPath string) ([]entity.Document, error) {
	if err := entity.ValidateCollectionPath(collectionPath); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT doc_id, fields FROM documents WHERE collection_path = $1 ORDER BY doc_id`,
		collectionPath,
	)
	if err != nil {
		return nil, mapStoreError("list "+collectionPath, err)
	}
	defer rows.Close()

	var docs []entity.Document
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, mapStoreError("scan "+collectionPath, err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collectionPath, id, err)
		}
		docs = append(docs, entity.Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("list "+collectionPath, err)
	}
	return docs, nil
}

// GetDocument returns the document at path, or domain.ErrNotFound.
func (s *DocumentStore) GetDocument(ctx context.Context, path string) (*entity.Document, error) {
	collectionPath, docID, err := entity.SplitDocumentPath(path)
	if err != nil {
		return nil, err
	}

	var raw []byte
	err = s.pool.QueryRow(ctx,
		`SELECT fields FROM documents WHERE collection_path = $1 AND doc_id = $2`,
		collectionPath, docID,
	).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get %s: %w", path, domain.ErrNotFound)
		}
		return nil, mapStoreError("get "+path, err)
	}

	fields, err := decodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &entity.Document{ID: docID, Fields: fields}, nil
}

// PutDocument writes fields at path, fully replacing any prior value.
func (s *DocumentStore) PutDocument(ctx context.Context, path string, fields *entity.Fields) error {
	collectionPath, docID, err := entity.SplitDocumentPath(path)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO documents (collection_path, doc_id, fields, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (collection_path, doc_id)
		DO UPDATE SET fields = EXCLUDED.fields, updated_at = now()`,
		collectionPath, docID, raw,
	)
	if err != nil {
		return mapStoreError("put "+path, err)
	}
	return nil
}

func decodeFields(raw []byte) (*entity.Fields, error) {
	fields := entity.NewFields()
	if err := json.Unmarshal(raw, fields); err != nil {
		return nil, err
	}
	return fields, nil
}
