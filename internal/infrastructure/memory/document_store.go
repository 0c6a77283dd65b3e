// Package memory provides an in-memory DocumentStore used by tests and local
// tooling. It mirrors the PostgreSQL adapter's semantics (full-replace
// writes, ID-ordered listing) and supports failure injection per collection
// and per document path.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mahmoudraed/accounting-api/internal/domain"
	"github.com/mahmoudraed/accounting-api/internal/domain/entity"
	"github.com/mahmoudraed/accounting-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a thread-safe in-memory document store.
type DocumentStore struct {
	mu   sync.Mutex
	data map[string]map[string]*entity.Fields // collectionPath -> docID -> fields

	listErr map[string]error // collectionPath -> injected list failure
	putErr  map[string]error // document path -> injected write failure
}

// NewDocumentStore returns an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		data:    make(map[string]map[string]*entity.Fields),
		listErr: make(map[string]error),
		putErr:  make(map[string]error),
	}
}

// FailList makes ListDocuments on collectionPath return err.
func (s *DocumentStore) FailList(collectionPath string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listErr[collectionPath] = err
}

// FailPut makes PutDocument on the exact document path return err.
func (s *DocumentStore) FailPut(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putErr[path] = err
}

// Seed stores fields at path without copy-on-write checks; test setup helper.
func (s *DocumentStore) Seed(path string, fields *entity.Fields) {
	if err := s.PutDocument(context.Background(), path, fields); err != nil {
		panic(fmt.Sprintf("memory: seed %s: %v", path, err))
	}
}

// Len returns the number of documents in the collection.
func (s *DocumentStore) Len(collectionPath string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data[collectionPath])
}

// ListDocuments returns the collection's documents ordered by ID.
func (s *DocumentStore) ListDocuments(ctx context.Context, collectionPath string) ([]entity.Document, error) {
	if err := entity.ValidateCollectionPath(collectionPath); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.listErr[collectionPath]; err != nil {
		return nil, err
	}

	coll := s.data[collectionPath]
	ids := make([]string, 0, len(coll))
	for id := range coll {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	docs := make([]entity.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, entity.Document{ID: id, Fields: coll[id].Clone()})
	}
	return docs, nil
}

// GetDocument returns the document at path, or domain.ErrNotFound.
func (s *DocumentStore) GetDocument(ctx context.Context, path string) (*entity.Document, error) {
	collectionPath, docID, err := entity.SplitDocumentPath(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.data[collectionPath][docID]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", path, domain.ErrNotFound)
	}
	return &entity.Document{ID: docID, Fields: fields.Clone()}, nil
}

// PutDocument stores a deep copy of fields at path, replacing any prior value.
func (s *DocumentStore) PutDocument(ctx context.Context, path string, fields *entity.Fields) error {
	collectionPath, docID, err := entity.SplitDocumentPath(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.putErr[path]; err != nil {
		return err
	}
	if s.data[collectionPath] == nil {
		s.data[collectionPath] = make(map[string]*entity.Fields)
	}
	s.data[collectionPath][docID] = fields.Clone()
	return nil
}
