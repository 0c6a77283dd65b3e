package tenancy

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mahmoudraed/accounting-api/internal/domain"
	"github.com/mahmoudraed/accounting-api/internal/domain/entity"
	"github.com/mahmoudraed/accounting-api/internal/domain/repository"
	"github.com/mahmoudraed/accounting-api/pkg/logger"
)

// DefaultWorkers bounds concurrent document writes within one collection.
const DefaultWorkers = 4

// MigrateUseCase copies the legacy flat collections into per-tenant
// subcollections. Collections are visited strictly sequentially; documents
// inside a collection are copied by a bounded worker pool.
type MigrateUseCase struct {
	store   repository.DocumentStore
	log     *logger.Logger
	workers int
}

// NewMigrateUseCase builds the use case. workers < 1 falls back to DefaultWorkers.
func NewMigrateUseCase(store repository.DocumentStore, log *logger.Logger, workers int) *MigrateUseCase {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &MigrateUseCase{store: store, log: log, workers: workers}
}

// MigrateLegacyData backfills every legacy collection under tenantID and
// returns the per-collection report. Business-data failures never fail the
// run: per-document write errors and per-collection list errors are recorded
// in the report and migration continues. The returned error is non-nil only
// for violated preconditions.
//
// Every write is a full replace keyed by the legacy document ID, so re-running
// converges to the same end state (modulo migratedAt). When ctx expires
// mid-run the migrator stops issuing new writes, waits for in-flight ones to
// be accounted, and returns the report marked Partial.
func (uc *MigrateUseCase) MigrateLegacyData(ctx context.Context, tenantID string) (*MigrationReport, error) {
	if uc.store == nil {
		return nil, fmt.Errorf("migrate: %w: document store not initialized", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(tenantID) == "" {
		return nil, fmt.Errorf("migrate: %w: empty tenant id", domain.ErrInvalidInput)
	}

	report := newMigrationReport(tenantID)
	uc.log.Info().
		Str("run_id", report.RunID).
		Str("tenant_id", tenantID).
		Int("workers", uc.workers).
		Msg("legacy data migration started")

	for _, coll := range entity.LegacyCollections {
		if ctx.Err() != nil {
			report.Partial = true
			break
		}
		uc.migrateCollection(ctx, tenantID, coll, report.Collections[coll])
	}
	if ctx.Err() != nil {
		report.Partial = true
	}
	report.FinishedAt = time.Now().UTC()

	uc.log.Info().
		Str("run_id", report.RunID).
		Int("found", report.TotalFound()).
		Int("migrated", report.TotalMigrated()).
		Int("failures", report.TotalFailures()).
		Bool("partial", report.Partial).
		Msg("legacy data migration finished")
	return report, nil
}

// migrateCollection lists one legacy collection and copies its documents.
// It returns only after every dispatched write has been accounted, so the next
// collection never overlaps with this one.
func (uc *MigrateUseCase) migrateCollection(ctx context.Context, tenantID, coll string, res *CollectionResult) {
	docs, err := uc.store.ListDocuments(ctx, coll)
	if err != nil {
		// Fatal for this collection only; siblings still run.
		res.Failures = append(res.Failures, DocumentFailure{
			Cause: fmt.Sprintf("list collection %s: %v", coll, err),
		})
		uc.log.Error().Err(err).Str("collection", coll).Msg("list legacy collection failed")
		return
	}

	res.DocumentsFound = len(docs)
	if len(docs) == 0 {
		uc.log.Debug().Str("collection", coll).Msg("legacy collection empty, skipping")
		return
	}

	workers := uc.workers
	if workers > len(docs) {
		workers = len(docs)
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		jobs = make(chan entity.Document)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				err := uc.copyDocument(ctx, tenantID, coll, doc)
				mu.Lock()
				if err != nil {
					res.Failures = append(res.Failures, DocumentFailure{
						DocumentID: doc.ID,
						Cause:      err.Error(),
					})
				} else {
					res.DocumentsMigrated++
				}
				mu.Unlock()
				if err != nil {
					uc.log.Error().Err(err).
						Str("collection", coll).
						Str("document_id", doc.ID).
						Msg("migrate document failed")
				}
			}
		}()
	}

	for _, doc := range docs {
		if ctx.Err() != nil {
			// Deadline hit: stop issuing new writes. Undispatched documents
			// stay unaccounted; the run is reported as partial.
			break
		}
		jobs <- doc
	}
	close(jobs)
	wg.Wait()

	uc.log.Info().
		Str("collection", coll).
		Int("found", res.DocumentsFound).
		Int("migrated", res.DocumentsMigrated).
		Int("failures", len(res.Failures)).
		Msg("collection migrated")
}

// copyDocument writes the legacy document under the tenant-scoped path,
// keeping the same document ID so cross-document references stay valid, and
// appending the two provenance fields.
func (uc *MigrateUseCase) copyDocument(ctx context.Context, tenantID, coll string, doc entity.Document) error {
	fields := doc.Fields.Clone()
	fields.Set(entity.FieldTenantID, entity.String(tenantID))
	fields.Set(entity.FieldMigratedAt, entity.Time(time.Now().UTC()))
	return uc.store.PutDocument(ctx, entity.TenantDocumentPath(tenantID, coll, doc.ID), fields)
}
