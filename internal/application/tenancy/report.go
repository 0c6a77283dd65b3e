package tenancy

import (
	"time"

	"github.com/google/uuid"

	"github.com/mahmoudraed/accounting-api/internal/application/dto"
	"github.com/mahmoudraed/accounting-api/internal/domain/entity"
)

// DocumentFailure records one failed copy. An empty DocumentID means listing
// the collection itself failed.
type DocumentFailure struct {
	DocumentID string
	Cause      string
}

// CollectionResult is the per-collection outcome of a migration run.
type CollectionResult struct {
	DocumentsFound    int
	DocumentsMigrated int
	Failures          []DocumentFailure
}

// MigrationReport is the structured result of one migration run. Every
// per-document failure is in here with its cause. Writes are idempotent
// overwrites, so re-running the whole operation after failures is correct.
type MigrationReport struct {
	RunID      string
	TenantID   string
	StartedAt  time.Time
	FinishedAt time.Time

	// Partial is set when the run's context expired before every document
	// was dispatched.
	Partial bool

	// Collections always holds an entry for each legacy collection, even
	// the empty ones.
	Collections map[string]*CollectionResult
}

func newMigrationReport(tenantID string) *MigrationReport {
	r := &MigrationReport{
		RunID:       uuid.New().String(),
		TenantID:    tenantID,
		StartedAt:   time.Now().UTC(),
		Collections: make(map[string]*CollectionResult, len(entity.LegacyCollections)),
	}
	for _, coll := range entity.LegacyCollections {
		r.Collections[coll] = &CollectionResult{}
	}
	return r
}

// TotalFound sums documentsFound across collections.
func (r *MigrationReport) TotalFound() int {
	n := 0
	for _, res := range r.Collections {
		n += res.DocumentsFound
	}
	return n
}

// TotalMigrated sums documentsMigrated across collections.
func (r *MigrationReport) TotalMigrated() int {
	n := 0
	for _, res := range r.Collections {
		n += res.DocumentsMigrated
	}
	return n
}

// TotalFailures sums failure entries across collections.
func (r *MigrationReport) TotalFailures() int {
	n := 0
	for _, res := range r.Collections {
		n += len(res.Failures)
	}
	return n
}

// ToResponse converts the report to its HTTP representation.
func (r *MigrationReport) ToResponse() dto.MigrationReportResponse {
	out := dto.MigrationReportResponse{
		RunID:       r.RunID,
		TenantID:    r.TenantID,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
		Partial:     r.Partial,
		Collections: make(map[string]dto.CollectionResultResponse, len(r.Collections)),
	}
	for name, res := range r.Collections {
		failures := make([]dto.DocumentFailureResponse, 0, len(res.Failures))
		for _, f := range res.Failures {
			failures = append(failures, dto.DocumentFailureResponse{
				DocumentID: f.DocumentID,
				Cause:      f.Cause,
			})
		}
		out.Collections[name] = dto.CollectionResultResponse{
			DocumentsFound:    res.DocumentsFound,
			DocumentsMigrated: res.DocumentsMigrated,
			Failures:          failures,
		}
	}
	return out
}
