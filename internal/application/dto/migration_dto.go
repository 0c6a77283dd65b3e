package dto

import "time"

// MigrateLegacyRequest input for the operator-triggered legacy data migration.
// TenantID defaults to the primary tenant when empty.
type MigrateLegacyRequest struct {
	TenantID string `json:"tenantId"`
}

// DocumentFailureResponse one failed document copy. An empty documentId means
// listing the collection itself failed.
type DocumentFailureResponse struct {
	DocumentID string `json:"documentId"`
	Cause      string `json:"cause"`
}

// CollectionResultResponse per-collection migration outcome.
type CollectionResultResponse struct {
	DocumentsFound    int                       `json:"documentsFound"`
	DocumentsMigrated int                       `json:"documentsMigrated"`
	Failures          []DocumentFailureResponse `json:"failures"`
}

// MigrationReportResponse full migration run report.
type MigrationReportResponse struct {
	RunID       string                              `json:"runId"`
	TenantID    string                              `json:"tenantId"`
	StartedAt   time.Time                           `json:"startedAt"`
	FinishedAt  time.Time                           `json:"finishedAt"`
	Partial     bool                                `json:"partial"`
	Collections map[string]CollectionResultResponse `json:"collections"`
}
