package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmoudraed/accounting-api/pkg/logger"
)

type schemaStep struct {
	Name string
	SQL  string
}

var schemaSteps = []schemaStep{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  collection_path TEXT        NOT NULL,
  doc_id          TEXT        NOT NULL,
  fields          JSON        NOT NULL,
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (collection_path, doc_id)
);`,
	},
	{
		Name: "create_index_documents_collection_path",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_collection_path ON documents (collection_path);`,
	},
}

// EnsureSchema creates the document store schema if it does not exist yet.
// Every step is idempotent, so running it at each boot is safe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	start := time.Now()

	var exists bool
	if err := pool.QueryRow(ctx, "SELECT to_regclass('public.documents') IS NOT NULL").Scan(&exists); err != nil {
		return fmt.Errorf("check sentinel table: %w", err)
	}
	if exists {
		log.Debug().Msg("document store schema already present")
		return nil
	}

	for _, step := range schemaSteps {
		if _, err := pool.Exec(ctx, step.SQL); err != nil {
			return fmt.Errorf("schema step %s: %w", step.Name, err)
		}
		log.Debug().Str("step", step.Name).Msg("schema step applied")
	}

	log.Info().Dur("took", time.Since(start)).Msg("document store schema created")
	return nil
}
