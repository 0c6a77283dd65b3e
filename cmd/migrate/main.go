// migrate is the operator tool for first-run setup: it optionally provisions
// the tenant record and backfills the legacy flat collections into per-tenant
// subcollections, printing the full per-collection report.
//
// Usage:
//
//	go run ./cmd/migrate [-provision] [-name "..."] [-phone "..."] \
//	    [-tenant main] [-workers 4] [-timeout 10m]
//
// Business-data failures never fail the process; they are listed in the
// report and the run can simply be re-executed (writes are idempotent).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/mahmoudraed/accounting-api/internal/application/dto"
	"github.com/mahmoudraed/accounting-api/internal/application/tenancy"
	"github.com/mahmoudraed/accounting-api/internal/domain/entity"
	"github.com/mahmoudraed/accounting-api/internal/infrastructure/postgres"
	"github.com/mahmoudraed/accounting-api/pkg/config"
	"github.com/mahmoudraed/accounting-api/pkg/logger"
)

func main() {
	var (
		provision = flag.Bool("provision", false, "provision the tenant record before migrating")
		name      = flag.String("name", "", "tenant display name (provisioning only)")
		phone     = flag.String("phone", "", "tenant phone (provisioning only)")
		logo      = flag.String("logo", "", "tenant logo URL (provisioning only)")
		qr        = flag.String("whatsapp-qr", "", "tenant WhatsApp QR code URL (provisioning only)")
		tenantID  = flag.String("tenant", entity.PrimaryTenantID, "target tenant ID")
		workers   = flag.Int("workers", 0, "concurrent writes per collection (0 = config/default)")
		timeout   = flag.Duration("timeout", 0, "overall run deadline (0 = config/none)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(2)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if *workers == 0 {
		*workers = cfg.Migration.Workers
	}
	if *timeout == 0 {
		*timeout = cfg.Migration.Timeout
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("document store schema")
	}

	store := postgres.NewDocumentStore(pool)

	if *provision {
		provisionUC := tenancy.NewProvisionUseCase(store, log)
		id, err := provisionUC.ProvisionTenant(ctx, dto.ProvisionTenantRequest{
			Name:           *name,
			Phone:          *phone,
			Logo:           *logo,
			WhatsappQRCode: *qr,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("provision tenant")
		}
		fmt.Printf("tenant provisioned: %s\n", id)
	}

	migrateUC := tenancy.NewMigrateUseCase(store, log, *workers)
	report, err := migrateUC.MigrateLegacyData(ctx, *tenantID)
	if err != nil {
		log.Fatal().Err(err).Msg("migration run")
	}

	printReport(report)

	// Failed documents are re-runnable, so the process still exits 0; scripts
	// should inspect the printed report.
}

func printReport(r *tenancy.MigrationReport) {
	fmt.Printf("\nmigration run %s (tenant %s)\n", r.RunID, r.TenantID)
	fmt.Printf("started  %s\nfinished %s\n", r.StartedAt.Format(time.RFC3339), r.FinishedAt.Format(time.RFC3339))
	if r.Partial {
		fmt.Println("PARTIAL: the deadline expired before every document was dispatched")
	}

	names := make([]string, 0, len(r.Collections))
	for name := range r.Collections {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("\n%-20s %8s %10s %9s\n", "collection", "found", "migrated", "failures")
	for _, name := range names {
		res := r.Collections[name]
		fmt.Printf("%-20s %8d %10d %9d\n", name, res.DocumentsFound, res.DocumentsMigrated, len(res.Failures))
	}
	fmt.Printf("%-20s %8d %10d %9d\n", "total", r.TotalFound(), r.TotalMigrated(), r.TotalFailures())

	if r.TotalFailures() > 0 {
		fmt.Println("\nfailures:")
		for _, name := range names {
			for _, f := range r.Collections[name].Failures {
				id := f.DocumentID
				if id == "" {
					id = "(collection listing)"
				}
				fmt.Printf("  %s/%s: %s\n", name, id, f.Cause)
			}
		}
	}
}
