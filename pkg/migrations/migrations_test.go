package migrations

import (
	"context"
	"testing"

	"github.com/uptrace/bun/migrate"

	"github.com/chainsafe/bridge-swap/pkg/config"
	"github.com/chainsafe/bridge-swap/pkg/migrations/ledgerdb"
	"github.com/chainsafe/bridge-swap/pkg/pgutil"
	mghelper "github.com/chainsafe/bridge-swap/pkg/pgutil/migrations"
)

func TestConnectDB_InvalidHost(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "invalid-host-that-does-not-exist",
		Port:     5432,
		User:     "test",
		Password: "test",
		Database: "test",
		SSLMode:  "disable",
	}

	db, err := pgutil.ConnectDB(context.Background(), cfg)
	if err == nil {
		_ = db.Close()
		t.Error("ConnectDB() should fail with invalid host")
	}
}

func TestLedgerDBMigrations_UpAndDown(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, ledgerdb.Migrations)

	if err := mghelper.RunMigrations(ctx, migrator, "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := mghelper.RunMigrations(ctx, migrator, "up"); err != nil {
		t.Fatalf("up failed: %v", err)
	}

	pgutil.AssertTableExists(t, db, "bun_migrations")
	pgutil.AssertTableExists(t, db, "ledger_entries")

	var exists bool
	err := db.NewRaw(
		"SELECT EXISTS (SELECT 1 FROM pg_indexes WHERE schemaname = 'public' AND indexname = ?)",
		"idx_ledger_entries_updated_at",
	).Scan(ctx, &exists)
	if err != nil {
		t.Fatalf("failed to check index: %v", err)
	}
	if !exists {
		t.Error("expected updated_at index to exist")
	}

	// a second up is a no-op
	if err := mghelper.RunMigrations(ctx, migrator, "up"); err != nil {
		t.Fatalf("second up failed: %v", err)
	}

	if err := mghelper.RunMigrations(ctx, migrator, "down"); err != nil {
		t.Fatalf("down failed: %v", err)
	}
	pgutil.AssertTableNotExists(t, db, "ledger_entries")
}

func TestRunMigrations_UnknownCommand(t *testing.T) {
	if err := mghelper.RunMigrations(context.Background(), nil, "sideways"); err == nil {
		t.Fatal("expected error for unknown command")
	}
	if err := mghelper.RunMigrations(context.Background(), nil); err == nil {
		t.Fatal("expected error with no command")
	}
}
