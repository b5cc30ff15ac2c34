package migrations

import (
	"context"
	"testing"

	"github.com/uptrace/bun"

	"github.com/chainsafe/bridge-swap/pkg/pgutil"
)

type scratchDao struct {
	bun.BaseModel `bun:"table:scratch_entries"`
	Key           []byte `bun:",pk,type:bytea"`
	Value         []byte `bun:",notnull,type:bytea"`
}

func indexExists(t *testing.T, db *bun.DB, name string) bool {
	t.Helper()
	var exists bool
	query := `SELECT EXISTS (SELECT FROM pg_indexes WHERE schemaname = 'public' AND indexname = ?)`
	if err := db.NewRaw(query, name).Scan(context.Background(), &exists); err != nil {
		t.Fatalf("failed to check index %s: %v", name, err)
	}
	return exists
}

func TestRunMigrations_RejectsBadCommands(t *testing.T) {
	ctx := context.Background()
	if err := RunMigrations(ctx, nil); err == nil {
		t.Error("expected error without a command")
	}
	if err := RunMigrations(ctx, nil, "sideways"); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestCreateAndDropSchema(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if err := CreateSchema(ctx, db, &scratchDao{}); err != nil {
		t.Fatalf("CreateSchema() failed: %v", err)
	}
	pgutil.AssertTableExists(t, db, "scratch_entries")

	if err := CreateSchema(ctx, db, &scratchDao{}); err != nil {
		t.Errorf("CreateSchema() second call failed: %v", err)
	}

	if _, err := db.NewInsert().Model(&scratchDao{Key: []byte("k"), Value: []byte("v")}).Exec(ctx); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	pgutil.AssertRowCount(t, db, "scratch_entries", 1)

	if err := DropTables(ctx, db, &scratchDao{}); err != nil {
		t.Fatalf("DropTables() failed: %v", err)
	}
	pgutil.AssertTableNotExists(t, db, "scratch_entries")

	if err := DropTables(ctx, db, &scratchDao{}); err != nil {
		t.Errorf("DropTables() second call failed: %v", err)
	}
}

func TestCreateAndDropIndex(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if err := CreateSchema(ctx, db, &scratchDao{}); err != nil {
		t.Fatalf("CreateSchema() failed: %v", err)
	}

	if err := CreateIndex(ctx, db, "scratch_entries", "idx_scratch_value", "value"); err != nil {
		t.Fatalf("CreateIndex() failed: %v", err)
	}
	if !indexExists(t, db, "idx_scratch_value") {
		t.Fatal("index should exist")
	}
	if err := CreateIndex(ctx, db, "scratch_entries", "idx_scratch_value", "value"); err != nil {
		t.Errorf("CreateIndex() second call failed: %v", err)
	}

	if err := DropIndex(ctx, db, "idx_scratch_value"); err != nil {
		t.Fatalf("DropIndex() failed: %v", err)
	}
	if indexExists(t, db, "idx_scratch_value") {
		t.Error("index should be dropped but still exists")
	}
	if err := DropIndex(ctx, db, "idx_scratch_value"); err != nil {
		t.Errorf("DropIndex() second call failed: %v", err)
	}
}
