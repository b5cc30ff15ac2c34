package ledgerdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	mghelper "github.com/chainsafe/bridge-swap/pkg/pgutil/migrations"
)

const updatedAtIndex = "idx_ledger_entries_updated_at"

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating ledger_entries updated_at index...")
		return mghelper.CreateIndex(ctx, db, "ledger_entries", updatedAtIndex, "updated_at")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping ledger_entries updated_at index...")
		return mghelper.DropIndex(ctx, db, updatedAtIndex)
	})
}
