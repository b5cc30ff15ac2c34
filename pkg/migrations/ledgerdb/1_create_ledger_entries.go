package ledgerdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/chainsafe/bridge-swap/pkg/ledger/pgstore"
	mghelper "github.com/chainsafe/bridge-swap/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating ledger_entries table...")
		return mghelper.CreateSchema(ctx, db, &pgstore.EntryDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping ledger_entries table...")
		return mghelper.DropTables(ctx, db, &pgstore.EntryDao{})
	})
}
