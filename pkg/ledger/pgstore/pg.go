// Package pgstore implements ledger.Store on PostgreSQL.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/chainsafe/bridge-swap/pkg/ledger"
)

// operationLockID is the transaction-scoped advisory lock every Update takes,
// so operations against the ledger are applied one at a time.
const operationLockID int64 = 0x62726467_73776170

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the ledger store.
// The ledger_entries table must already exist (see pkg/migrations/ledgerdb).
func NewStore(db *bun.DB) ledger.Store {
	return &pgStore{db: db}
}

func (s *pgStore) Update(ctx context.Context, fn func(ctx context.Context, tx ledger.Tx) error) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(?)", operationLockID); err != nil {
			return fmt.Errorf("failed to acquire ledger lock: %w", err)
		}
		return fn(ctx, &pgTx{tx: tx})
	})
}

func (s *pgStore) View(ctx context.Context, fn func(ctx context.Context, r ledger.Reader) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	return s.db.RunInTx(ctx, opts, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &pgTx{tx: tx, readOnly: true})
	})
}

func (s *pgStore) Close() error {
	return s.db.Close()
}

type pgTx struct {
	tx       bun.Tx
	readOnly bool
}

func (t *pgTx) Get(ctx context.Context, key []byte) ([]byte, error) {
	dao := new(EntryDao)
	err := t.tx.NewSelect().
		Model(dao).
		Where("key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return dao.Value, nil
}

func (t *pgTx) Has(ctx context.Context, key []byte) (bool, error) {
	exists, err := t.tx.NewSelect().
		Model((*EntryDao)(nil)).
		Where("key = ?", key).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check ledger entry: %w", err)
	}
	return exists, nil
}

func (t *pgTx) Set(ctx context.Context, key, value []byte) error {
	if t.readOnly {
		return errors.New("write in read-only transaction")
	}
	dao := &EntryDao{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := t.tx.NewInsert().
		Model(dao).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set ledger entry: %w", err)
	}
	return nil
}

func (t *pgTx) Delete(ctx context.Context, key []byte) error {
	if t.readOnly {
		return errors.New("write in read-only transaction")
	}
	_, err := t.tx.NewDelete().
		Model((*EntryDao)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	return nil
}
