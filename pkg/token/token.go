// Package token moves balances on behalf of the swap engine.
package token

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/chainsafe/bridge-swap/pkg/ledger"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidAccount    = errors.New("account must not be empty")
)

// Port performs a balance movement inside the caller's transaction. Any error
// must abort the enclosing operation.
//
//go:generate mockery --name Port --output mocks --outpkg mocks --filename mock_port.go --with-expecter
type Port interface {
	Transfer(ctx context.Context, tx ledger.Tx, from, to string, amount *big.Int) error
}

var (
	ns         = ledger.Namespace("token")
	genesisKey = ns.Key("genesis")
)

func balanceKey(account string) []byte {
	return ns.Key("balance", account)
}

// Ledger is a Port keeping balances in the same store as the swap records,
// so a transfer commits or rolls back together with the operation.
type Ledger struct{}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Transfer(ctx context.Context, tx ledger.Tx, from, to string, amount *big.Int) error {
	if from == "" || to == "" {
		return ErrInvalidAccount
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	fromBal, err := Balance(ctx, tx, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s holds %s, needs %s", ErrInsufficientFunds, from, fromBal, amount)
	}
	if err := putBalance(ctx, tx, from, new(big.Int).Sub(fromBal, amount)); err != nil {
		return err
	}

	toBal, err := Balance(ctx, tx, to)
	if err != nil {
		return err
	}
	return putBalance(ctx, tx, to, new(big.Int).Add(toBal, amount))
}

// Credit adds amount to account without a counterparty.
func (l *Ledger) Credit(ctx context.Context, tx ledger.Tx, account string, amount *big.Int) error {
	if account == "" {
		return ErrInvalidAccount
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	bal, err := Balance(ctx, tx, account)
	if err != nil {
		return err
	}
	return putBalance(ctx, tx, account, new(big.Int).Add(bal, amount))
}

// Seed credits the given balances once per store. Later calls are no-ops and
// report false.
func (l *Ledger) Seed(ctx context.Context, store ledger.Store, balances map[string]*big.Int) (bool, error) {
	seeded := false
	err := store.Update(ctx, func(ctx context.Context, tx ledger.Tx) error {
		done, err := tx.Has(ctx, genesisKey)
		if err != nil || done {
			return err
		}
		for account, amount := range balances {
			if err := l.Credit(ctx, tx, account, amount); err != nil {
				return fmt.Errorf("failed to seed %s: %w", account, err)
			}
		}
		seeded = true
		return tx.Set(ctx, genesisKey, []byte{1})
	})
	return seeded, err
}

// Balance returns the balance of account, zero if it never held funds.
func Balance(ctx context.Context, r ledger.Reader, account string) (*big.Int, error) {
	raw, err := r.Get(ctx, balanceKey(account))
	if errors.Is(err, ledger.ErrNotFound) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read balance of %s: %w", account, err)
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("corrupt balance of %s: %w", account, err)
	}
	return d.BigInt(), nil
}

func putBalance(ctx context.Context, tx ledger.Tx, account string, v *big.Int) error {
	return tx.Set(ctx, balanceKey(account), []byte(decimal.NewFromBigInt(v, 0).String()))
}

// Accounts answers balance queries against a store.
type Accounts struct {
	store ledger.Store
}

func NewAccounts(store ledger.Store) *Accounts {
	return &Accounts{store: store}
}

func (a *Accounts) Balance(ctx context.Context, account string) (*big.Int, error) {
	var bal *big.Int
	err := a.store.View(ctx, func(ctx context.Context, r ledger.Reader) error {
		var err error
		bal, err = Balance(ctx, r, account)
		return err
	})
	return bal, err
}
