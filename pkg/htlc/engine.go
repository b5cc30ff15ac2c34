// Package htlc is a hashed time-locked contract engine for atomic swaps between
// two parties on one ledger.
//
// A swap is created by its initiator, who moves the amount into custody. Before
// the deadline the participant may redeem it by revealing the preimage of the
// hash lock; from the deadline on the initiator may refund it. Exactly one of
// the two ever happens.
package htlc

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chainsafe/bridge-swap/internal/metrics"
	apperrors "github.com/chainsafe/bridge-swap/pkg/app/errors"
	"github.com/chainsafe/bridge-swap/pkg/events"
	"github.com/chainsafe/bridge-swap/pkg/ledger"
	"github.com/chainsafe/bridge-swap/pkg/token"
)

// DefaultCustody is the account holding funds of open swaps.
const DefaultCustody = "htlc-custody"

// Service is the atomic swap API. Errors are *apperrors.ServiceError values
// wrapping one of the package sentinels.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Initiate(ctx context.Context, req InitiateRequest) (*Swap, error)
	Redeem(ctx context.Context, id SwapID, caller string, secret []byte) (*Swap, error)
	Refund(ctx context.Context, id SwapID, caller string) (*Swap, error)
	GetSwap(ctx context.Context, id SwapID) (*Swap, error)
}

// InitiateRequest opens a swap. TimeLockOffset is in seconds from now.
type InitiateRequest struct {
	ID             SwapID
	Initiator      string
	Participant    string
	Amount         *big.Int
	HashLock       [32]byte
	TimeLockOffset uint64
}

// HashFunc computes a hash lock from a secret.
type HashFunc func(secret []byte) [32]byte

// SHA256 is the default hash lock function.
func SHA256(secret []byte) [32]byte {
	return sha256.Sum256(secret)
}

// Keccak256 matches hash locks produced by EVM contracts.
func Keccak256(secret []byte) [32]byte {
	return crypto.Keccak256Hash(secret)
}

// HashFuncByName resolves "sha256" or "keccak256".
func HashFuncByName(name string) (HashFunc, error) {
	switch name {
	case "", "sha256":
		return SHA256, nil
	case "keccak256":
		return Keccak256, nil
	default:
		return nil, fmt.Errorf("unknown hash function %q", name)
	}
}

var ns = ledger.Namespace("htlc")

func swapKey(id SwapID) []byte {
	return ns.HexKey("swap", id[:])
}

// Engine implements Service on a ledger.Store.
type Engine struct {
	store      ledger.Store
	tokens     token.Port
	clock      ledger.Clock
	custody    string
	hash       HashFunc
	dispatcher *events.Dispatcher
}

// Option configures an Engine.
type Option func(*Engine)

func WithClock(c ledger.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithCustody(account string) Option {
	return func(e *Engine) { e.custody = account }
}

func WithHashFunc(h HashFunc) Option {
	return func(e *Engine) { e.hash = h }
}

func WithDispatcher(d *events.Dispatcher) Option {
	return func(e *Engine) { e.dispatcher = d }
}

func NewEngine(store ledger.Store, tokens token.Port, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		tokens:     tokens,
		clock:      ledger.SystemClock{},
		custody:    DefaultCustody,
		hash:       SHA256,
		dispatcher: events.NewDispatcher(nil, nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Initiate(ctx context.Context, req InitiateRequest) (*Swap, error) {
	return e.apply(ctx, events.KindSwapInitiated, func(ctx context.Context, tx ledger.Tx) (*Swap, error) {
		exists, err := tx.Has(ctx, swapKey(req.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to check swap: %w", err)
		}
		if exists {
			return nil, abort(ErrSwapExists)
		}
		if req.Amount == nil || req.Amount.Sign() <= 0 {
			return nil, abort(ErrInvalidAmount)
		}
		if req.Initiator == "" || req.Participant == "" ||
			req.Initiator == e.custody || req.Participant == e.custody {
			return nil, abort(ErrInvalidParty)
		}

		now := e.clock.Now()
		deadline := now + req.TimeLockOffset
		if req.TimeLockOffset == 0 || deadline < now {
			return nil, abort(ErrInvalidTimeLock)
		}

		swap := &Swap{
			ID:          req.ID,
			Initiator:   req.Initiator,
			Participant: req.Participant,
			Amount:      new(big.Int).Set(req.Amount),
			HashLock:    req.HashLock,
			Deadline:    deadline,
			CreatedAt:   now,
			Phase:       PhaseCreated,
		}
		if err := putSwap(ctx, tx, swap); err != nil {
			return nil, err
		}
		if err := e.transfer(ctx, tx, swap.Initiator, e.custody, swap.Amount); err != nil {
			return nil, err
		}
		return swap, nil
	})
}

func (e *Engine) Redeem(ctx context.Context, id SwapID, caller string, secret []byte) (*Swap, error) {
	return e.apply(ctx, events.KindSwapRedeemed, func(ctx context.Context, tx ledger.Tx) (*Swap, error) {
		swap, err := getSwap(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if caller != swap.Participant {
			return nil, abort(ErrUnauthorized)
		}
		if err := checkOpen(swap); err != nil {
			return nil, err
		}
		if e.clock.Now() >= swap.Deadline {
			return nil, abort(ErrTimeLockExpired)
		}
		got := e.hash(secret)
		if subtle.ConstantTimeCompare(got[:], swap.HashLock[:]) != 1 {
			return nil, abort(ErrInvalidSecret)
		}

		swap.Secret = append([]byte(nil), secret...)
		swap.Phase = PhaseRedeemed
		if err := putSwap(ctx, tx, swap); err != nil {
			return nil, err
		}
		if err := e.transfer(ctx, tx, e.custody, swap.Participant, swap.Amount); err != nil {
			return nil, err
		}
		return swap, nil
	})
}

func (e *Engine) Refund(ctx context.Context, id SwapID, caller string) (*Swap, error) {
	return e.apply(ctx, events.KindSwapRefunded, func(ctx context.Context, tx ledger.Tx) (*Swap, error) {
		swap, err := getSwap(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if caller != swap.Initiator {
			return nil, abort(ErrUnauthorized)
		}
		if err := checkOpen(swap); err != nil {
			return nil, err
		}
		if e.clock.Now() < swap.Deadline {
			return nil, abort(ErrTimeLockActive)
		}

		swap.Phase = PhaseRefunded
		if err := putSwap(ctx, tx, swap); err != nil {
			return nil, err
		}
		if err := e.transfer(ctx, tx, e.custody, swap.Initiator, swap.Amount); err != nil {
			return nil, err
		}
		return swap, nil
	})
}

func (e *Engine) GetSwap(ctx context.Context, id SwapID) (*Swap, error) {
	var swap *Swap
	err := e.store.View(ctx, func(ctx context.Context, r ledger.Reader) error {
		var err error
		swap, err = getSwap(ctx, r, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return swap, nil
}

// apply runs one state transition in a single transaction, appending an event
// of the given kind on success and dispatching it after commit.
func (e *Engine) apply(ctx context.Context, kind events.Kind, fn func(ctx context.Context, tx ledger.Tx) (*Swap, error)) (*Swap, error) {
	var (
		swap    *Swap
		emitted events.Event
		start   = time.Now()
	)
	op := string(kind)
	err := e.store.Update(ctx, func(ctx context.Context, tx ledger.Tx) error {
		var err error
		swap, err = fn(ctx, tx)
		if err != nil {
			return err
		}
		emitted, err = events.Append(ctx, tx, kind, swap)
		return err
	})
	metrics.OperationDuration.WithLabelValues("htlc", op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SwapOperations.WithLabelValues(op, apperrors.CategoryOf(err).String()).Inc()
		return nil, err
	}
	metrics.SwapOperations.WithLabelValues(op, "ok").Inc()
	e.dispatcher.Dispatch(ctx, emitted)
	return swap, nil
}

func (e *Engine) transfer(ctx context.Context, tx ledger.Tx, from, to string, amount *big.Int) error {
	if err := e.tokens.Transfer(ctx, tx, from, to, amount); err != nil {
		return apperrors.DependencyError(fmt.Errorf("%w: %w", ErrTransferRejected, err), ErrTransferRejected.Error())
	}
	return nil
}

func checkOpen(swap *Swap) error {
	switch swap.Phase {
	case PhaseRedeemed:
		return abort(ErrAlreadyRedeemed)
	case PhaseRefunded:
		return abort(ErrAlreadyRefunded)
	}
	return nil
}

func getSwap(ctx context.Context, r ledger.Reader, id SwapID) (*Swap, error) {
	raw, err := r.Get(ctx, swapKey(id))
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, abort(ErrSwapNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read swap: %w", err)
	}
	swap := new(Swap)
	if err := json.Unmarshal(raw, swap); err != nil {
		return nil, fmt.Errorf("corrupt swap %s: %w", id, err)
	}
	return swap, nil
}

func putSwap(ctx context.Context, tx ledger.Tx, swap *Swap) error {
	raw, err := json.Marshal(swap)
	if err != nil {
		return fmt.Errorf("failed to encode swap: %w", err)
	}
	if err := tx.Set(ctx, swapKey(swap.ID), raw); err != nil {
		return fmt.Errorf("failed to write swap: %w", err)
	}
	return nil
}
