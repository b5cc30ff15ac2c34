// Package bridge keeps the locked-balance ledger of the cross-chain bridge.
//
// Outbound locks credit the user's locked balance and emit a SwapEvent with a
// fresh nonce. Inbound mints credit the balance named by a counterpart event,
// but only when it carries a valid BLS signature and its transaction id was
// never seen before.
package bridge

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"github.com/chainsafe/bridge-swap/internal/metrics"
	"github.com/chainsafe/bridge-swap/pkg/bls"
	"github.com/chainsafe/bridge-swap/pkg/events"
	"github.com/chainsafe/bridge-swap/pkg/ledger"
)

// Service is the bridge ledger API.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	// LockOutbound locks amount for user and returns the emitted event.
	// It reports false, with no state change, for an invalid user or amount.
	LockOutbound(ctx context.Context, user []byte, amount *big.Int) (bool, *SwapEvent, error)
	// MintInbound credits the user named in message if signature is valid and
	// txID is fresh. Any rejection reports false with no state change.
	MintInbound(ctx context.Context, txID, publicKey, message, signature []byte) (bool, error)
	LockedBalance(ctx context.Context, user []byte) (*big.Int, error)
	Nonce(ctx context.Context) (uint64, error)
	IsProcessed(ctx context.Context, txID []byte) (bool, error)
}

// VerifyFunc checks a signature over message. It must not panic.
type VerifyFunc func(publicKey, message, signature []byte) bool

var (
	ns       = ledger.Namespace("bridge")
	nonceKey = ns.Key("nonce")
)

func lockedKey(user []byte) []byte    { return ns.HexKey("locked", user) }
func processedKey(txID []byte) []byte { return ns.HexKey("processed", txID) }

func digestKey(message []byte) []byte {
	sum := sha256.Sum256(message)
	return ns.HexKey("digest", sum[:])
}

// mint outcomes, used as metric labels
const (
	mintOK          = "minted"
	mintEmptyTxID   = "empty_tx_id"
	mintReplayed    = "replayed"
	mintBadSig      = "bad_signature"
	mintBadMessage  = "bad_message"
	mintDigestReuse = "digest_replayed"
	mintError       = "error"
)

// Ledger implements Service on a ledger.Store.
type Ledger struct {
	store       ledger.Store
	dispatcher  *events.Dispatcher
	verify      VerifyFunc
	digestGuard bool
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithDispatcher delivers committed events through d.
func WithDispatcher(d *events.Dispatcher) Option {
	return func(l *Ledger) { l.dispatcher = d }
}

// WithVerifier replaces bls.Verify.
func WithVerifier(v VerifyFunc) Option {
	return func(l *Ledger) { l.verify = v }
}

// WithDigestGuard also rejects a signed message that was already minted under
// a different transaction id. Enabled by default.
func WithDigestGuard(enabled bool) Option {
	return func(l *Ledger) { l.digestGuard = enabled }
}

func NewLedger(store ledger.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:       store,
		dispatcher:  events.NewDispatcher(nil, nil),
		verify:      bls.Verify,
		digestGuard: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type mintedPayload struct {
	TxID hexutil.Bytes `json:"tx_id"`
	eventJSON
}

func (l *Ledger) LockOutbound(ctx context.Context, user []byte, amount *big.Int) (bool, *SwapEvent, error) {
	defer observe("lock_outbound", time.Now())

	if !validUser(user) || !validAmount(amount) {
		metrics.BridgeLocks.WithLabelValues("rejected").Inc()
		return false, nil, nil
	}

	var (
		event   *SwapEvent
		emitted events.Event
	)
	err := l.store.Update(ctx, func(ctx context.Context, tx ledger.Tx) error {
		if err := credit(ctx, tx, user, amount); err != nil {
			return err
		}

		nonce, err := ledger.GetUint64(ctx, tx, nonceKey)
		if err != nil {
			return fmt.Errorf("failed to read nonce: %w", err)
		}
		nonce++
		if err := ledger.PutUint64(ctx, tx, nonceKey, nonce); err != nil {
			return fmt.Errorf("failed to write nonce: %w", err)
		}

		event = &SwapEvent{
			User:   bytes.Clone(user),
			Amount: new(big.Int).Set(amount),
			Nonce:  nonce,
		}
		emitted, err = events.Append(ctx, tx, events.KindBridgeLocked, event)
		return err
	})
	if err != nil {
		metrics.BridgeLocks.WithLabelValues("error").Inc()
		return false, nil, err
	}

	metrics.BridgeLocks.WithLabelValues("locked").Inc()
	metrics.LockedAmount.WithLabelValues("outbound").Observe(amountFloat(amount))
	l.dispatcher.Dispatch(ctx, emitted)
	return true, event, nil
}

func (l *Ledger) MintInbound(ctx context.Context, txID, publicKey, message, signature []byte) (bool, error) {
	defer observe("mint_inbound", time.Now())

	result, event, err := l.mint(ctx, txID, publicKey, message, signature)
	metrics.BridgeMints.WithLabelValues(result).Inc()
	if err != nil {
		return false, err
	}
	if result != mintOK {
		return false, nil
	}

	metrics.LockedAmount.WithLabelValues("inbound").Observe(amountFloat(event.Amount))
	return true, nil
}

func (l *Ledger) mint(ctx context.Context, txID, publicKey, message, signature []byte) (string, *SwapEvent, error) {
	if len(txID) == 0 {
		return mintEmptyTxID, nil, nil
	}

	// Known replays are turned away before paying for a pairing check.
	processed, err := l.IsProcessed(ctx, txID)
	if err != nil {
		return mintError, nil, err
	}
	if processed {
		return mintReplayed, nil, nil
	}

	valid := l.verify(publicKey, message, signature)
	metrics.SignatureVerifications.WithLabelValues(fmt.Sprint(valid)).Inc()
	if !valid {
		return mintBadSig, nil, nil
	}

	event, err := DecodeSwapEvent(message)
	if err != nil {
		return mintBadMessage, nil, nil
	}

	result := mintOK
	var emitted events.Event
	err = l.store.Update(ctx, func(ctx context.Context, tx ledger.Tx) error {
		// re-checked under the write transaction: another mint may have won the race
		seen, err := tx.Has(ctx, processedKey(txID))
		if err != nil {
			return fmt.Errorf("failed to check processed transaction: %w", err)
		}
		if seen {
			result = mintReplayed
			return nil
		}
		if l.digestGuard {
			reused, err := tx.Has(ctx, digestKey(message))
			if err != nil {
				return fmt.Errorf("failed to check message digest: %w", err)
			}
			if reused {
				result = mintDigestReuse
				return nil
			}
		}

		if err := credit(ctx, tx, event.User, event.Amount); err != nil {
			return err
		}
		if err := tx.Set(ctx, processedKey(txID), []byte{1}); err != nil {
			return fmt.Errorf("failed to record processed transaction: %w", err)
		}
		if l.digestGuard {
			if err := tx.Set(ctx, digestKey(message), bytes.Clone(txID)); err != nil {
				return fmt.Errorf("failed to record message digest: %w", err)
			}
		}

		emitted, err = events.Append(ctx, tx, events.KindBridgeMinted, mintedPayload{TxID: txID, eventJSON: event.view()})
		return err
	})
	if err != nil {
		return mintError, nil, err
	}
	if result == mintOK {
		l.dispatcher.Dispatch(ctx, emitted)
	}
	return result, event, nil
}

func (l *Ledger) LockedBalance(ctx context.Context, user []byte) (*big.Int, error) {
	var bal *big.Int
	err := l.store.View(ctx, func(ctx context.Context, r ledger.Reader) error {
		var err error
		bal, err = lockedBalance(ctx, r, user)
		return err
	})
	return bal, err
}

func (l *Ledger) Nonce(ctx context.Context) (uint64, error) {
	var nonce uint64
	err := l.store.View(ctx, func(ctx context.Context, r ledger.Reader) error {
		var err error
		nonce, err = ledger.GetUint64(ctx, r, nonceKey)
		return err
	})
	return nonce, err
}

func (l *Ledger) IsProcessed(ctx context.Context, txID []byte) (bool, error) {
	var seen bool
	err := l.store.View(ctx, func(ctx context.Context, r ledger.Reader) error {
		var err error
		seen, err = r.Has(ctx, processedKey(txID))
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to check processed transaction: %w", err)
	}
	return seen, nil
}

func lockedBalance(ctx context.Context, r ledger.Reader, user []byte) (*big.Int, error) {
	raw, err := r.Get(ctx, lockedKey(user))
	if errors.Is(err, ledger.ErrNotFound) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read locked balance: %w", err)
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("corrupt locked balance: %w", err)
	}
	return d.BigInt(), nil
}

func credit(ctx context.Context, tx ledger.Tx, user []byte, amount *big.Int) error {
	bal, err := lockedBalance(ctx, tx, user)
	if err != nil {
		return err
	}
	bal.Add(bal, amount)
	if err := tx.Set(ctx, lockedKey(user), []byte(decimal.NewFromBigInt(bal, 0).String())); err != nil {
		return fmt.Errorf("failed to write locked balance: %w", err)
	}
	return nil
}

func observe(op string, start time.Time) {
	metrics.OperationDuration.WithLabelValues("bridge", op).Observe(time.Since(start).Seconds())
}

func amountFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
