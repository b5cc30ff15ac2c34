// Package events implements the transactional outbox the bridge and swap
// engine publish through, and the sinks that deliver it.
//
// Operations append events with Append inside their storage transaction.
// Once the transaction commits, the Dispatcher hands them to a Sink. The
// outbox itself stays in the store and can be listed or replayed later.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chainsafe/bridge-swap/pkg/ledger"
)

// Kind names the type of an event.
type Kind string

const (
	KindBridgeLocked  Kind = "bridge.locked"
	KindBridgeMinted  Kind = "bridge.minted"
	KindSwapInitiated Kind = "htlc.initiated"
	KindSwapRedeemed  Kind = "htlc.redeemed"
	KindSwapRefunded  Kind = "htlc.refunded"
)

// Event is one outbox record.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Seq       uint64          `json:"seq"`
	Kind      Kind            `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// Sink receives events after the producing operation committed.
type Sink interface {
	Publish(ctx context.Context, ev Event) error
}

var (
	ns     = ledger.Namespace("events")
	seqKey = ns.Key("seq")
)

func logKey(seq uint64) []byte {
	return ns.Key("log", fmt.Sprintf("%020d", seq))
}

// Append assigns the next sequence number to a new event and writes it to the
// outbox inside tx. The event is discarded with the transaction on rollback.
func Append(ctx context.Context, tx ledger.Tx, kind Kind, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode %s payload: %w", kind, err)
	}

	seq, err := ledger.GetUint64(ctx, tx, seqKey)
	if err != nil {
		return Event{}, fmt.Errorf("failed to read event sequence: %w", err)
	}
	seq++

	ev := Event{
		ID:        uuid.New(),
		Seq:       seq,
		Kind:      kind,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}
	record, err := json.Marshal(ev)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode event: %w", err)
	}

	if err := tx.Set(ctx, logKey(seq), record); err != nil {
		return Event{}, fmt.Errorf("failed to write event: %w", err)
	}
	if err := ledger.PutUint64(ctx, tx, seqKey, seq); err != nil {
		return Event{}, fmt.Errorf("failed to advance event sequence: %w", err)
	}
	return ev, nil
}

// List returns up to limit events with Seq > after, in sequence order.
func List(ctx context.Context, r ledger.Reader, after uint64, limit int) ([]Event, error) {
	last, err := ledger.GetUint64(ctx, r, seqKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read event sequence: %w", err)
	}

	var out []Event
	for seq := after + 1; seq <= last && len(out) < limit; seq++ {
		raw, err := r.Get(ctx, logKey(seq))
		if errors.Is(err, ledger.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event %d: %w", seq, err)
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("corrupt event %d: %w", seq, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

// LastSeq returns the sequence number of the newest event, 0 if none.
func LastSeq(ctx context.Context, r ledger.Reader) (uint64, error) {
	return ledger.GetUint64(ctx, r, seqKey)
}

// Feed reads the outbox of a store.
type Feed struct {
	store ledger.Store
}

func NewFeed(store ledger.Store) *Feed {
	return &Feed{store: store}
}

// List is List against a read-only view of the store.
func (f *Feed) List(ctx context.Context, after uint64, limit int) ([]Event, error) {
	var out []Event
	err := f.store.View(ctx, func(ctx context.Context, r ledger.Reader) error {
		var err error
		out, err = List(ctx, r, after, limit)
		return err
	})
	return out, err
}
