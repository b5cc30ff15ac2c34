// Package ledger defines the storage and time ports the bridge and swap engine
// run against, along with an in-memory implementation.
//
// Every state-mutating operation runs inside exactly one Store.Update call.
// Writes made through the Tx become visible to later operations only if the
// callback returns nil; any error discards them all.
package ledger

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Reader is the read side of a transaction.
type Reader interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
	Has(ctx context.Context, key []byte) (bool, error)
}

// Tx is a single operation's view of the store.
type Tx interface {
	Reader
	Set(ctx context.Context, key, value []byte) error
	Delete(ctx context.Context, key []byte) error
}

// Store is the durable key-value substrate.
type Store interface {
	// Update runs fn in a read-write transaction that commits iff fn returns nil.
	Update(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// View runs fn against a consistent read-only snapshot.
	View(ctx context.Context, fn func(ctx context.Context, r Reader) error) error
	Close() error
}

// Namespace builds keys under a fixed prefix so independent components never collide.
type Namespace string

// Key joins the namespace with the given segments using '/'.
func (ns Namespace) Key(parts ...string) []byte {
	n := len(ns)
	for _, p := range parts {
		n += 1 + len(p)
	}
	key := make([]byte, 0, n)
	key = append(key, ns...)
	for _, p := range parts {
		key = append(key, '/')
		key = append(key, p...)
	}
	return key
}

// HexKey is Key with a single hex-encoded binary segment.
func (ns Namespace) HexKey(part string, id []byte) []byte {
	return ns.Key(part, hex.EncodeToString(id))
}

// GetUint64 reads a big-endian counter, returning 0 when the key is absent.
func GetUint64(ctx context.Context, r Reader, key []byte) (uint64, error) {
	raw, err := r.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(raw) != 8 {
		return 0, fmt.Errorf("corrupt counter at %q: %d bytes", key, len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}

// PutUint64 writes a big-endian counter.
func PutUint64(ctx context.Context, tx Tx, key []byte, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return tx.Set(ctx, key, buf[:])
}
