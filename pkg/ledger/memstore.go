package ledger

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("store closed")

type memStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemStore returns a Store held entirely in memory.
// Updates are applied one at a time; the write lock is held for the whole callback.
func NewMemStore() Store {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Update(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{base: s.data, writes: make(map[string]*[]byte)}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	for k, v := range tx.writes {
		if v == nil {
			delete(s.data, k)
			continue
		}
		s.data[k] = *v
	}
	return nil
}

func (s *memStore) View(ctx context.Context, fn func(ctx context.Context, r Reader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &memTx{base: s.data})
}

func (s *memStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// memTx overlays buffered writes on the committed map. A nil entry in writes
// marks a pending delete.
type memTx struct {
	base   map[string][]byte
	writes map[string]*[]byte
}

func (tx *memTx) Get(_ context.Context, key []byte) ([]byte, error) {
	if v, ok := tx.writes[string(key)]; ok {
		if v == nil {
			return nil, ErrNotFound
		}
		return clone(*v), nil
	}
	v, ok := tx.base[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (tx *memTx) Has(ctx context.Context, key []byte) (bool, error) {
	_, err := tx.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (tx *memTx) Set(_ context.Context, key, value []byte) error {
	if tx.writes == nil {
		return errors.New("write in read-only transaction")
	}
	v := clone(value)
	tx.writes[string(key)] = &v
	return nil
}

func (tx *memTx) Delete(_ context.Context, key []byte) error {
	if tx.writes == nil {
		return errors.New("write in read-only transaction")
	}
	tx.writes[string(key)] = nil
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
