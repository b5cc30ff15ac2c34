package bridge

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/bridge-swap/pkg/bls"
	"github.com/chainsafe/bridge-swap/pkg/events"
	"github.com/chainsafe/bridge-swap/pkg/ledger"
)

type signer struct {
	sk *bls.SecretKey
	pk []byte
}

func newSigner(t *testing.T) *signer {
	t.Helper()
	sk, err := bls.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return &signer{sk: sk, pk: sk.PublicKey().Bytes()}
}

func (s *signer) sign(t *testing.T, e *SwapEvent) (message, signature []byte) {
	t.Helper()
	message, err := EncodeSwapEvent(e)
	require.NoError(t, err)
	sig, err := s.sk.Sign(message)
	require.NoError(t, err)
	return message, sig.Bytes()
}

func newTestLedger(t *testing.T, opts ...Option) (*Ledger, *events.Recorder) {
	t.Helper()
	rec := &events.Recorder{}
	opts = append([]Option{WithDispatcher(events.NewDispatcher(rec, zap.NewNop()))}, opts...)
	return NewLedger(ledger.NewMemStore(), opts...), rec
}

func requireBalance(t *testing.T, l *Ledger, user []byte, want int64) {
	t.Helper()
	bal, err := l.LockedBalance(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(want).String(), bal.String())
}

func requireNonce(t *testing.T, l *Ledger, want uint64) {
	t.Helper()
	n, err := l.Nonce(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, n)
}

func TestLockOutbound_CreditsAndIncrementsNonce(t *testing.T) {
	ctx := context.Background()
	l, rec := newTestLedger(t)
	alice := []byte("alice")

	ok, ev, err := l.LockOutbound(ctx, alice, big.NewInt(100))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, alice, ev.User)
	require.Equal(t, "100", ev.Amount.String())
	require.Equal(t, uint64(1), ev.Nonce)

	requireBalance(t, l, alice, 100)
	requireNonce(t, l, 1)
	require.Equal(t, []events.Kind{events.KindBridgeLocked}, rec.Kinds())

	var payload SwapEvent
	require.NoError(t, rec.Events()[0].Decode(&payload))
	require.Equal(t, uint64(1), payload.Nonce)
}

func TestLockOutbound_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	l, rec := newTestLedger(t)
	alice := []byte("alice")

	tests := []struct {
		name   string
		user   []byte
		amount *big.Int
	}{
		{"zero amount", alice, big.NewInt(0)},
		{"negative amount", alice, big.NewInt(-5)},
		{"nil amount", alice, nil},
		{"amount above int128", alice, new(big.Int).Lsh(big.NewInt(1), 127)},
		{"empty user", nil, big.NewInt(1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, ev, err := l.LockOutbound(ctx, tc.user, tc.amount)
			require.NoError(t, err)
			require.False(t, ok)
			require.Nil(t, ev)
		})
	}

	requireBalance(t, l, alice, 0)
	requireNonce(t, l, 0)
	require.Empty(t, rec.Events())
}

func TestLockOutbound_NonceIsGapFreeAcrossUsers(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	var (
		mu     sync.Mutex
		nonces = map[uint64]bool{}
		wg     sync.WaitGroup
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := []byte{byte(i % 4)}
			ok, ev, err := l.LockOutbound(ctx, user, big.NewInt(1))
			if err != nil || !ok {
				t.Errorf("lock %d failed: ok=%v err=%v", i, ok, err)
				return
			}
			mu.Lock()
			nonces[ev.Nonce] = true
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	require.Len(t, nonces, 40)
	for n := uint64(1); n <= 40; n++ {
		require.True(t, nonces[n], "missing nonce %d", n)
	}
	requireNonce(t, l, 40)
	for u := byte(0); u < 4; u++ {
		requireBalance(t, l, []byte{u}, 10)
	}
}

func TestMintInbound_ValidSignatureCreditsOnce(t *testing.T) {
	ctx := context.Background()
	l, rec := newTestLedger(t)
	s := newSigner(t)
	bob := []byte("bob")

	msg, sig := s.sign(t, &SwapEvent{User: bob, Amount: big.NewInt(250), Nonce: 7})
	txID := []byte("eth-tx-1")

	ok, err := l.MintInbound(ctx, txID, s.pk, msg, sig)
	require.NoError(t, err)
	require.True(t, ok)
	requireBalance(t, l, bob, 250)

	seen, err := l.IsProcessed(ctx, txID)
	require.NoError(t, err)
	require.True(t, seen)

	// same tx id again is a no-op
	ok, err = l.MintInbound(ctx, txID, s.pk, msg, sig)
	require.NoError(t, err)
	require.False(t, ok)
	requireBalance(t, l, bob, 250)

	// mint does not consume outbound nonces
	requireNonce(t, l, 0)
	require.Equal(t, []events.Kind{events.KindBridgeMinted}, rec.Kinds())
}

func TestMintInbound_ProcessedTxRejectedRegardlessOfSignature(t *testing.T) {
	ctx := context.Background()
	calls := 0
	verify := func(pk, msg, sig []byte) bool {
		calls++
		return bls.Verify(pk, msg, sig)
	}
	l, _ := newTestLedger(t, WithVerifier(verify))
	s := newSigner(t)
	bob := []byte("bob")

	msg, sig := s.sign(t, &SwapEvent{User: bob, Amount: big.NewInt(10), Nonce: 1})
	ok, err := l.MintInbound(ctx, []byte("tx"), s.pk, msg, sig)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, calls)

	otherMsg, otherSig := s.sign(t, &SwapEvent{User: bob, Amount: big.NewInt(99), Nonce: 2})
	ok, err = l.MintInbound(ctx, []byte("tx"), s.pk, otherMsg, otherSig)
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = l.MintInbound(ctx, []byte("tx"), s.pk, otherMsg, []byte("garbage"))
	require.NoError(t, err)
	require.False(t, ok)

	// replays never reach the verifier
	require.Equal(t, 1, calls)
	requireBalance(t, l, bob, 10)
}

func TestMintInbound_Rejections(t *testing.T) {
	ctx := context.Background()
	s := newSigner(t)
	other := newSigner(t)
	bob := []byte("bob")

	msg, sig := s.sign(t, &SwapEvent{User: bob, Amount: big.NewInt(5), Nonce: 1})
	otherMsg, _ := s.sign(t, &SwapEvent{User: bob, Amount: big.NewInt(6), Nonce: 1})

	garbageMsg := []byte("not a swap event")
	garbageSig, err := s.sk.Sign(garbageMsg)
	require.NoError(t, err)

	tests := []struct {
		name               string
		txID, pk, msg, sig []byte
	}{
		{"empty tx id", nil, s.pk, msg, sig},
		{"truncated public key", []byte("t1"), s.pk[:len(s.pk)-1], msg, sig},
		{"truncated signature", []byte("t2"), s.pk, msg, sig[:len(sig)-1]},
		{"signature for another message", []byte("t3"), s.pk, otherMsg, sig},
		{"wrong signer", []byte("t4"), other.pk, msg, sig},
		{"valid signature over unparseable message", []byte("t5"), s.pk, garbageMsg, garbageSig.Bytes()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, rec := newTestLedger(t)
			ok, err := l.MintInbound(ctx, tc.txID, tc.pk, tc.msg, tc.sig)
			require.NoError(t, err)
			require.False(t, ok)

			requireBalance(t, l, bob, 0)
			if len(tc.txID) > 0 {
				seen, err := l.IsProcessed(ctx, tc.txID)
				require.NoError(t, err)
				require.False(t, seen)
			}
			require.Empty(t, rec.Events())
		})
	}
}

func TestMintInbound_DigestGuard(t *testing.T) {
	ctx := context.Background()
	s := newSigner(t)
	bob := []byte("bob")
	msg, sig := s.sign(t, &SwapEvent{User: bob, Amount: big.NewInt(5), Nonce: 1})

	t.Run("enabled", func(t *testing.T) {
		l, _ := newTestLedger(t)
		ok, err := l.MintInbound(ctx, []byte("a"), s.pk, msg, sig)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = l.MintInbound(ctx, []byte("b"), s.pk, msg, sig)
		require.NoError(t, err)
		require.False(t, ok)
		requireBalance(t, l, bob, 5)

		seen, err := l.IsProcessed(ctx, []byte("b"))
		require.NoError(t, err)
		require.False(t, seen)
	})

	t.Run("disabled", func(t *testing.T) {
		l, _ := newTestLedger(t, WithDigestGuard(false))
		for _, txID := range []string{"a", "b"} {
			ok, err := l.MintInbound(ctx, []byte(txID), s.pk, msg, sig)
			require.NoError(t, err)
			require.True(t, ok)
		}
		requireBalance(t, l, bob, 10)
	})
}

func TestMintInbound_ConcurrentSameTxCreditsOnce(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, WithDigestGuard(false))
	s := newSigner(t)
	bob := []byte("bob")
	msg, sig := s.sign(t, &SwapEvent{User: bob, Amount: big.NewInt(3), Nonce: 1})

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		minted int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := l.MintInbound(ctx, []byte("race"), s.pk, msg, sig)
			if err != nil {
				t.Errorf("mint failed: %v", err)
				return
			}
			if ok {
				mu.Lock()
				minted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, minted)
	requireBalance(t, l, bob, 3)
}

type failingStore struct {
	ledger.Store
	err error
}

func (f failingStore) Update(context.Context, func(context.Context, ledger.Tx) error) error {
	return f.err
}

func TestStorageFailureSurfacesAsError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	l := NewLedger(failingStore{Store: ledger.NewMemStore(), err: boom})

	ok, ev, err := l.LockOutbound(ctx, []byte("alice"), big.NewInt(1))
	require.ErrorIs(t, err, boom)
	require.False(t, ok)
	require.Nil(t, ev)

	s := newSigner(t)
	msg, sig := s.sign(t, &SwapEvent{User: []byte("bob"), Amount: big.NewInt(1), Nonce: 1})
	ok, err = l.MintInbound(ctx, []byte("tx"), s.pk, msg, sig)
	require.ErrorIs(t, err, boom)
	require.False(t, ok)
}

func TestNewLog_PassesThrough(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	svc := NewLog(l, zap.NewNop())

	ok, ev, err := svc.LockOutbound(ctx, []byte("alice"), big.NewInt(2))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(1), ev.Nonce)

	ok, _, err = svc.LockOutbound(ctx, []byte("alice"), big.NewInt(0))
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.MintInbound(ctx, []byte("tx"), nil, nil, nil)
	require.NoError(t, err)
	require.False(t, ok)

	n, err := svc.Nonce(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), n)
}
