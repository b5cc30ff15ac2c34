package htlc

import (
	"context"
	"crypto/sha256"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/bridge-swap/pkg/app/errors"
	"github.com/chainsafe/bridge-swap/pkg/events"
	"github.com/chainsafe/bridge-swap/pkg/ledger"
	"github.com/chainsafe/bridge-swap/pkg/token"
	"github.com/chainsafe/bridge-swap/pkg/token/mocks"
)

const (
	alice = "A"
	bob   = "B"
	start = uint64(1_700_000_000)
)

var s1 = SwapID{0x51}

type fixture struct {
	ctx    context.Context
	store  ledger.Store
	clock  *ledger.ManualClock
	engine *Engine
	rec    *events.Recorder
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctx := context.Background()
	store := ledger.NewMemStore()
	tokens := token.NewLedger()
	_, err := tokens.Seed(ctx, store, map[string]*big.Int{alice: big.NewInt(1000)})
	require.NoError(t, err)

	clock := ledger.NewManualClock(start)
	rec := &events.Recorder{}
	opts = append([]Option{
		WithClock(clock),
		WithDispatcher(events.NewDispatcher(rec, zap.NewNop())),
	}, opts...)

	return &fixture{
		ctx:    ctx,
		store:  store,
		clock:  clock,
		engine: NewEngine(store, tokens, opts...),
		rec:    rec,
	}
}

func (f *fixture) balance(t *testing.T, account string) int64 {
	t.Helper()
	var bal *big.Int
	require.NoError(t, f.store.View(f.ctx, func(ctx context.Context, r ledger.Reader) error {
		var err error
		bal, err = token.Balance(ctx, r, account)
		return err
	}))
	return bal.Int64()
}

func (f *fixture) initiate(t *testing.T, secret string) *Swap {
	t.Helper()
	swap, err := f.engine.Initiate(f.ctx, InitiateRequest{
		ID:             s1,
		Initiator:      alice,
		Participant:    bob,
		Amount:         big.NewInt(100),
		HashLock:       sha256.Sum256([]byte(secret)),
		TimeLockOffset: 1000,
	})
	require.NoError(t, err)
	return swap
}

func TestScenario_RedeemThenRefundAborts(t *testing.T) {
	f := newFixture(t)
	swap := f.initiate(t, "x")
	require.Equal(t, start+1000, swap.Deadline)
	require.Equal(t, int64(900), f.balance(t, alice))
	require.Equal(t, int64(100), f.balance(t, DefaultCustody))

	f.clock.Set(start + 500)
	swap, err := f.engine.Redeem(f.ctx, s1, bob, []byte("x"))
	require.NoError(t, err)
	require.True(t, swap.Redeemed())
	require.Equal(t, []byte("x"), swap.Secret)
	require.Equal(t, int64(100), f.balance(t, bob))
	require.Equal(t, int64(0), f.balance(t, DefaultCustody))

	f.clock.Set(start + 2000)
	_, err = f.engine.Refund(f.ctx, s1, alice)
	require.ErrorIs(t, err, ErrAlreadyRedeemed)
	require.Equal(t, int64(900), f.balance(t, alice))

	got, err := f.engine.GetSwap(f.ctx, s1)
	require.NoError(t, err)
	require.Equal(t, PhaseRedeemed, got.Phase)
	require.False(t, got.Refunded())

	require.Equal(t, []events.Kind{events.KindSwapInitiated, events.KindSwapRedeemed}, f.rec.Kinds())
}

func TestScenario_RefundOnlyFromDeadline(t *testing.T) {
	f := newFixture(t)
	f.initiate(t, "x")

	f.clock.Set(start + 999)
	_, err := f.engine.Refund(f.ctx, s1, alice)
	require.ErrorIs(t, err, ErrTimeLockActive)
	require.True(t, apperrors.Is(err, apperrors.CategoryLocked))
	require.Equal(t, int64(900), f.balance(t, alice))

	f.clock.Set(start + 1000)
	swap, err := f.engine.Refund(f.ctx, s1, alice)
	require.NoError(t, err)
	require.True(t, swap.Refunded())
	require.Nil(t, swap.Secret)
	require.Equal(t, int64(1000), f.balance(t, alice))

	// terminal: neither redeem nor a second refund is possible
	_, err = f.engine.Redeem(f.ctx, s1, bob, []byte("x"))
	require.ErrorIs(t, err, ErrAlreadyRefunded)
	_, err = f.engine.Refund(f.ctx, s1, alice)
	require.ErrorIs(t, err, ErrAlreadyRefunded)
}

func TestRedeem_EachViolatedClauseAborts(t *testing.T) {
	tests := []struct {
		name   string
		at     uint64
		caller string
		secret string
		want   error
		status apperrors.Category
	}{
		{"wrong caller", start + 1, alice, "x", ErrUnauthorized, apperrors.CategoryForbidden},
		{"stranger", start + 1, "C", "x", ErrUnauthorized, apperrors.CategoryForbidden},
		{"at deadline", start + 1000, bob, "x", ErrTimeLockExpired, apperrors.CategoryDataConflict},
		{"after deadline", start + 5000, bob, "x", ErrTimeLockExpired, apperrors.CategoryDataConflict},
		{"wrong secret", start + 1, bob, "y", ErrInvalidSecret, apperrors.CategoryDataError},
		{"empty secret", start + 1, bob, "", ErrInvalidSecret, apperrors.CategoryDataError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.initiate(t, "x")
			f.clock.Set(tc.at)

			_, err := f.engine.Redeem(f.ctx, s1, tc.caller, []byte(tc.secret))
			require.ErrorIs(t, err, tc.want)
			require.True(t, apperrors.Is(err, tc.status))

			got, err := f.engine.GetSwap(f.ctx, s1)
			require.NoError(t, err)
			require.Equal(t, PhaseCreated, got.Phase)
			require.Nil(t, got.Secret)
			require.Equal(t, int64(100), f.balance(t, DefaultCustody))
			require.Equal(t, int64(0), f.balance(t, bob))
		})
	}
}

func TestRefund_WrongCallerAborts(t *testing.T) {
	f := newFixture(t)
	f.initiate(t, "x")
	f.clock.Set(start + 1000)

	_, err := f.engine.Refund(f.ctx, s1, bob)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Equal(t, int64(100), f.balance(t, DefaultCustody))
}

func TestUnknownSwap(t *testing.T) {
	f := newFixture(t)
	unknown := SwapID{0xff}

	_, err := f.engine.GetSwap(f.ctx, unknown)
	require.ErrorIs(t, err, ErrSwapNotFound)
	require.True(t, apperrors.Is(err, apperrors.CategoryResourceNotFound))

	_, err = f.engine.Redeem(f.ctx, unknown, bob, []byte("x"))
	require.ErrorIs(t, err, ErrSwapNotFound)
	_, err = f.engine.Refund(f.ctx, unknown, alice)
	require.ErrorIs(t, err, ErrSwapNotFound)
}

func TestInitiate_Validation(t *testing.T) {
	valid := InitiateRequest{
		ID:             s1,
		Initiator:      alice,
		Participant:    bob,
		Amount:         big.NewInt(10),
		HashLock:       sha256.Sum256([]byte("x")),
		TimeLockOffset: 60,
	}

	tests := []struct {
		name   string
		modify func(r *InitiateRequest)
		want   error
	}{
		{"zero amount", func(r *InitiateRequest) { r.Amount = big.NewInt(0) }, ErrInvalidAmount},
		{"negative amount", func(r *InitiateRequest) { r.Amount = big.NewInt(-1) }, ErrInvalidAmount},
		{"nil amount", func(r *InitiateRequest) { r.Amount = nil }, ErrInvalidAmount},
		{"empty initiator", func(r *InitiateRequest) { r.Initiator = "" }, ErrInvalidParty},
		{"empty participant", func(r *InitiateRequest) { r.Participant = "" }, ErrInvalidParty},
		{"custody as participant", func(r *InitiateRequest) { r.Participant = DefaultCustody }, ErrInvalidParty},
		{"zero offset", func(r *InitiateRequest) { r.TimeLockOffset = 0 }, ErrInvalidTimeLock},
		{"deadline overflow", func(r *InitiateRequest) { r.TimeLockOffset = ^uint64(0) }, ErrInvalidTimeLock},
		{"insufficient funds", func(r *InitiateRequest) { r.Amount = big.NewInt(5000) }, token.ErrInsufficientFunds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			req := valid
			tc.modify(&req)

			_, err := f.engine.Initiate(f.ctx, req)
			require.ErrorIs(t, err, tc.want)

			_, err = f.engine.GetSwap(f.ctx, s1)
			require.ErrorIs(t, err, ErrSwapNotFound)
			require.Equal(t, int64(1000), f.balance(t, alice))
			require.Empty(t, f.rec.Events())
		})
	}
}

func TestInitiate_DuplicateID(t *testing.T) {
	f := newFixture(t)
	f.initiate(t, "x")

	_, err := f.engine.Initiate(f.ctx, InitiateRequest{
		ID:             s1,
		Initiator:      alice,
		Participant:    "C",
		Amount:         big.NewInt(1),
		HashLock:       sha256.Sum256([]byte("z")),
		TimeLockOffset: 10,
	})
	require.ErrorIs(t, err, ErrSwapExists)
	require.True(t, apperrors.Is(err, apperrors.CategoryDataConflict))

	got, err := f.engine.GetSwap(f.ctx, s1)
	require.NoError(t, err)
	require.Equal(t, bob, got.Participant)
	require.Equal(t, int64(900), f.balance(t, alice))
}

func TestTokenFailureRollsBackOperation(t *testing.T) {
	ctx := context.Background()
	store := ledger.NewMemStore()
	port := mocks.NewPort(t)
	clock := ledger.NewManualClock(start)
	engine := NewEngine(store, port, WithClock(clock))

	// initiate succeeds, redeem payout fails
	port.EXPECT().
		Transfer(mock.Anything, mock.Anything, alice, DefaultCustody, mock.Anything).
		Return(nil).Once()
	port.EXPECT().
		Transfer(mock.Anything, mock.Anything, DefaultCustody, bob, mock.Anything).
		Return(errors.New("ledger offline")).Once()

	_, err := engine.Initiate(ctx, InitiateRequest{
		ID:             s1,
		Initiator:      alice,
		Participant:    bob,
		Amount:         big.NewInt(100),
		HashLock:       sha256.Sum256([]byte("x")),
		TimeLockOffset: 1000,
	})
	require.NoError(t, err)

	_, err = engine.Redeem(ctx, s1, bob, []byte("x"))
	require.ErrorIs(t, err, ErrTransferRejected)
	require.True(t, apperrors.Is(err, apperrors.CategoryDependencyFailure))

	got, err := engine.GetSwap(ctx, s1)
	require.NoError(t, err)
	require.Equal(t, PhaseCreated, got.Phase)
	require.Nil(t, got.Secret)
}

func TestRedeemAndRefundRaceAtDeadline(t *testing.T) {
	for _, at := range []uint64{start + 999, start + 1000} {
		f := newFixture(t)
		f.initiate(t, "x")
		f.clock.Set(at)

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
		)
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				if _, err := f.engine.Redeem(f.ctx, s1, bob, []byte("x")); err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
				}
			}()
			go func() {
				defer wg.Done()
				if _, err := f.engine.Refund(f.ctx, s1, alice); err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 1, successes)
		got, err := f.engine.GetSwap(f.ctx, s1)
		require.NoError(t, err)
		require.True(t, got.Phase.Terminal())
		require.False(t, got.Redeemed() && got.Refunded())
		require.Equal(t, int64(0), f.balance(t, DefaultCustody))
		require.Equal(t, int64(1000), f.balance(t, alice)+f.balance(t, bob))
	}
}

func TestKeccakHashLock(t *testing.T) {
	f := newFixture(t, WithHashFunc(Keccak256))
	_, err := f.engine.Initiate(f.ctx, InitiateRequest{
		ID:             s1,
		Initiator:      alice,
		Participant:    bob,
		Amount:         big.NewInt(1),
		HashLock:       Keccak256([]byte("x")),
		TimeLockOffset: 10,
	})
	require.NoError(t, err)

	_, err = f.engine.Redeem(f.ctx, s1, bob, []byte("x"))
	require.NoError(t, err)
}

func TestHashFuncByName(t *testing.T) {
	h, err := HashFuncByName("sha256")
	require.NoError(t, err)
	require.Equal(t, sha256.Sum256([]byte("a")), h([]byte("a")))

	h, err = HashFuncByName("keccak256")
	require.NoError(t, err)
	require.NotEqual(t, sha256.Sum256([]byte("a")), h([]byte("a")))

	_, err = HashFuncByName("md5")
	require.Error(t, err)
}

func TestNewLog_PassesThrough(t *testing.T) {
	f := newFixture(t)
	svc := NewLog(f.engine, zap.NewNop())

	_, err := svc.Initiate(f.ctx, InitiateRequest{
		ID: s1, Initiator: alice, Participant: bob, Amount: big.NewInt(5),
		HashLock: sha256.Sum256([]byte("x")), TimeLockOffset: 10,
	})
	require.NoError(t, err)

	_, err = svc.Refund(f.ctx, s1, alice)
	require.ErrorIs(t, err, ErrTimeLockActive)

	swap, err := svc.Redeem(f.ctx, s1, bob, []byte("x"))
	require.NoError(t, err)
	require.True(t, swap.Redeemed())

	_, err = svc.GetSwap(f.ctx, SwapID{})
	require.ErrorIs(t, err, ErrSwapNotFound)
}
