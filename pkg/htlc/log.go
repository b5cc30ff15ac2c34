package htlc

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const serviceName = "AtomicSwapEngine"

type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the swap Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{svc: svc, logger: logger.With(zap.String("service", serviceName))}
}

func (ls *logService) done(method string, id SwapID, start time.Time, swap *Swap, err error, extra ...zap.Field) {
	fields := append([]zap.Field{
		zap.String("method", method),
		zap.Stringer("swap_id", id),
		zap.Duration("duration", time.Since(start)),
	}, extra...)

	if err != nil {
		ls.logger.Warn(method+" failed", append(fields, zap.Error(err))...)
		return
	}
	ls.logger.Info(method+" completed", append(fields,
		zap.Stringer("phase", swap.Phase),
		zap.Uint64("deadline", swap.Deadline),
	)...)
}

func (ls *logService) Initiate(ctx context.Context, req InitiateRequest) (swap *Swap, err error) {
	defer func(start time.Time) {
		ls.done("Initiate", req.ID, start, swap, err,
			zap.String("initiator", req.Initiator),
			zap.String("participant", req.Participant),
			zap.Stringer("amount", req.Amount),
			zap.Uint64("time_lock_offset", req.TimeLockOffset),
		)
	}(time.Now())
	return ls.svc.Initiate(ctx, req)
}

func (ls *logService) Redeem(ctx context.Context, id SwapID, caller string, secret []byte) (swap *Swap, err error) {
	defer func(start time.Time) {
		ls.done("Redeem", id, start, swap, err, zap.String("caller", caller), zap.Int("secret_len", len(secret)))
	}(time.Now())
	return ls.svc.Redeem(ctx, id, caller, secret)
}

func (ls *logService) Refund(ctx context.Context, id SwapID, caller string) (swap *Swap, err error) {
	defer func(start time.Time) {
		ls.done("Refund", id, start, swap, err, zap.String("caller", caller))
	}(time.Now())
	return ls.svc.Refund(ctx, id, caller)
}

func (ls *logService) GetSwap(ctx context.Context, id SwapID) (*Swap, error) {
	swap, err := ls.svc.GetSwap(ctx, id)
	if err != nil {
		ls.logger.Debug("GetSwap failed", zap.Stringer("swap_id", id), zap.Error(err))
	}
	return swap, err
}
