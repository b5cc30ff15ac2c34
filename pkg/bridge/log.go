package bridge

import (
	"context"
	"encoding/hex"
	"math/big"
	"time"

	"go.uber.org/zap"
)

const serviceName = "BridgeLedger"

// hexDisplayLen bounds how many bytes of an identifier are logged.
const hexDisplayLen = 16

type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the bridge Service.
// Write operations are logged with their outcome and duration; reads only on error.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger.With(zap.String("service", serviceName)),
	}
}

func (ls *logService) LockOutbound(ctx context.Context, user []byte, amount *big.Int) (ok bool, event *SwapEvent, err error) {
	start := time.Now()
	defer func() {
		fields := []zap.Field{
			zap.String("method", "LockOutbound"),
			zap.String("user", shortHex(user)),
			zap.Stringer("amount", amount),
			zap.Duration("duration", time.Since(start)),
		}
		switch {
		case err != nil:
			ls.logger.Error("LockOutbound failed", append(fields, zap.Error(err))...)
		case !ok:
			ls.logger.Info("LockOutbound rejected", fields...)
		default:
			ls.logger.Info("LockOutbound completed", append(fields, zap.Uint64("nonce", event.Nonce))...)
		}
	}()

	return ls.svc.LockOutbound(ctx, user, amount)
}

func (ls *logService) MintInbound(ctx context.Context, txID, publicKey, message, signature []byte) (ok bool, err error) {
	start := time.Now()
	defer func() {
		fields := []zap.Field{
			zap.String("method", "MintInbound"),
			zap.String("tx_id", shortHex(txID)),
			zap.String("public_key", shortHex(publicKey)),
			zap.Int("message_len", len(message)),
			zap.Duration("duration", time.Since(start)),
		}
		switch {
		case err != nil:
			ls.logger.Error("MintInbound failed", append(fields, zap.Error(err))...)
		case !ok:
			ls.logger.Warn("MintInbound rejected", fields...)
		default:
			ls.logger.Info("MintInbound completed", fields...)
		}
	}()

	return ls.svc.MintInbound(ctx, txID, publicKey, message, signature)
}

func (ls *logService) LockedBalance(ctx context.Context, user []byte) (*big.Int, error) {
	bal, err := ls.svc.LockedBalance(ctx, user)
	if err != nil {
		ls.logger.Error("LockedBalance failed", zap.String("user", shortHex(user)), zap.Error(err))
	}
	return bal, err
}

func (ls *logService) Nonce(ctx context.Context) (uint64, error) {
	n, err := ls.svc.Nonce(ctx)
	if err != nil {
		ls.logger.Error("Nonce failed", zap.Error(err))
	}
	return n, err
}

func (ls *logService) IsProcessed(ctx context.Context, txID []byte) (bool, error) {
	seen, err := ls.svc.IsProcessed(ctx, txID)
	if err != nil {
		ls.logger.Error("IsProcessed failed", zap.String("tx_id", shortHex(txID)), zap.Error(err))
	}
	return seen, err
}

// shortHex hex-encodes b, truncated for log lines.
func shortHex(b []byte) string {
	if len(b) <= hexDisplayLen {
		return hex.EncodeToString(b)
	}
	return hex.EncodeToString(b[:hexDisplayLen]) + "..."
}
