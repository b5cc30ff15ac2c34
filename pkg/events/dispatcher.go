package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/chainsafe/bridge-swap/internal/metrics"
	"github.com/chainsafe/bridge-swap/pkg/ledger"
)

// Dispatcher delivers committed outbox events to a Sink. Delivery failures are
// logged and counted; the event stays in the outbox for Replay.
type Dispatcher struct {
	sink   Sink
	logger *zap.Logger
}

func NewDispatcher(sink Sink, logger *zap.Logger) *Dispatcher {
	if sink == nil {
		sink = Nop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{sink: sink, logger: logger}
}

// Dispatch publishes evs in order.
func (d *Dispatcher) Dispatch(ctx context.Context, evs ...Event) {
	for _, ev := range evs {
		if err := d.sink.Publish(ctx, ev); err != nil {
			metrics.EventsPublished.WithLabelValues(string(ev.Kind), "failed").Inc()
			d.logger.Warn("failed to publish event",
				zap.Uint64("seq", ev.Seq),
				zap.String("kind", string(ev.Kind)),
				zap.Error(err),
			)
			continue
		}
		metrics.EventsPublished.WithLabelValues(string(ev.Kind), "ok").Inc()
	}
}

// replayBatch bounds how many events are read per storage view.
const replayBatch = 256

// Replay re-publishes every stored event with Seq > after and returns the
// last sequence number delivered.
func (d *Dispatcher) Replay(ctx context.Context, store ledger.Store, after uint64) (uint64, error) {
	for {
		var batch []Event
		err := store.View(ctx, func(ctx context.Context, r ledger.Reader) error {
			var err error
			batch, err = List(ctx, r, after, replayBatch)
			return err
		})
		if err != nil {
			return after, err
		}
		if len(batch) == 0 {
			return after, nil
		}
		d.Dispatch(ctx, batch...)
		after = batch[len(batch)-1].Seq
	}
}
