package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bridge_swap"

var (
	// BridgeLocks counts outbound lock attempts by result
	BridgeLocks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bridge_locks_total",
			Help:      "Total number of outbound lock attempts",
		},
		[]string{"result"},
	)

	// BridgeMints counts inbound mint attempts by result
	BridgeMints = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bridge_mints_total",
			Help:      "Total number of inbound mint attempts",
		},
		[]string{"result"},
	)

	// SignatureVerifications counts BLS verifications by outcome
	SignatureVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signature_verifications_total",
			Help:      "Total number of BLS signature verifications",
		},
		[]string{"valid"},
	)

	// SwapOperations counts HTLC operations by operation and result
	SwapOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swap_operations_total",
			Help:      "Total number of atomic swap operations",
		},
		[]string{"operation", "result"},
	)

	// OperationDuration tracks time spent in ledger operations, including the storage transaction
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Ledger operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"component", "operation"},
	)

	// LockedAmount tracks the size of locked and minted amounts in base units
	LockedAmount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bridge_amount",
			Help:      "Amount credited to locked balances",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 12),
		},
		[]string{"direction"},
	)

	// EventsPublished counts outbox events handed to the sink
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of events published to the sink",
		},
		[]string{"kind", "status"},
	)
)
