// Package server implements app.Runner for the bridged process.
package server

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chainsafe/bridge-swap/pkg/api"
	apphttp "github.com/chainsafe/bridge-swap/pkg/app/http"
	"github.com/chainsafe/bridge-swap/pkg/auth"
	"github.com/chainsafe/bridge-swap/pkg/bridge"
	"github.com/chainsafe/bridge-swap/pkg/config"
	"github.com/chainsafe/bridge-swap/pkg/events"
	"github.com/chainsafe/bridge-swap/pkg/htlc"
	"github.com/chainsafe/bridge-swap/pkg/ledger"
	"github.com/chainsafe/bridge-swap/pkg/ledger/pgstore"
	"github.com/chainsafe/bridge-swap/pkg/pgutil"
	"github.com/chainsafe/bridge-swap/pkg/token"
)

const serviceName = "bridged"

// Server holds configuration for the bridged process.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new Server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run opens the ledger, builds the bridge and the swap engine, and serves the API.
// It blocks until an OS shutdown signal is received or a fatal server error occurs.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("nil config")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging, serviceName)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting bridge and swap service",
		zap.String("driver", cfg.Database.Driver),
		zap.Bool("auth", cfg.Auth.Enabled))

	store, err := OpenStore(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer func() { _ = store.Close() }()
	logger.Info("Ledger store opened")

	node, err := NewNode(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	return apphttp.ServeAndWait(ctx, node.Router(), logger, &cfg.Server)
}

// OpenStore opens the ledger store selected by cfg.Driver.
func OpenStore(ctx context.Context, cfg *config.DatabaseConfig) (ledger.Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return ledger.NewMemStore(), nil
	case "postgres":
		db, err := pgutil.ConnectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return pgstore.NewStore(db), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Node is the assembled service on top of one ledger store.
type Node struct {
	cfg    *config.Config
	store  ledger.Store
	logger *zap.Logger

	Bridge bridge.Service
	Swaps  htlc.Service
}

// NewNode seeds genesis balances, optionally replays the outbox and wires the services.
func NewNode(ctx context.Context, cfg *config.Config, store ledger.Store, logger *zap.Logger) (*Node, error) {
	dispatcher := events.NewDispatcher(events.NewLogSink(logger), logger)
	if cfg.Events.ReplayOnStart {
		last, err := dispatcher.Replay(ctx, store, cfg.Events.ReplayAfter)
		if err != nil {
			return nil, fmt.Errorf("replay events: %w", err)
		}
		logger.Info("Replayed event outbox",
			zap.Uint64("after", cfg.Events.ReplayAfter),
			zap.Uint64("last", last))
	}

	genesis, err := parseGenesis(cfg.Swap.GenesisBalances)
	if err != nil {
		return nil, err
	}
	tokens := token.NewLedger()
	seeded, err := tokens.Seed(ctx, store, genesis)
	if err != nil {
		return nil, fmt.Errorf("seed genesis balances: %w", err)
	}
	if seeded {
		logger.Info("Seeded genesis balances", zap.Int("accounts", len(genesis)))
	}

	hash, err := htlc.HashFuncByName(cfg.Swap.HashFunction)
	if err != nil {
		return nil, err
	}

	bridgeLedger := bridge.NewLedger(store,
		bridge.WithDispatcher(dispatcher),
		bridge.WithDigestGuard(cfg.Bridge.ReplayGuardDigest),
	)
	engine := htlc.NewEngine(store, tokens,
		htlc.WithCustody(cfg.Swap.CustodyAccount),
		htlc.WithHashFunc(hash),
		htlc.WithDispatcher(dispatcher),
	)

	return &Node{
		cfg:    cfg,
		store:  store,
		logger: logger,
		Bridge: bridge.NewLog(bridgeLedger, logger),
		Swaps:  htlc.NewLog(engine, logger),
	}, nil
}

func parseGenesis(raw map[string]string) (map[string]*big.Int, error) {
	out := make(map[string]*big.Int, len(raw))
	for account, s := range raw {
		d, err := decimal.NewFromString(s)
		if err != nil || !d.IsInteger() || d.Sign() <= 0 {
			return nil, fmt.Errorf("invalid genesis balance %q for %s", s, account)
		}
		out[account] = d.BigInt()
	}
	return out, nil
}

// Router builds the HTTP handler: health probes, metrics and the v1 API.
func (n *Node) Router() http.Handler {
	cfg := n.cfg

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(accessLog(n.logger))
	if origins := cfg.Server.CORSAllowedOrigins; len(origins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Authorization", "Content-Type", auth.CallerHeader},
		}).Handler)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		err := n.store.View(r.Context(), func(context.Context, ledger.Reader) error { return nil })
		if err != nil {
			n.logger.Warn("Ledger not ready", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	if cfg.Monitoring.Enabled {
		r.Handle(cfg.Monitoring.MetricsPath, promhttp.Handler())
		n.logger.Info("Metrics enabled", zap.String("path", cfg.Monitoring.MetricsPath))
	}

	var validator *auth.Validator
	if cfg.Auth.Enabled {
		validator = auth.NewValidator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	}

	api.RegisterRoutes(r, api.Deps{
		Bridge:     n.Bridge,
		Swaps:      n.Swaps,
		Events:     events.NewFeed(n.store),
		Balances:   token.NewAccounts(n.store),
		Auth:       validator,
		MaxBodyLen: cfg.Server.MaxRequestBodyLen,
	}, n.logger)

	return r
}

func accessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
