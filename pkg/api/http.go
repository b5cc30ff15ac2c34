// Package api exposes the bridge ledger and the swap engine over HTTP.
package api

import (
	"context"
	"errors"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/bridge-swap/pkg/app/errors"
	apphttp "github.com/chainsafe/bridge-swap/pkg/app/http"
	"github.com/chainsafe/bridge-swap/pkg/auth"
	"github.com/chainsafe/bridge-swap/pkg/bls"
	"github.com/chainsafe/bridge-swap/pkg/bridge"
	"github.com/chainsafe/bridge-swap/pkg/events"
	"github.com/chainsafe/bridge-swap/pkg/htlc"
)

const (
	defaultBodyLimit  = 1 << 20
	defaultEventLimit = 100
	maxEventLimit     = 1000
)

// EventLister pages through the event outbox.
type EventLister interface {
	List(ctx context.Context, after uint64, limit int) ([]events.Event, error)
}

// BalanceReader reports token balances.
type BalanceReader interface {
	Balance(ctx context.Context, account string) (*big.Int, error)
}

// Deps are the services behind the API. Events and Balances may be nil, in
// which case their routes are not registered.
type Deps struct {
	Bridge   bridge.Service
	Swaps    htlc.Service
	Events   EventLister
	Balances BalanceReader
	// Auth validates bearer tokens on swap mutations. Nil selects the X-Caller header.
	Auth *auth.Validator
	// Verify backs the signature check endpoint. Defaults to bls.Verify.
	Verify     bridge.VerifyFunc
	MaxBodyLen int64
}

// HTTP serves the API endpoints
type HTTP struct {
	deps   Deps
	logger *zap.Logger
}

// RegisterRoutes registers the v1 API on the given chi router
func RegisterRoutes(r chi.Router, deps Deps, logger *zap.Logger) {
	if deps.MaxBodyLen <= 0 {
		deps.MaxBodyLen = defaultBodyLimit
	}
	if deps.Verify == nil {
		deps.Verify = bls.Verify
	}
	h := &HTTP{deps: deps, logger: logger}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/signatures/verify", apphttp.HandleError(h.verifySignature))

		r.Route("/bridge", func(r chi.Router) {
			r.Post("/lock", apphttp.HandleError(h.lock))
			r.Post("/mint", apphttp.HandleError(h.mint))
			r.Get("/nonce", apphttp.HandleError(h.nonce))
			r.Get("/balances/{user}", apphttp.HandleError(h.lockedBalance))
			r.Get("/processed/{txID}", apphttp.HandleError(h.processed))
		})

		r.Route("/swaps", func(r chi.Router) {
			r.Get("/{id}", apphttp.HandleError(h.getSwap))
			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware(deps.Auth))
				r.Post("/", apphttp.HandleError(h.initiate))
				r.Post("/{id}/redeem", apphttp.HandleError(h.redeem))
				r.Post("/{id}/refund", apphttp.HandleError(h.refund))
			})
		})

		if deps.Balances != nil {
			r.Get("/accounts/{account}/balance", apphttp.HandleError(h.accountBalance))
		}
		if deps.Events != nil {
			r.Get("/events", apphttp.HandleError(h.listEvents))
		}
	})
}

// parseAmount accepts a base-10 integer of any sign. Range checks are left
// to the services.
func parseAmount(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return nil, apperrors.BadRequestError(err, "amount must be a base-10 integer")
	}
	return d.BigInt(), nil
}

func caller(r *http.Request) (string, error) {
	c, ok := auth.CallerFromContext(r.Context())
	if !ok {
		return "", apperrors.UnAuthorizedError(nil, "caller not identified")
	}
	return c, nil
}

// fail passes service errors through and hides everything else behind a 500.
// Internal failures are logged.
func (h *HTTP) fail(r *http.Request, err error) error {
	if apperrors.IsInternalError(err) {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	return apperrors.GeneralError(err)
}
