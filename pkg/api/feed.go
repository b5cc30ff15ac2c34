package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/chainsafe/bridge-swap/pkg/app/errors"
	apphttp "github.com/chainsafe/bridge-swap/pkg/app/http"
	"github.com/chainsafe/bridge-swap/pkg/events"
)

type eventsResponse struct {
	Events []events.Event `json:"events"`
	// Next is the cursor for the following page, equal to the request cursor when empty.
	Next uint64 `json:"next"`
}

func (h *HTTP) listEvents(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	var after uint64
	if s := q.Get("after"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return apperrors.BadRequestError(err, "after must be an unsigned integer")
		}
		after = n
	}

	limit := defaultEventLimit
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return apperrors.BadRequestError(err, "limit must be a positive integer")
		}
		limit = min(n, maxEventLimit)
	}

	evs, err := h.deps.Events.List(r.Context(), after, limit)
	if err != nil {
		return h.fail(r, err)
	}

	resp := &eventsResponse{Events: evs, Next: after}
	if len(evs) > 0 {
		resp.Next = evs[len(evs)-1].Seq
	} else {
		resp.Events = []events.Event{}
	}
	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) accountBalance(w http.ResponseWriter, r *http.Request) error {
	account := chi.URLParam(r, "account")
	bal, err := h.deps.Balances.Balance(r.Context(), account)
	if err != nil {
		return h.fail(r, err)
	}
	apphttp.WriteJSON(w, http.StatusOK, &balanceResponse{Account: account, Balance: bal.String()})
	return nil
}
