package api

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"

	apperrors "github.com/chainsafe/bridge-swap/pkg/app/errors"
	apphttp "github.com/chainsafe/bridge-swap/pkg/app/http"
	"github.com/chainsafe/bridge-swap/pkg/htlc"
)

type initiateRequest struct {
	ID          string        `json:"id" validate:"required"`
	Participant string        `json:"participant"`
	Amount      string        `json:"amount" validate:"required"`
	HashLock    hexutil.Bytes `json:"hash_lock" validate:"len=32"`
	// TimeLock is the number of seconds until the swap can be refunded.
	TimeLock uint64 `json:"time_lock"`
}

type redeemRequest struct {
	Secret hexutil.Bytes `json:"secret"`
}

func swapID(r *http.Request) (htlc.SwapID, error) {
	id, err := htlc.ParseSwapID(chi.URLParam(r, "id"))
	if err != nil {
		return id, apperrors.BadRequestError(err, err.Error())
	}
	return id, nil
}

func (h *HTTP) initiate(w http.ResponseWriter, r *http.Request) error {
	initiator, err := caller(r)
	if err != nil {
		return err
	}

	var req initiateRequest
	if err := apphttp.DecodeJSON(r, h.deps.MaxBodyLen, &req); err != nil {
		return err
	}
	id, err := htlc.ParseSwapID(req.ID)
	if err != nil {
		return apperrors.BadRequestError(err, err.Error())
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return err
	}

	in := htlc.InitiateRequest{
		ID:             id,
		Initiator:      initiator,
		Participant:    req.Participant,
		Amount:         amount,
		TimeLockOffset: req.TimeLock,
	}
	copy(in.HashLock[:], req.HashLock)

	swap, err := h.deps.Swaps.Initiate(r.Context(), in)
	if err != nil {
		return h.fail(r, err)
	}
	apphttp.WriteJSON(w, http.StatusCreated, swap)
	return nil
}

func (h *HTTP) redeem(w http.ResponseWriter, r *http.Request) error {
	participant, err := caller(r)
	if err != nil {
		return err
	}
	id, err := swapID(r)
	if err != nil {
		return err
	}

	var req redeemRequest
	if err := apphttp.DecodeJSON(r, h.deps.MaxBodyLen, &req); err != nil {
		return err
	}

	swap, err := h.deps.Swaps.Redeem(r.Context(), id, participant, req.Secret)
	if err != nil {
		return h.fail(r, err)
	}
	apphttp.WriteJSON(w, http.StatusOK, swap)
	return nil
}

func (h *HTTP) refund(w http.ResponseWriter, r *http.Request) error {
	initiator, err := caller(r)
	if err != nil {
		return err
	}
	id, err := swapID(r)
	if err != nil {
		return err
	}

	swap, err := h.deps.Swaps.Refund(r.Context(), id, initiator)
	if err != nil {
		return h.fail(r, err)
	}
	apphttp.WriteJSON(w, http.StatusOK, swap)
	return nil
}

func (h *HTTP) getSwap(w http.ResponseWriter, r *http.Request) error {
	id, err := swapID(r)
	if err != nil {
		return err
	}

	swap, err := h.deps.Swaps.GetSwap(r.Context(), id)
	if err != nil {
		return h.fail(r, err)
	}
	apphttp.WriteJSON(w, http.StatusOK, swap)
	return nil
}
