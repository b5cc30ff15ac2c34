package api

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"

	apperrors "github.com/chainsafe/bridge-swap/pkg/app/errors"
	apphttp "github.com/chainsafe/bridge-swap/pkg/app/http"
	"github.com/chainsafe/bridge-swap/pkg/bridge"
)

type verifyRequest struct {
	PublicKey hexutil.Bytes `json:"public_key"`
	Message   hexutil.Bytes `json:"message"`
	Signature hexutil.Bytes `json:"signature"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

type lockRequest struct {
	User   hexutil.Bytes `json:"user"`
	Amount string        `json:"amount" validate:"required"`
}

type lockResponse struct {
	Locked  bool              `json:"locked"`
	Event   *bridge.SwapEvent `json:"event,omitempty"`
	Encoded hexutil.Bytes     `json:"encoded,omitempty"`
}

type mintRequest struct {
	TxID      hexutil.Bytes `json:"tx_id"`
	PublicKey hexutil.Bytes `json:"public_key"`
	Message   hexutil.Bytes `json:"message"`
	Signature hexutil.Bytes `json:"signature"`
}

type mintResponse struct {
	Minted bool `json:"minted"`
}

type balanceResponse struct {
	Account string `json:"account"`
	Balance string `json:"balance"`
}

func (h *HTTP) verifySignature(w http.ResponseWriter, r *http.Request) error {
	var req verifyRequest
	if err := apphttp.DecodeJSON(r, h.deps.MaxBodyLen, &req); err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, &verifyResponse{
		Valid: h.deps.Verify(req.PublicKey, req.Message, req.Signature),
	})
	return nil
}

func (h *HTTP) lock(w http.ResponseWriter, r *http.Request) error {
	var req lockRequest
	if err := apphttp.DecodeJSON(r, h.deps.MaxBodyLen, &req); err != nil {
		return err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return err
	}

	ok, ev, err := h.deps.Bridge.LockOutbound(r.Context(), req.User, amount)
	if err != nil {
		return h.fail(r, err)
	}

	resp := &lockResponse{Locked: ok}
	if ok && ev != nil {
		encoded, err := bridge.EncodeSwapEvent(ev)
		if err != nil {
			return h.fail(r, err)
		}
		resp.Event = ev
		resp.Encoded = encoded
	}
	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) mint(w http.ResponseWriter, r *http.Request) error {
	var req mintRequest
	if err := apphttp.DecodeJSON(r, h.deps.MaxBodyLen, &req); err != nil {
		return err
	}

	ok, err := h.deps.Bridge.MintInbound(r.Context(), req.TxID, req.PublicKey, req.Message, req.Signature)
	if err != nil {
		return h.fail(r, err)
	}
	apphttp.WriteJSON(w, http.StatusOK, &mintResponse{Minted: ok})
	return nil
}

func (h *HTTP) nonce(w http.ResponseWriter, r *http.Request) error {
	n, err := h.deps.Bridge.Nonce(r.Context())
	if err != nil {
		return h.fail(r, err)
	}
	apphttp.WriteJSON(w, http.StatusOK, map[string]string{"nonce": strconv.FormatUint(n, 10)})
	return nil
}

func (h *HTTP) lockedBalance(w http.ResponseWriter, r *http.Request) error {
	raw := chi.URLParam(r, "user")
	user, err := hexutil.Decode(raw)
	if err != nil {
		return apperrors.BadRequestError(err, "user must be 0x-prefixed hex")
	}

	bal, err := h.deps.Bridge.LockedBalance(r.Context(), user)
	if err != nil {
		return h.fail(r, err)
	}
	apphttp.WriteJSON(w, http.StatusOK, &balanceResponse{Account: raw, Balance: bal.String()})
	return nil
}

func (h *HTTP) processed(w http.ResponseWriter, r *http.Request) error {
	txID, err := hexutil.Decode(chi.URLParam(r, "txID"))
	if err != nil {
		return apperrors.BadRequestError(err, "tx id must be 0x-prefixed hex")
	}

	ok, err := h.deps.Bridge.IsProcessed(r.Context(), txID)
	if err != nil {
		return h.fail(r, err)
	}
	apphttp.WriteJSON(w, http.StatusOK, map[string]bool{"processed": ok})
	return nil
}
