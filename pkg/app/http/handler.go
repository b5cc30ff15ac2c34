// Package http provides HTTP utilities including chi-compatible error handling
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/chainsafe/bridge-swap/pkg/app/errors"
)

// HandlerFunc defines a function that returns an error for clean error handling
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// HandleError wraps an error-returning HandlerFunc into a standard http.HandlerFunc.
//
//	r.Post("/swaps", apphttp.HandleError(h.initiate))
func HandleError(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			DefaultErrorHandler(w, err)
		}
	}
}

type errorResponse struct {
	ErrMsg     string `json:"error"`
	ErrMsgCode int    `json:"code"`
}

// DefaultErrorHandler renders err as {"error","code"}. Only ServiceError
// messages reach the client; anything else is reported as a 500.
func DefaultErrorHandler(w http.ResponseWriter, err error) {
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		WriteJSON(w, svcErr.StatusCode(), &errorResponse{
			ErrMsg:     svcErr.Message,
			ErrMsgCode: svcErr.StatusCode(),
		})
		return
	}

	WriteJSON(w, http.StatusInternalServerError, &errorResponse{
		ErrMsg:     "Unexpected Service Error",
		ErrMsgCode: http.StatusInternalServerError,
	})
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON reads at most maxLen bytes of JSON body into v and validates it
// with its `validate` struct tags. Failures are returned as bad requests.
func DecodeJSON(r *http.Request, maxLen int64, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxLen+1))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request body")
	}
	if int64(len(body)) > maxLen {
		return apperrors.BadRequestError(nil, fmt.Sprintf("request body exceeds %d bytes", maxLen))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON body")
	}
	if err := validate.Struct(v); err != nil {
		return apperrors.BadRequestError(err, "invalid request: "+err.Error())
	}
	return nil
}
