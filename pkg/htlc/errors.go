package htlc

import (
	"errors"

	apperrors "github.com/chainsafe/bridge-swap/pkg/app/errors"
)

var (
	ErrSwapExists       = errors.New("swap already exists")
	ErrSwapNotFound     = errors.New("swap not found")
	ErrUnauthorized     = errors.New("caller is not authorized for this swap")
	ErrAlreadyRedeemed  = errors.New("swap already redeemed")
	ErrAlreadyRefunded  = errors.New("swap already refunded")
	ErrTimeLockExpired  = errors.New("time lock expired")
	ErrTimeLockActive   = errors.New("time lock not yet expired")
	ErrInvalidSecret    = errors.New("secret does not match hash lock")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidTimeLock  = errors.New("invalid time lock")
	ErrInvalidParty     = errors.New("invalid swap party")
	ErrTransferRejected = errors.New("token transfer failed")
)

// abort wraps a sentinel in the ServiceError category the API maps to a status code.
func abort(sentinel error) error {
	msg := sentinel.Error()
	switch sentinel {
	case ErrSwapNotFound:
		return apperrors.ResourceNotFoundError(sentinel, msg)
	case ErrUnauthorized:
		return apperrors.ForbiddenError(sentinel, msg)
	case ErrSwapExists, ErrAlreadyRedeemed, ErrAlreadyRefunded, ErrTimeLockExpired:
		return apperrors.ConflictError(sentinel, msg)
	case ErrTimeLockActive:
		return apperrors.LockedError(sentinel, msg)
	default:
		return apperrors.BadRequestError(sentinel, msg)
	}
}
