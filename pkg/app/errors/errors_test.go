package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

var errSentinel = errors.New("swap not found")

func TestServiceError_IsMatchesSentinelAndCategory(t *testing.T) {
	err := fmt.Errorf("lookup: %w", ResourceNotFoundError(errSentinel, "swap not found"))

	require.ErrorIs(t, err, errSentinel)
	require.True(t, Is(err, CategoryResourceNotFound))
	require.False(t, Is(err, CategoryDataError))
	require.Equal(t, CategoryResourceNotFound, CategoryOf(err))
}

func TestCategoryOf(t *testing.T) {
	require.Equal(t, CategoryNoError, CategoryOf(nil))
	require.Equal(t, CategoryGeneralError, CategoryOf(errors.New("plain")))
}

func TestIsInternalError(t *testing.T) {
	require.False(t, IsInternalError(BadRequestError(nil, "bad")))
	require.True(t, IsInternalError(DependencyError(nil, "token transfer failed")))
	require.True(t, IsInternalError(errors.New("plain")))
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{BadRequestError(nil, "x"), http.StatusBadRequest},
		{UnAuthorizedError(nil, "x"), http.StatusUnauthorized},
		{ForbiddenError(nil, "x"), http.StatusForbidden},
		{ResourceNotFoundError(nil, "x"), http.StatusNotFound},
		{ConflictError(nil, "x"), http.StatusConflict},
		{LockedError(nil, "x"), http.StatusLocked},
		{DependencyError(nil, "x"), http.StatusBadGateway},
		{GeneralError(nil), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		var svcErr *ServiceError
		require.True(t, errors.As(tc.err, &svcErr))
		require.Equal(t, tc.want, svcErr.StatusCode(), svcErr.Category.String())
	}
}

func TestGeneralError_HidesCause(t *testing.T) {
	cause := errors.New("db down")
	err := GeneralError(cause)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	require.Equal(t, "Internal Server Error", svcErr.Message)
	require.ErrorIs(t, err, cause)
}
