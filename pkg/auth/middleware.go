package auth

import (
	"net/http"
	"strings"

	apperrors "github.com/chainsafe/bridge-swap/pkg/app/errors"
	apphttp "github.com/chainsafe/bridge-swap/pkg/app/http"
)

// CallerHeader carries the caller account when token auth is disabled.
const CallerHeader = "X-Caller"

// Middleware puts the caller into the request context. With a validator the
// caller is the subject of the bearer token; without one it is CallerHeader.
// Requests without a caller are rejected with 401.
func Middleware(v *Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := resolveCaller(v, r)
			if err != nil {
				apphttp.DefaultErrorHandler(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

func resolveCaller(v *Validator, r *http.Request) (string, error) {
	if v == nil {
		caller := strings.TrimSpace(r.Header.Get(CallerHeader))
		if caller == "" {
			return "", apperrors.UnAuthorizedError(nil, "missing "+CallerHeader+" header")
		}
		return caller, nil
	}

	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", apperrors.UnAuthorizedError(ErrMissingToken, ErrMissingToken.Error())
	}
	subject, err := v.ValidateToken(token)
	if err != nil {
		return "", apperrors.UnAuthorizedError(err, ErrInvalidToken.Error())
	}
	return subject, nil
}
