package auth

import (
	"context"
)

type contextKey string

// ContextKeyCaller is the context key for the authenticated caller account
const ContextKeyCaller contextKey = "caller"

// WithCaller adds the caller account to the context
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, ContextKeyCaller, caller)
}

// CallerFromContext retrieves the caller account from the context
func CallerFromContext(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(ContextKeyCaller).(string)
	return caller, ok && caller != ""
}
