package shopapi

import (
	"context"
	"errors"
)

type tokenCtxKey struct{}

// WithToken stashes the request's bearer token for ContextTokens to pick up
// when the client calls upstream on that request's behalf.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

// ContextTokens relays the bearer token carried by the request context. The
// service holds no credentials of its own.
type ContextTokens struct{}

func (ContextTokens) Token(ctx context.Context, _ string) (string, error) {
	token, ok := ctx.Value(tokenCtxKey{}).(string)
	if !ok || token == "" {
		return "", errors.New("no bearer token in context")
	}
	return token, nil
}
