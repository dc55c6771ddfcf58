// Package auth provides HTTP handlers and middleware for account
// registration, credential exchange, and bearer-token authorization.
package auth

import (
	"context"

	"newswire/internal/domain/entity"
)

type ctxKey string

const ctxAccount ctxKey = "account"

// WithAccount returns a context carrying the authenticated account.
func WithAccount(ctx context.Context, account *entity.Account) context.Context {
	return context.WithValue(ctx, ctxAccount, account)
}

// AccountFromContext returns the authenticated account, or nil when the
// request did not pass through the Authz middleware.
func AccountFromContext(ctx context.Context) *entity.Account {
	if account, ok := ctx.Value(ctxAccount).(*entity.Account); ok {
		return account
	}
	return nil
}
