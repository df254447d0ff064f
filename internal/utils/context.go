package utils

import (
	"context"
	"errors"
)

type ctxKey string

// WalletCtxKey is the context key under which the auth middleware stores
// the authenticated wallet address.
const WalletCtxKey ctxKey = "wallet_address"

// ErrNoWalletInContext is returned when a handler expects an
// authenticated wallet address but none was attached to the context.
var ErrNoWalletInContext = errors.New("no wallet address in context")

// WalletFromContext extracts the authenticated wallet address stored by
// the auth middleware.
func WalletFromContext(ctx context.Context) (string, error) {
	wallet, ok := ctx.Value(WalletCtxKey).(string)
	if !ok || wallet == "" {
		return "", ErrNoWalletInContext
	}
	return wallet, nil
}
