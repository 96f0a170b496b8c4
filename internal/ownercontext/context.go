// Package ownercontext carries the authenticated owner (tenant) identity
// through request contexts. Authentication itself happens upstream; this
// package only transports the opaque identity it produced.
package ownercontext

import "context"

type contextKey string

const ownerIDKey contextKey = "owner_id"

// WithOwnerID attaches the authenticated owner ID to the context.
func WithOwnerID(ctx context.Context, ownerID int64) context.Context {
	if ownerID == 0 {
		return ctx
	}
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

// OwnerIDFromContext extracts the authenticated owner ID, if present.
func OwnerIDFromContext(ctx context.Context) (int64, bool) {
	value, ok := ctx.Value(ownerIDKey).(int64)
	return value, ok && value != 0
}
