package shared

import (
	"context"

	"github.com/google/uuid"
)

// Identity carries the authenticated caller derived from an access token.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	FullName string
}

type identityContextKey struct{}

// ContextWithIdentity stores the identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the identity from context. The second return
// reports whether the request carried a valid access token.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
