package auth

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

type ctxKey struct{}

// WithIdentity returns a child context carrying id.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFrom returns the identity attached by the resolver, if any.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(models.Identity)
	return id, ok
}

// UserIDFrom is a shortcut for handlers that only need the owner id.
func UserIDFrom(ctx context.Context) (int64, bool) {
	id, ok := IdentityFrom(ctx)
	if !ok {
		return 0, false
	}
	return id.UserID, true
}

// IdentityFromUser maps a stored user onto the fields the request pipeline needs.
func IdentityFromUser(u *models.User) models.Identity {
	return models.Identity{
		UserID:       u.ID,
		UserName:     u.UserName,
		PasswordHash: u.PasswordHash,
	}
}
