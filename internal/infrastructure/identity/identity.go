// Package identity resolves the user recorded on audit logs and snapshots.
package identity

import (
	"context"
	"strings"
)

type contextKey struct{}

// WithUser returns a copy of ctx carrying userID.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserFromContext returns the user stored by WithUser.
func UserFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// Provider implements usecase.IdentityProvider. The user on the context wins
// over the configured fallback.
type Provider struct {
	fallback string
}

// NewProvider creates a Provider that falls back to user.
func NewProvider(user string) *Provider {
	user = strings.TrimSpace(user)
	if user == "" {
		user = "admin"
	}
	return &Provider{fallback: user}
}

// CurrentUserID returns the acting user.
func (p *Provider) CurrentUserID(ctx context.Context) string {
	if id, ok := UserFromContext(ctx); ok {
		return id
	}
	return p.fallback
}
