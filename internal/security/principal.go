package security

import (
	"context"

	"project-tracker/internal/domain"
	"project-tracker/internal/errors"
)

type principalKey struct{}

// WithPrincipal attaches the authenticated principal to ctx
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal attached to ctx, if any
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok && p.UserID != ""
}

// ContextResolver resolves the current user from the request context
type ContextResolver struct{}

// NewContextResolver creates a resolver for principals stored on a context.
func NewContextResolver() *ContextResolver {
	return &ContextResolver{}
}

func (r *ContextResolver) CurrentUserID(ctx context.Context) (string, error) {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return "", errors.NewUnauthenticatedError("authentication required")
	}
	return p.UserID, nil
}
