package httpapi

import (
	"context"

	"github.com/pitchside/leagueday/internal/domain/user"
)

// principalKey is unexported so only this package can attach a principal.
type principalKey struct{}

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok
}
