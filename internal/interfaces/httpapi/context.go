package httpapi

import (
	"context"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/user"
)

type contextKey string

const principalContextKey contextKey = "principal"

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// principalFromContext never fails; routes without identity headers see the
// zero principal and the usecase decides whether that is allowed.
func principalFromContext(ctx context.Context) user.Principal {
	p, _ := ctx.Value(principalContextKey).(user.Principal)
	return p
}
