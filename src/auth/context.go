package auth

import (
	"context"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// Principal is the caller behind an authenticated request.
type Principal struct {
	Scheme string
}

func GetPrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(*Principal)
	return p, ok
}
