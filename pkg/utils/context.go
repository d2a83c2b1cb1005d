package utils

import (
	"context"

	"feedback-portal/internal/policy"
)

type contextKey string

const (
	ActorKey contextKey = "actor"
	TokenKey contextKey = "token"
)

// SetActorContext stores the resolved caller for the rest of the request.
func SetActorContext(ctx context.Context, actor policy.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// GetActorFromContext returns the caller, or the anonymous actor when the
// request carries no valid session.
func GetActorFromContext(ctx context.Context) policy.Actor {
	actor, ok := ctx.Value(ActorKey).(policy.Actor)
	if !ok {
		return policy.Anonymous()
	}
	return actor
}

// GetTokenFromContext mendapatkan token dari context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

// SetTokenContext menambahkan token ke context
func SetTokenContext(ctx context.Context, token string) context.Context {
	ctx = context.WithValue(ctx, TokenKey, token)
	return ctx
}
