package utils

import (
	"context"

	"fleet-rental/pkg/contextkeys"
	apperrors "fleet-rental/pkg/errors"
)

// GetActorFromCtx returns the authenticated username placed by the auth middleware.
func GetActorFromCtx(ctx context.Context) (string, error) {
	actor, ok := ctx.Value(contextkeys.UsernameKey).(string)
	if !ok || actor == "" {
		return "", apperrors.ErrActorNotFound
	}
	return actor, nil
}

func GetRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(contextkeys.UserRoleKey).(string)
	return role
}

func WithActor(ctx context.Context, username, role string) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UsernameKey, username)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}
