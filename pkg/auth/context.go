package auth

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const actorKey contextKey = "actor_id"

// ErrActorNotFound is returned when no actor identity exists in the request
// context. Handlers should return 401 when this error occurs.
var ErrActorNotFound = errors.New("actor identity not found in context")

// ActorFromCtx extracts the authenticated party identity from the request
// context. Every committed transition is attributed to this identity; the
// ledger trusts it absolutely — authenticating parties is the identity
// provider's job, not the engine's.
func ActorFromCtx(ctx context.Context) (string, error) {
	actor, ok := ctx.Value(actorKey).(string)
	if !ok || actor == "" {
		return "", ErrActorNotFound
	}
	return actor, nil
}

// WithActor returns a new context with the given actor identity attached.
// Used by authentication middleware after validating the session.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}
