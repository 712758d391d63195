package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/pkg/enums"
)

type actorKey struct{}

// Actor is the authenticated caller, seeded into the request context
// by Auth.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
	JTI    string
}

func withActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the authenticated caller, if any.
func ActorFrom(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}
