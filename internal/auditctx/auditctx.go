package auditctx

import "context"

// Actor captures contextual information about the authenticated principal that
// initiated a request. It travels down into service layers so entity mutations
// can be attributed without reaching back into HTTP state.
type Actor struct {
	UserID    string
	Role      string
	IPAddress string
	UserAgent string
}

// IsAdmin reports whether the actor carries the elevated role.
func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}

type actorContextKey struct{}

// WithActor injects actor metadata into the supplied context, returning a
// derived context that callers pass into entity-mutating operations.
func WithActor(ctx context.Context, actor Actor) context.Context {
	if ctx == nil {
		return context.WithValue(context.Background(), actorContextKey{}, actor)
	}
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// FromContext extracts previously stored actor metadata from the context.
func FromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}
