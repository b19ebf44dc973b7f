package testutil

import (
	"context"
	"net/http"

	"ninhub/pkg/domain"
	"ninhub/pkg/requestcontext"
)

// WithActor adds an authenticated actor to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithActor(req *http.Request, actorID string, role domain.Role) *http.Request {
	ctx := requestcontext.WithActor(req.Context(), domain.Actor{ID: domain.ActorID(actorID), Role: role})
	return req.WithContext(ctx)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
