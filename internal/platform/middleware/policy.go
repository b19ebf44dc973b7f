// Package middleware holds the HTTP middleware that depends on internal
// packages, keeping pkg/platform/middleware free of them.
package middleware

import (
	"log/slog"
	"net/http"

	"ninhub/internal/policy"
	"ninhub/pkg/platform/httputil"
	"ninhub/pkg/requestcontext"
)

// RequireOperation consults the access policy once before dispatch. It must
// run after the auth middleware has placed the actor in the context.
func RequireOperation(op policy.Operation, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actor := requestcontext.Actor(ctx)
			if err := policy.Require(actor, op); err != nil {
				if logger != nil {
					logger.WarnContext(ctx, "operation denied",
						"request_id", requestcontext.RequestID(ctx),
						"actor_id", actor.ID,
						"role", actor.Role,
						"operation", op,
					)
				}
				httputil.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
