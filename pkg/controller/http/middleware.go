package http

import (
	"context"
	"net/http"

	"github.com/grc-lab/riskreg/pkg/domain/model"
)

// Header names for caller attribution. Authentication itself is the
// surrounding application's concern; the register only needs an identity to
// attribute audit entries to.
const (
	headerUserID   = "X-Riskreg-User"
	headerUserName = "X-Riskreg-User-Name"
)

type ctxActorKey struct{}

// actorMiddleware extracts the caller identity from request headers, falling
// back to the anonymous actor
func actorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := model.AnonymousActor()
		if id := r.Header.Get(headerUserID); id != "" {
			actor = model.Actor{ID: id, Name: r.Header.Get(headerUserName)}
			if actor.Name == "" {
				actor.Name = id
			}
		}

		ctx := context.WithValue(r.Context(), ctxActorKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actorFrom(ctx context.Context) model.Actor {
	if actor, ok := ctx.Value(ctxActorKey{}).(model.Actor); ok {
		return actor
	}
	return model.AnonymousActor()
}
