package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const actorKey ctxKey = "actor"

// ActorContext captures the caller's identity from the X-Actor header and
// stores it in the request context. An absent header leaves the request
// untouched; handlers that record approvals fall back to an empty actor.
func ActorContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor := strings.TrimSpace(r.Header.Get("X-Actor")); actor != "" {
			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetActor(ctx context.Context) string {
	v := ctx.Value(actorKey)
	if v == nil {
		return ""
	}
	actor, _ := v.(string)
	return actor
}
