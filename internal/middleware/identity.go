package middleware

import (
	"net/http"

	"github.com/kawafuchieirin/team-workspace/internal/ctxkeys"
)

// Identity attaches a fixed user id to every request.
// There is no authentication; every caller acts as userID.
func Identity(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
