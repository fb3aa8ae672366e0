package api

import (
	"context"
	"net/http"
)

type contextKey int

const identityKey contextKey = iota

// RequireIdentity is middleware that gates a route on a valid session
// identity. Requests without one are silently redirected to the login
// form; no error is surfaced.
func (a *API) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.sessions.Identity(r)
		if !ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Dashboard handles GET /dashboard, the protected page. The identity
// established by RequireIdentity is passed into the rendered view.
func (a *API) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := identityFromContext(r.Context())
	a.renderDashboard(w, user)
}

func identityFromContext(ctx context.Context) string {
	user, _ := ctx.Value(identityKey).(string)
	return user
}
