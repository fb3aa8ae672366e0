package api

import (
	"errors"
	"net/http"

	"github.com/jmcleod/authgate/store"
)

// LoginForm handles GET /. It always renders the login form,
// regardless of session state.
func (a *API) LoginForm(w http.ResponseWriter, r *http.Request) {
	a.renderLogin(w, "")
}

// Login handles POST /. It validates the submitted credentials against
// the store; on a match it sets the session identity and redirects to
// the dashboard, otherwise it re-renders the form with a generic error
// category. The session is never mutated on a failed attempt.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderLogin(w, msgInvalidCredentials)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := store.Authenticate(r.Context(), a.store, username, password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidCredentials):
			a.logger.Info("login rejected", "username", username)
			a.renderLogin(w, msgInvalidCredentials)
		case errors.Is(err, store.ErrUnavailable):
			a.logger.Error("credential store unavailable", "error", err)
			a.renderLogin(w, msgStoreUnavailable)
		default:
			a.logger.Error("credential lookup failed", "error", err)
			a.renderLogin(w, msgQueryFailure)
		}
		return
	}

	if err := a.sessions.SetIdentity(w, r, user.Username); err != nil {
		a.logger.Error("establishing session", "error", err)
		a.renderLogin(w, msgQueryFailure)
		return
	}
	a.logger.Info("login succeeded", "username", user.Username)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout handles GET /logout. Clearing an already-empty session is a
// no-op; the response is always a redirect to the login form.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.ClearIdentity(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}
