package api

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// User-facing error categories. Store-level detail never appears here;
// it goes to the structured log instead.
const (
	msgStoreUnavailable   = "Database connection failed"
	msgQueryFailure       = "Database error"
	msgInvalidCredentials = "Invalid credentials"
)

type loginPage struct {
	Error string
}

type dashboardPage struct {
	User string
}

func (a *API) renderLogin(w http.ResponseWriter, errMsg string) {
	a.renderPage(w, "login.html", loginPage{Error: errMsg})
}

func (a *API) renderDashboard(w http.ResponseWriter, user string) {
	a.renderPage(w, "dashboard.html", dashboardPage{User: user})
}

func (a *API) renderPage(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		a.logger.Error("rendering page", "template", name, "error", err)
	}
}
