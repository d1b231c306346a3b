package httpapi

import (
	_ "embed"
	"net/http"
)

// The dashboard is a single self-contained page that polls the JSON API.

//go:embed dashboard.html
var dashboardHTML []byte

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(dashboardHTML)
}
