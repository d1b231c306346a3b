package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/drperfidious/netstatus/internal/domain"
	"github.com/drperfidious/netstatus/internal/history"
	"github.com/drperfidious/netstatus/internal/httpapi/middleware"
	"github.com/drperfidious/netstatus/internal/stats"
)

// recentLimit caps the tabular view at the 50 most recent checks.
const recentLimit = 50

// Server exposes the monitor's read queries over HTTP. It never writes to
// the history store.
type Server struct {
	Logger  *zap.Logger
	History *history.Store
}

func NewServer(l *zap.Logger, store *history.Store) *Server {
	return &Server{Logger: l, History: store}
}

func (s *Server) Router(ratePerMin, rateBurst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(middleware.RateLimit(ratePerMin, rateBurst))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", s.handleDashboard)
	r.Get("/api/status", s.handleStatus)
	r.Get("/api/stats", s.handleStats)
	r.Get("/api/checks/recent", s.handleRecent)
	r.Get("/api/chart", s.handleChart)

	return r
}

type statusResponse struct {
	State     domain.ConnectivityState `json:"state"`
	CheckedAt *time.Time               `json:"checked_at,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{State: domain.StateUnknown}
	if rec, ok := s.History.Latest(); ok {
		resp.State = rec.State
		ts := rec.Timestamp
		resp.CheckedAt = &ts
	}
	writeJSON(w, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stats.Compute(s.History.Snapshot()))
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := recentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, `{"error":"bad limit"}`, http.StatusBadRequest)
			return
		}
		if n < limit {
			limit = n
		}
	}
	recs := s.History.Recent(limit)
	if recs == nil {
		recs = []domain.CheckRecord{}
	}
	writeJSON(w, recs)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stats.ChartSeries(s.History.Snapshot()))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
