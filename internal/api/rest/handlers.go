package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/service"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/store"
)

// LiveState supplies the latest poll cycle's evaluations
type LiveState interface {
	LatestUpdates() []*ingest.GameUpdate
	GetStatus() map[string]interface{}
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db      *store.Database
	reports *service.ReportService
	live    LiveState
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, live LiveState) *Handler {
	return &Handler{
		db:      db,
		reports: service.NewReportService(db),
		live:    live,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]interface{}{
		"status":    status,
		"service":   "underwatch",
		"scheduler": h.live.GetStatus(),
	})
}

// liveGameView is the wire shape for one game on the live endpoint
type liveGameView struct {
	GameID     string      `json:"game_id"`
	HomeTeam   string      `json:"home_team"`
	AwayTeam   string      `json:"away_team"`
	Venue      string      `json:"venue,omitempty"`
	Evaluation interface{} `json:"evaluation"`
}

// GetLiveGames returns the latest evaluation for every tracked game
func (h *Handler) GetLiveGames(w http.ResponseWriter, r *http.Request) {
	updates := h.live.LatestUpdates()

	liveOnly := r.URL.Query().Get("all") != "true"

	views := make([]liveGameView, 0, len(updates))
	for _, update := range updates {
		if liveOnly && update.Game.Status != "in_progress" {
			continue
		}
		views = append(views, liveGameView{
			GameID:     update.Game.GameID,
			HomeTeam:   update.Game.Home.DisplayName,
			AwayTeam:   update.Game.Away.DisplayName,
			Venue:      update.Game.Venue,
			Evaluation: update.Evaluation,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(views),
		"games": views,
	})
}

// GetRecentTriggers returns triggers fired within the lookback window
func (h *Handler) GetRecentTriggers(w http.ResponseWriter, r *http.Request) {
	hours := queryInt(r, "hours", 0)
	limit := queryInt(r, "limit", 0)

	events, err := h.reports.RecentTriggers(r.Context(), hours, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch recent triggers", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(events),
		"triggers": events,
	})
}

// GetGameTriggers returns every trigger fired for a single game
func (h *Handler) GetGameTriggers(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]

	events, err := h.reports.TriggersForGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch triggers", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id":  gameID,
		"count":    len(events),
		"triggers": events,
	})
}

// GetGameSnapshots returns a game's poll history
func (h *Handler) GetGameSnapshots(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]
	limit := queryInt(r, "limit", 0)

	snaps, err := h.reports.SnapshotsForGame(r.Context(), gameID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch snapshots", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id":   gameID,
		"count":     len(snaps),
		"snapshots": snaps,
	})
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	respondJSON(w, status, response)
}
