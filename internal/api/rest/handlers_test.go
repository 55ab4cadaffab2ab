package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest/espn"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/pace"
)

type fakeLiveState struct {
	updates []*ingest.GameUpdate
}

func (f *fakeLiveState) LatestUpdates() []*ingest.GameUpdate {
	return f.updates
}

func (f *fakeLiveState) GetStatus() map[string]interface{} {
	return map[string]interface{}{"live_polling_enabled": true}
}

func sampleUpdates() []*ingest.GameUpdate {
	return []*ingest.GameUpdate{
		{
			Game: &espn.ScoreboardGame{
				GameID: "401712345",
				Status: "in_progress",
				Home:   espn.TeamSide{DisplayName: "Kentucky Wildcats"},
				Away:   espn.TeamSide{DisplayName: "Tennessee Volunteers"},
				Venue:  "Rupp Arena",
			},
			Evaluation: pace.Evaluation{
				GameID:  "401712345",
				Status:  pace.StatusInProgress,
				Trigger: pace.TriggerUnder,
			},
		},
		{
			Game: &espn.ScoreboardGame{
				GameID: "401799999",
				Status: "scheduled",
				Home:   espn.TeamSide{DisplayName: "Duke Blue Devils"},
				Away:   espn.TeamSide{DisplayName: "North Carolina Tar Heels"},
			},
			Evaluation: pace.Evaluation{
				GameID: "401799999",
				Status: pace.StatusScheduled,
			},
		},
	}
}

func TestGetLiveGamesFiltersToLive(t *testing.T) {
	handler := &Handler{live: &fakeLiveState{updates: sampleUpdates()}}

	req := httptest.NewRequest("GET", "/api/v1/games/live", nil)
	rec := httptest.NewRecorder()

	handler.GetLiveGames(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
		Games []struct {
			GameID   string `json:"game_id"`
			HomeTeam string `json:"home_team"`
		} `json:"games"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "401712345", body.Games[0].GameID)
	assert.Equal(t, "Kentucky Wildcats", body.Games[0].HomeTeam)
}

func TestGetLiveGamesAllParam(t *testing.T) {
	handler := &Handler{live: &fakeLiveState{updates: sampleUpdates()}}

	req := httptest.NewRequest("GET", "/api/v1/games/live?all=true", nil)
	rec := httptest.NewRecorder()

	handler.GetLiveGames(rec, req)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
}

func TestGetLiveGamesEmpty(t *testing.T) {
	handler := &Handler{live: &fakeLiveState{}}

	req := httptest.NewRequest("GET", "/api/v1/games/live", nil)
	rec := httptest.NewRecorder()

	handler.GetLiveGames(rec, req)

	var body struct {
		Count int             `json:"count"`
		Games json.RawMessage `json:"games"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Count)
	// Renders an empty array, not null
	assert.Equal(t, "[]", string(body.Games))
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?limit=25&bad=xyz", nil)

	assert.Equal(t, 25, queryInt(req, "limit", 0))
	assert.Equal(t, 7, queryInt(req, "bad", 7))
	assert.Equal(t, 7, queryInt(req, "missing", 7))
}

func TestRecoveryMiddleware(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest("GET", "/panic", nil)
	rec := httptest.NewRecorder()

	RecoveryMiddleware(panicky).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight should not reach handler")
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/games/live", nil)
	rec := httptest.NewRecorder()

	CORSMiddleware(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
