package odds

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalsEvent(id string, books ...Bookmaker) Event {
	return Event{
		ID:         id,
		SportKey:   SportNCAAB,
		HomeTeam:   "Kentucky Wildcats",
		AwayTeam:   "Tennessee Volunteers",
		Bookmakers: books,
	}
}

func totalsBook(key string, line float64) Bookmaker {
	return Bookmaker{
		Key: key,
		Markets: []Market{
			{
				Key: "totals",
				Outcomes: []Outcome{
					{Name: "Over", Price: -110, Point: line},
					{Name: "Under", Price: -110, Point: line},
				},
			},
		},
	}
}

func TestExtractTotalLinePrefersBookmaker(t *testing.T) {
	event := totalsEvent("evt1",
		totalsBook("fanduel", 148.5),
		totalsBook("draftkings", 149.5),
	)

	line, ok := ExtractTotalLine(event, DefaultBookmaker)
	require.True(t, ok)
	assert.Equal(t, "draftkings", line.Bookmaker)
	assert.Equal(t, 149.5, line.Line)
	assert.Equal(t, "Kentucky Wildcats", line.HomeTeam)
}

func TestExtractTotalLineFallsBackToAnyBook(t *testing.T) {
	event := totalsEvent("evt2", totalsBook("fanduel", 152.0))

	line, ok := ExtractTotalLine(event, DefaultBookmaker)
	require.True(t, ok)
	assert.Equal(t, "fanduel", line.Bookmaker)
	assert.Equal(t, 152.0, line.Line)
}

func TestExtractTotalLineNoTotalsMarket(t *testing.T) {
	event := totalsEvent("evt3", Bookmaker{
		Key:     "draftkings",
		Markets: []Market{{Key: "h2h", Outcomes: []Outcome{{Name: "Kentucky Wildcats", Price: -200}}}},
	})

	_, ok := ExtractTotalLine(event, DefaultBookmaker)
	assert.False(t, ok)
}

func TestExtractAllTotals(t *testing.T) {
	events := []Event{
		totalsEvent("evt1", totalsBook("draftkings", 140.5)),
		totalsEvent("evt2"),
		totalsEvent("evt3", totalsBook("betmgm", 155.5)),
	}

	lines := ExtractAllTotals(events, DefaultBookmaker)
	require.Len(t, lines, 2)
	assert.Equal(t, "evt1", lines[0].EventID)
	assert.Equal(t, "evt3", lines[1].EventID)
}

func TestFetchTotals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "totals", r.URL.Query().Get("markets"))
		json.NewEncoder(w).Encode([]Event{totalsEvent("evt1", totalsBook("draftkings", 145.5))})
	}))
	defer srv.Close()

	client := NewClient("test-key")
	client.baseURL = srv.URL

	events, err := client.FetchTotals(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "evt1", events[0].ID)
}

func TestFetchTotalsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad-key")
	client.baseURL = srv.URL

	_, err := client.FetchTotals(context.Background())
	assert.Error(t, err)
}
