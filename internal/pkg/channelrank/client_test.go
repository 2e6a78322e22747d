package channelrank

import (
	"CastHub/internal/api/config"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(ts *httptest.Server) *Client {
	return NewClient(config.ChannelRankConfig{BaseURL: ts.URL, Timeout: 2})
}

func TestGetContributionsParsesRecords(t *testing.T) {
	var gotDate string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contributions":[{"channel_id":"dev","contribution":4.5}]}`))
	}))
	defer ts.Close()

	records, err := newTestClient(ts).GetContributions(context.Background(), "alice", "monthly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].ChannelID != "dev" || records[0].Contribution != 4.5 {
		t.Fatalf("unexpected records %+v", records)
	}
	if gotDate == "" {
		t.Fatalf("expected date query param")
	}
}

func TestGetContributionsTreats404AsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	records, err := newTestClient(ts).GetContributions(context.Background(), "alice", "monthly")
	if err != nil {
		t.Fatalf("404 must not be an error, got: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty records, got %+v", records)
	}
}

func TestGetContributionsFailsOnServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	if _, err := newTestClient(ts).GetContributions(context.Background(), "alice", "monthly"); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}
