package meetingsource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/johnquangdev/actionsync/pkg/config"
)

func TestListRecentTranscripts_Success(t *testing.T) {
	// Mock provider server
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("unexpected auth header %q", got)
		}
		if r.URL.Query().Get("since") == "" {
			t.Fatal("since parameter missing")
		}
		if got := r.URL.Query().Get("limit"); got != "25" {
			t.Fatalf("unexpected limit %q", got)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"transcripts": []map[string]interface{}{
				{"session_id": "sess-1", "title": "Standup", "text": "notes", "date": "2026-03-04T09:00:00Z"},
			},
		})
	}))
	defer ts.Close()

	client := NewClient(&config.SourceConfig{BaseURL: ts.URL, PageLimit: 25}, "test-token")

	transcripts, err := client.ListRecentTranscripts(context.Background(), time.Now().AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if len(transcripts) != 1 {
		t.Fatalf("expected 1 transcript, got %d", len(transcripts))
	}
	if transcripts[0].SessionID != "sess-1" || transcripts[0].Title != "Standup" {
		t.Fatalf("unexpected transcript %+v", transcripts[0])
	}
}

func TestListRecentTranscripts_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewClient(&config.SourceConfig{BaseURL: ts.URL}, "bad-token")

	if _, err := client.ListRecentTranscripts(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error for 401 response")
	}
}
