package meetingsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/johnquangdev/actionsync/pkg/config"
)

// Transcript is one session returned by the meeting-notes provider
type Transcript struct {
	SessionID string    `json:"session_id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
}

// Client is a minimal client for the transcript provider API. The provider
// returns recent sessions most-recent-first; there is no reliable
// server-side date filter, so callers treat the returned page as the
// complete candidate set for the window.
type Client struct {
	token   string
	baseURL string
	limit   int
	client  *http.Client
}

// NewClient creates a provider client for one credential
func NewClient(cfg *config.SourceConfig, token string) *Client {
	base := "https://api.meetingnotes.example.com"
	limit := 50
	if cfg != nil {
		if cfg.BaseURL != "" {
			base = cfg.BaseURL
		}
		if cfg.PageLimit > 0 {
			limit = cfg.PageLimit
		}
	}
	return &Client{
		token:   token,
		baseURL: base,
		limit:   limit,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ListRecentTranscripts fetches the provider's recent transcript page.
// The since parameter is advisory: providers that ignore it still return a
// bounded most-recent-first page.
func (c *Client) ListRecentTranscripts(ctx context.Context, since time.Time) ([]Transcript, error) {
	q := url.Values{}
	q.Set("since", since.UTC().Format(time.RFC3339))
	q.Set("limit", strconv.Itoa(c.limit))

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/transcripts?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("transcript provider returned status %d", resp.StatusCode)
	}

	var body struct {
		Transcripts []Transcript `json:"transcripts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Transcripts, nil
}
