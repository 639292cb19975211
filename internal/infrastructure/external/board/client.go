package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/johnquangdev/actionsync/pkg/config"
)

// Client is a minimal client for the external work-item board API. Each
// integration credential gets its own client instance.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewClient creates a board client for one credential
func NewClient(cfg *config.BoardConfig, token string) *Client {
	base := "https://api.board.example.com"
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	}
	return &Client{
		token:   token,
		baseURL: base,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Board is one board visible to the credential
type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateItemRequest creates one work item on a board. ColumnValues maps
// column ids to provider-defined encoded values; unknown columns must be
// omitted, never guessed.
type CreateItemRequest struct {
	BoardID      string                 `json:"board_id"`
	ItemName     string                 `json:"item_name"`
	ColumnValues map[string]interface{} `json:"column_values,omitempty"`
}

// CreateItemResponse is the created remote item handle
type CreateItemResponse struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// ListBoards returns the boards visible to the credential. Used as the
// reachability and board-visibility check before processing begins.
func (c *Client) ListBoards(ctx context.Context) ([]Board, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/boards", nil)
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
		return nil, fmt.Errorf("board API returned status %d", resp.StatusCode)
	}

	var body struct {
		Boards []Board `json:"boards"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Boards, nil
}

// CreateItem creates one item on a board
func (c *Client) CreateItem(ctx context.Context, reqBody *CreateItemRequest) (*CreateItemResponse, error) {
	if reqBody.BoardID == "" {
		return nil, fmt.Errorf("board id is required")
	}
	if reqBody.ItemName == "" {
		return nil, fmt.Errorf("item name is required")
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/boards/%s/items", c.baseURL, url.PathEscape(reqBody.BoardID))
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("board API returned status %d", resp.StatusCode)
	}

	var created CreateItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, fmt.Errorf("board API returned no item id")
	}
	return &created, nil
}
