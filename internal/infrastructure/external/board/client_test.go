package board

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnquangdev/actionsync/pkg/config"
)

func TestCreateItem_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v1/boards/board-7/items" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var payload CreateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.ItemName != "Ship the release notes" {
			t.Fatalf("unexpected item name %q", payload.ItemName)
		}
		if payload.ColumnValues["col_prio"] != "High" {
			t.Fatalf("unexpected column values %+v", payload.ColumnValues)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"id": "item-42", "url": "https://board/item-42"})
	}))
	defer ts.Close()

	client := NewClient(&config.BoardConfig{BaseURL: ts.URL}, "test-token")

	created, err := client.CreateItem(context.Background(), &CreateItemRequest{
		BoardID:      "board-7",
		ItemName:     "Ship the release notes",
		ColumnValues: map[string]interface{}{"col_prio": "High"},
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if created.ID != "item-42" || created.URL != "https://board/item-42" {
		t.Fatalf("unexpected response %+v", created)
	}
}

func TestCreateItem_Validation(t *testing.T) {
	client := NewClient(nil, "token")

	if _, err := client.CreateItem(context.Background(), &CreateItemRequest{ItemName: "x"}); err == nil {
		t.Fatal("expected error for missing board id")
	}
	if _, err := client.CreateItem(context.Background(), &CreateItemRequest{BoardID: "b"}); err == nil {
		t.Fatal("expected error for missing item name")
	}
}

func TestListBoards_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer ts.Close()

	client := NewClient(&config.BoardConfig{BaseURL: ts.URL}, "bad-token")
	if _, err := client.ListBoards(context.Background()); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
