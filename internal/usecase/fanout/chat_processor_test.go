package fanout

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/slack-go/slack"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

type fakeChatAPI struct {
	authErr  error
	postErr  error
	posts    int
	channels []string
}

func (f *fakeChatAPI) AuthTestContext(_ context.Context) (*slack.AuthTestResponse, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return &slack.AuthTestResponse{Team: "demo"}, nil
}

func (f *fakeChatAPI) PostMessageContext(_ context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	f.posts++
	f.channels = append(f.channels, channelID)
	if f.postErr != nil {
		return "", "", f.postErr
	}
	return channelID, "123.456", nil
}

func testItems(n int) []*entities.ParsedActionItem {
	items := make([]*entities.ParsedActionItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, &entities.ParsedActionItem{Text: fmt.Sprintf("task number %d", i)})
	}
	return items
}

func TestChatProcessor_SingleDigestPost(t *testing.T) {
	api := &fakeChatAPI{}
	p := NewChatProcessor(api, "C123", "standup", nil)

	due := time.Now().Add(24 * time.Hour)
	result := p.ProcessActionItems(context.Background(), []*entities.ParsedActionItem{
		{Text: "review the budget", Assignee: "Sarah", Priority: "urgent", DueDate: &due},
		{Text: "ship the hotfix"},
	})

	if !result.Success {
		t.Fatalf("expected success, errors: %v", result.Errors)
	}
	if api.posts != 1 {
		t.Fatalf("digest must be a single post, got %d", api.posts)
	}
	if api.channels[0] != "C123" {
		t.Fatalf("posted to wrong channel %q", api.channels[0])
	}
	if result.ProcessedCount != 2 {
		t.Fatalf("batch counts as a unit: got %d", result.ProcessedCount)
	}
}

func TestChatProcessor_PostFailureFailsWholeBatch(t *testing.T) {
	api := &fakeChatAPI{postErr: fmt.Errorf("channel_not_found")}
	p := NewChatProcessor(api, "C123", "standup", nil)

	result := p.ProcessActionItems(context.Background(), testItems(3))
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ProcessedCount != 0 {
		t.Fatalf("no item counts as processed on post failure, got %d", result.ProcessedCount)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 batch error, got %v", result.Errors)
	}
}

func TestChatProcessor_EmptyBatchPostsNothing(t *testing.T) {
	api := &fakeChatAPI{}
	p := NewChatProcessor(api, "C123", "standup", nil)

	result := p.ProcessActionItems(context.Background(), []*entities.ParsedActionItem{{Text: "  "}})
	if !result.Success {
		t.Fatal("empty batch is a success")
	}
	if api.posts != 0 {
		t.Fatalf("nothing should be posted, got %d posts", api.posts)
	}
}

func TestChatProcessor_DigestFoldsOverflow(t *testing.T) {
	p := NewChatProcessor(&fakeChatAPI{}, "C123", "standup", nil)
	items := testItems(maxDigestLines + 5)

	blocks := p.digestBlocks(items)
	// header + section + overflow context
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	ctxBlock, ok := blocks[2].(*slack.ContextBlock)
	if !ok {
		t.Fatalf("expected context block, got %T", blocks[2])
	}
	text, ok := ctxBlock.ContextElements.Elements[0].(*slack.TextBlockObject)
	if !ok || text.Text != "+5 more" {
		t.Fatalf("expected overflow footer, got %+v", ctxBlock.ContextElements.Elements[0])
	}
}

func TestChatProcessor_DigestLine(t *testing.T) {
	p := NewChatProcessor(&fakeChatAPI{}, "C123", "standup", nil)
	due := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	line := p.digestLine(&entities.ParsedActionItem{
		Text:     "review the budget",
		Assignee: "Sarah",
		Priority: "urgent",
		DueDate:  &due,
	})
	for _, want := range []string{"🔴", "Review the budget", "*Sarah*", "due Mar 6"} {
		if !strings.Contains(line, want) {
			t.Fatalf("digest line missing %q: %q", want, line)
		}
	}
}

func TestChatProcessor_Status(t *testing.T) {
	ok := NewChatProcessor(&fakeChatAPI{}, "C123", "standup", nil)
	if st := ok.Status(context.Background()); !st.Available {
		t.Fatalf("expected available, got %q", st.Message)
	}

	bad := NewChatProcessor(&fakeChatAPI{authErr: fmt.Errorf("invalid_auth")}, "C123", "standup", nil)
	if st := bad.Status(context.Background()); st.Available {
		t.Fatal("expected unavailable on auth failure")
	}
}

func TestChatProcessor_ValidateConfig(t *testing.T) {
	missing := NewChatProcessor(&fakeChatAPI{}, "", "", nil)
	if v := missing.ValidateConfig(); v.Valid {
		t.Fatal("missing channel must be invalid")
	}
	if v := NewChatProcessor(&fakeChatAPI{}, "C123", "standup", nil).ValidateConfig(); !v.Valid {
		t.Fatalf("unexpected config errors: %v", v.Errors)
	}
}
