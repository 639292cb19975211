package fanout

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

// maxDigestLines caps how many items are rendered in a chat digest
// before the remainder is folded into a footer line
const maxDigestLines = 10

// ChatAPI is the slice of the Slack client the processor needs.
// *slack.Client satisfies it.
type ChatAPI interface {
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// ChatProcessor posts the extracted action items to a chat channel as a
// single digest message. The batch is a unit: either the digest posts
// and every item counts as processed, or nothing does.
type ChatProcessor struct {
	client      ChatAPI
	channelID   string
	channelName string
	logger      *zap.Logger
}

// NewChatProcessor creates a chat notification processor
func NewChatProcessor(client ChatAPI, channelID, channelName string, logger *zap.Logger) *ChatProcessor {
	return &ChatProcessor{
		client:      client,
		channelID:   channelID,
		channelName: channelName,
		logger:      logger,
	}
}

// Name implements Processor
func (p *ChatProcessor) Name() string { return "chat_notification" }

// ValidateConfig implements Processor
func (p *ChatProcessor) ValidateConfig() ConfigValidation {
	var errs []string
	if p.client == nil {
		errs = append(errs, "chat client is not configured")
	}
	if p.channelID == "" {
		errs = append(errs, "no channel is configured for this notification")
	}
	return ConfigValidation{Valid: len(errs) == 0, Errors: errs}
}

// Status implements Processor
func (p *ChatProcessor) Status(ctx context.Context) Status {
	if p.client == nil {
		return Status{Available: false, Message: "chat client is not configured"}
	}
	if _, err := p.client.AuthTestContext(ctx); err != nil {
		return Status{Available: false, Message: fmt.Sprintf("chat auth failed: %v", err)}
	}
	return Status{Available: true}
}

// ProcessActionItems implements Processor
func (p *ChatProcessor) ProcessActionItems(ctx context.Context, items []*entities.ParsedActionItem) *Result {
	result := &Result{Processor: p.Name()}

	valid := make([]*entities.ParsedActionItem, 0, len(items))
	for _, item := range items {
		if item.IsValid() {
			valid = append(valid, item)
		}
	}
	if len(valid) == 0 {
		result.Success = true
		return result
	}

	blocks := p.digestBlocks(valid)
	_, _, err := p.client.PostMessageContext(ctx, p.channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(p.fallbackText(valid), false),
	)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("post digest to %s: %v", p.channelID, err))
		return result
	}

	if p.logger != nil {
		p.logger.Info("✅ posted action item digest",
			zap.String("channel", p.channelID),
			zap.Int("items", len(valid)))
	}
	result.Success = true
	result.ProcessedCount = len(valid)
	return result
}

// digestBlocks renders the batch as one block-kit message
func (p *ChatProcessor) digestBlocks(items []*entities.ParsedActionItem) []slack.Block {
	header := slack.NewHeaderBlock(slack.NewTextBlockObject(
		slack.PlainTextType,
		fmt.Sprintf("📋 %d action item(s) from your meeting", len(items)),
		true, false,
	))
	blocks := []slack.Block{header}

	shown := items
	if len(shown) > maxDigestLines {
		shown = shown[:maxDigestLines]
	}

	var lines []string
	for _, item := range shown {
		lines = append(lines, p.digestLine(item))
	}
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, strings.Join(lines, "\n"), false, false),
		nil, nil,
	))

	if rest := len(items) - len(shown); rest > 0 {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("+%d more", rest), false, false),
		))
	}
	return blocks
}

func (p *ChatProcessor) digestLine(item *entities.ParsedActionItem) string {
	var b strings.Builder
	b.WriteString(priorityGlyph(item.Priority))
	b.WriteString(" ")
	b.WriteString(taskTitle(item.Text))
	if item.Assignee != "" {
		fmt.Fprintf(&b, " — *%s*", item.Assignee)
	}
	if item.DueDate != nil {
		fmt.Fprintf(&b, " (due %s)", item.DueDate.Format("Jan 2"))
	}
	return b.String()
}

// PostText posts a plain one-line message to the configured channel.
// Used for sync summaries, which carry no per-item structure.
func (p *ChatProcessor) PostText(ctx context.Context, text string) error {
	if p.client == nil || p.channelID == "" {
		return fmt.Errorf("chat processor is not configured")
	}
	_, _, err := p.client.PostMessageContext(ctx, p.channelID, slack.MsgOptionText(text, false))
	return err
}

// fallbackText is the plain-text rendering used by notification previews
func (p *ChatProcessor) fallbackText(items []*entities.ParsedActionItem) string {
	return fmt.Sprintf("%d action item(s) extracted from your meeting", len(items))
}

func priorityGlyph(signal string) string {
	switch mapTaskPriority(signal) {
	case entities.TaskPriorityUrgent:
		return "🔴"
	case entities.TaskPriorityHigh:
		return "🟠"
	case entities.TaskPriorityMedium:
		return "🟡"
	case entities.TaskPriorityLow:
		return "🔵"
	default:
		return "⚪"
	}
}
