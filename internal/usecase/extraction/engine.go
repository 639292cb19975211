package extraction

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

// extractionInstructions is the fixed instruction contract sent with every
// chunk. The model must return exactly one JSON object and nothing else.
const extractionInstructions = `You extract action items from meeting and voice transcripts.

Return ONLY a JSON object of the form:
{"actions": [{"text": "...", "assigneeName": "...", "dueDateText": "...", "confidence": 0.0, "isFirstPerson": false, "screenshotRefs": [1]}]}

Rules:
- Extract every task, reminder, or commitment, whether work or personal.
- Exclude observations, opinions, questions, and greetings.
- Split sentences containing multiple tasks into separate actions.
- "text" is required and must be a short imperative description.
- Set "assigneeName" only when a responsible person is named or implied.
- Set "dueDateText" to the due-date phrase exactly as spoken, if any.
- Set "isFirstPerson" when the speaker commits to the task themselves.
- When a numbered [SCREENSHOT-N] marker appears near the source text,
  include N in "screenshotRefs".
- Return {"actions": []} when the chunk contains no action items.`

// ModelClient is the extraction model transport. Implementations must
// enforce their own request timeout.
type ModelClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Options tunes a single extraction run
type Options struct {
	MaxActions int // defaults to MaxActions
	ChunkSize  int // defaults to DefaultChunkSize
}

// Engine turns transcript text into parsed action items. The model path is
// used when a client is configured; the deterministic heuristic path covers
// both the no-credential case and the model-found-nothing case. Extract
// never fails: the worst outcome is an empty slice.
type Engine struct {
	model  ModelClient
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine creates an extraction engine. A nil model disables the AI path.
func NewEngine(model ModelClient, logger *zap.Logger) *Engine {
	return &Engine{
		model:  model,
		logger: logger,
		now:    time.Now,
	}
}

// Extract produces at most opts.MaxActions items from the transcript text.
// Chunks are processed sequentially so the first occurrence of a duplicate
// always wins regardless of model nondeterminism.
func (e *Engine) Extract(ctx context.Context, text string, opts Options) []*entities.ParsedActionItem {
	if opts.MaxActions <= 0 {
		opts.MaxActions = MaxActions
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}

	text = RenumberScreenshotMarkers(text)

	if e.model == nil {
		return capItems(ExtractHeuristic(text, e.now()), opts.MaxActions)
	}

	items := e.extractWithModel(ctx, text, opts)
	if len(items) == 0 {
		// The model may legitimately find nothing, but a deterministic
		// pass is cheap and catches the cases where it silently gave up.
		if e.logger != nil {
			e.logger.Info("model extraction yielded no items, running heuristic fallback")
		}
		return capItems(ExtractHeuristic(text, e.now()), opts.MaxActions)
	}
	return items
}

func (e *Engine) extractWithModel(ctx context.Context, text string, opts Options) []*entities.ParsedActionItem {
	now := e.now()
	seen := make(map[string]struct{})
	var items []*entities.ParsedActionItem

	chunks := Chunk(text, opts.ChunkSize)
	for i, chunk := range chunks {
		if len(items) >= opts.MaxActions {
			break
		}

		raw, err := e.model.Complete(ctx, extractionInstructions, chunk)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("⚠️ extraction model call failed, skipping chunk",
					zap.Int("chunk", i),
					zap.Error(err),
				)
			}
			continue
		}

		resp, err := parseModelActions(raw)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("⚠️ unparseable model output, skipping chunk",
					zap.Int("chunk", i),
					zap.Error(err),
				)
			}
			continue
		}

		for _, action := range resp.Actions {
			if len(items) >= opts.MaxActions {
				break
			}
			item := e.buildItem(action, now)
			if item == nil {
				continue
			}
			key := normalizeActionText(item.Text)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, item)
		}
	}

	return items
}

// buildItem validates one model candidate and resolves its due date and
// assignee, preferring the model's own fields over a raw-text scan.
func (e *Engine) buildItem(action modelAction, now time.Time) *entities.ParsedActionItem {
	text := strings.TrimSpace(action.Text)
	if text == "" {
		return nil
	}

	item := &entities.ParsedActionItem{
		Text:           cleanActionText(text),
		Context:        text,
		ScreenshotRefs: action.ScreenshotRefs,
	}
	if item.Text == "" {
		return nil
	}

	if action.DueDateText != "" {
		item.DueDate = ResolveDatePhrase(action.DueDateText, now)
	}
	if item.DueDate == nil {
		item.DueDate = FindDuePhrase(text, now)
	}

	if name := strings.TrimSpace(action.AssigneeName); name != "" {
		item.Assignee = name
	} else if m := mentionPattern.FindStringSubmatch(text); m != nil {
		item.Assignee = m[1]
	} else if m := nameCommitment.FindStringSubmatch(text); m != nil {
		item.Assignee = m[1]
	}

	item.Priority = findPriority(text)
	return item
}

func capItems(items []*entities.ParsedActionItem, max int) []*entities.ParsedActionItem {
	if len(items) > max {
		return items[:max]
	}
	return items
}
