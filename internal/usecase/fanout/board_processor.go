package fanout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
	"github.com/johnquangdev/actionsync/internal/infrastructure/external/board"
)

// BoardAPI is the slice of the board client the processor needs
type BoardAPI interface {
	ListBoards(ctx context.Context) ([]board.Board, error)
	CreateItem(ctx context.Context, req *board.CreateItemRequest) (*board.CreateItemResponse, error)
}

// TaskLinker records the created board item against the matching task in
// the internal store. Linking is best-effort and never fails the item.
type TaskLinker func(ctx context.Context, item *entities.ParsedActionItem, created *board.CreateItemResponse)

// BoardProcessor pushes action items onto an external project board as
// board items. Each item is sent independently so one rejected item
// never blocks the rest of the batch.
type BoardProcessor struct {
	client  BoardAPI
	boardID string
	mapping entities.BoardColumnMapping
	link    TaskLinker
	logger  *zap.Logger
}

// NewBoardProcessor creates a board processor bound to one board
func NewBoardProcessor(client BoardAPI, boardID string, mapping entities.BoardColumnMapping, logger *zap.Logger) *BoardProcessor {
	return &BoardProcessor{
		client:  client,
		boardID: boardID,
		mapping: mapping,
		logger:  logger,
	}
}

// Name implements Processor
func (p *BoardProcessor) Name() string { return "board" }

// ValidateConfig implements Processor
func (p *BoardProcessor) ValidateConfig() ConfigValidation {
	var errs []string
	if p.client == nil {
		errs = append(errs, "board client is not configured")
	}
	if p.boardID == "" {
		errs = append(errs, "board id is required")
	}
	return ConfigValidation{Valid: len(errs) == 0, Errors: errs}
}

// Status implements Processor. Reachability is checked by listing boards
// and confirming the configured board is still visible to the credential.
func (p *BoardProcessor) Status(ctx context.Context) Status {
	if p.client == nil {
		return Status{Available: false, Message: "board client is not configured"}
	}
	boards, err := p.client.ListBoards(ctx)
	if err != nil {
		return Status{Available: false, Message: fmt.Sprintf("board API unreachable: %v", err)}
	}
	for _, b := range boards {
		if b.ID == p.boardID {
			return Status{Available: true}
		}
	}
	return Status{Available: false, Message: fmt.Sprintf("board %s is not accessible", p.boardID)}
}

// ProcessActionItems implements Processor
func (p *BoardProcessor) ProcessActionItems(ctx context.Context, items []*entities.ParsedActionItem) *Result {
	result := &Result{Processor: p.Name()}

	for _, item := range items {
		if !item.IsValid() {
			continue
		}

		req := &board.CreateItemRequest{
			BoardID:      p.boardID,
			ItemName:     taskTitle(item.Text),
			ColumnValues: p.columnValues(item),
		}
		resp, err := p.client.CreateItem(ctx, req)
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("⚠️ board item rejected", zap.String("item", req.ItemName), zap.Error(err))
			}
			result.Errors = append(result.Errors, fmt.Sprintf("create board item %q: %v", req.ItemName, err))
			continue
		}

		result.CreatedItems = append(result.CreatedItems, CreatedItem{
			ID:         resp.ID,
			ExternalID: resp.ID,
			Title:      req.ItemName,
			URL:        resp.URL,
		})
		result.ProcessedCount++

		if p.link != nil {
			p.link(ctx, item, resp)
		}
	}

	result.Success = len(result.Errors) == 0
	return result
}

// columnValues builds the column payload for an item. A column is only
// written when its id is configured in the mapping, so partially mapped
// boards get partial rows rather than API errors.
func (p *BoardProcessor) columnValues(item *entities.ParsedActionItem) map[string]interface{} {
	values := map[string]interface{}{}
	if p.mapping.AssigneeColumnID != "" && item.Assignee != "" {
		values[p.mapping.AssigneeColumnID] = item.Assignee
	}
	if p.mapping.DueDateColumnID != "" && item.DueDate != nil {
		values[p.mapping.DueDateColumnID] = item.DueDate.Format("2006-01-02")
	}
	if p.mapping.PriorityColumnID != "" && item.Priority != "" {
		if label := boardPriorityLabel(item.Priority); label != "" {
			values[p.mapping.PriorityColumnID] = label
		}
	}
	if p.mapping.DescriptionColumnID != "" && item.Context != "" {
		values[p.mapping.DescriptionColumnID] = item.Context
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

// boardPriorityLabel collapses priority signals into the three labels the
// board understands
func boardPriorityLabel(signal string) string {
	switch mapTaskPriority(signal) {
	case entities.TaskPriorityUrgent, entities.TaskPriorityHigh:
		return "High"
	case entities.TaskPriorityMedium:
		return "Medium"
	case entities.TaskPriorityLow:
		return "Low"
	default:
		return ""
	}
}
