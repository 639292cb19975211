package fanout

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
	"github.com/johnquangdev/actionsync/internal/domain/repositories"
)

// strippedPrefixes are removed from item text before it becomes a task title
var strippedPrefixes = []string{"action item:", "todo:", "to-do:", "task:"}

// InternalProcessor materializes action items as tasks in the internal
// store. The task owner is always the user who ran the pipeline; an
// inferred assignee only adds an assignment link when it resolves to a
// known identity, and an unresolved assignee is never an error.
type InternalProcessor struct {
	ownerID      uuid.UUID
	transcriptID *uuid.UUID
	taskRepo     repositories.TaskRepository
	userRepo     repositories.UserRepository
	logger       *zap.Logger
}

// NewInternalProcessor creates the internal store processor
func NewInternalProcessor(
	ownerID uuid.UUID,
	transcriptID *uuid.UUID,
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	logger *zap.Logger,
) *InternalProcessor {
	return &InternalProcessor{
		ownerID:      ownerID,
		transcriptID: transcriptID,
		taskRepo:     taskRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// Name implements Processor
func (p *InternalProcessor) Name() string { return "internal" }

// ValidateConfig implements Processor
func (p *InternalProcessor) ValidateConfig() ConfigValidation {
	var errs []string
	if p.ownerID == uuid.Nil {
		errs = append(errs, "owner user id is required")
	}
	if p.taskRepo == nil {
		errs = append(errs, "task repository is not configured")
	}
	return ConfigValidation{Valid: len(errs) == 0, Errors: errs}
}

// Status implements Processor
func (p *InternalProcessor) Status(ctx context.Context) Status {
	if p.userRepo == nil {
		return Status{Available: false, Message: "user repository is not configured"}
	}
	owner, err := p.userRepo.GetByID(ctx, p.ownerID)
	if err != nil {
		return Status{Available: false, Message: fmt.Sprintf("store unreachable: %v", err)}
	}
	if owner == nil {
		return Status{Available: false, Message: "owner user not found"}
	}
	return Status{Available: true}
}

// ProcessActionItems implements Processor
func (p *InternalProcessor) ProcessActionItems(ctx context.Context, items []*entities.ParsedActionItem) *Result {
	result := &Result{Processor: p.Name()}

	// One member lookup serves the whole batch
	var members []*entities.User
	if p.userRepo != nil {
		var err error
		members, err = p.userRepo.ListWorkspaceMembers(ctx, p.ownerID)
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("⚠️ could not load workspace members, tasks stay unassigned", zap.Error(err))
			}
			members = nil
		}
	}

	for _, item := range items {
		if !item.IsValid() {
			continue
		}

		task := entities.NewTask(p.ownerID, taskTitle(item.Text))
		task.Priority = mapTaskPriority(item.Priority)
		task.Description = item.Context
		task.DueDate = item.DueDate
		task.ScreenshotRefs = datatypes.NewJSONSlice(item.ScreenshotRefs)
		task.TranscriptID = p.transcriptID
		task.Source = "transcript"

		if err := p.taskRepo.CreateTask(ctx, task); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("create task %q: %v", task.Title, err))
			continue
		}

		result.CreatedItems = append(result.CreatedItems, CreatedItem{
			ID:    task.ID.String(),
			Title: task.Title,
		})
		result.ProcessedCount++

		if item.Assignee == "" {
			continue
		}
		assignee := resolveAssignee(item.Assignee, members)
		if assignee == nil {
			// Task is created unassigned; the name simply did not resolve
			continue
		}
		if err := p.taskRepo.CreateAssignment(ctx, entities.NewTaskAssignment(task.ID, assignee.ID)); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("assign task %q to %s: %v", task.Title, assignee.Name, err))
		}
	}

	result.Success = len(result.Errors) == 0
	return result
}

// taskTitle cleans item text into a task title: known prefixes and a
// leading @mention are stripped, then the first letter is capitalized.
func taskTitle(text string) string {
	title := strings.TrimSpace(text)
	lower := strings.ToLower(title)
	for _, prefix := range strippedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			title = strings.TrimSpace(title[len(prefix):])
			break
		}
	}
	if strings.HasPrefix(title, "@") {
		if idx := strings.IndexByte(title, ' '); idx > 0 {
			title = strings.TrimSpace(title[idx+1:])
		}
	}
	if title == "" {
		return title
	}
	runes := []rune(title)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// mapTaskPriority maps a free-text priority signal onto the store's fixed
// tiers by keyword containment. Unknown or empty signals land in the quick
// tier.
func mapTaskPriority(signal string) entities.TaskPriority {
	s := strings.ToLower(signal)
	switch {
	case strings.Contains(s, "urgent"), strings.Contains(s, "asap"):
		return entities.TaskPriorityUrgent
	case strings.Contains(s, "high"), strings.Contains(s, "important"):
		return entities.TaskPriorityHigh
	case strings.Contains(s, "medium"), strings.Contains(s, "normal"):
		return entities.TaskPriorityMedium
	case strings.Contains(s, "low"), strings.Contains(s, "someday"), strings.Contains(s, "whenever"):
		return entities.TaskPriorityLow
	default:
		return entities.TaskPriorityQuick
	}
}

// resolveAssignee matches a free-text name against known identities:
// exact case-insensitive match first, then a partial match on each
// whitespace-split token of the stored names.
func resolveAssignee(name string, members []*entities.User) *entities.User {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return nil
	}

	for _, m := range members {
		if strings.ToLower(m.Name) == name {
			return m
		}
	}
	for _, m := range members {
		for _, token := range strings.Fields(strings.ToLower(m.Name)) {
			if token == name || strings.HasPrefix(token, name) {
				return m
			}
		}
	}
	return nil
}
