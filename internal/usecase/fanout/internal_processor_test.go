package fanout

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

type fakeTaskRepo struct {
	tasks       []*entities.Task
	updated     []*entities.Task
	assignments []*entities.TaskAssignment
	failCreate  bool
}

func (f *fakeTaskRepo) CreateTask(_ context.Context, task *entities.Task) error {
	if f.failCreate {
		return fmt.Errorf("insert failed")
	}
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeTaskRepo) UpdateTask(_ context.Context, task *entities.Task) error {
	f.updated = append(f.updated, task)
	return nil
}

func (f *fakeTaskRepo) GetTaskByID(_ context.Context, _ uuid.UUID) (*entities.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) ListTasksByTranscript(_ context.Context, transcriptID uuid.UUID) ([]*entities.Task, error) {
	var out []*entities.Task
	for _, task := range f.tasks {
		if task.TranscriptID != nil && *task.TranscriptID == transcriptID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) CreateAssignment(_ context.Context, a *entities.TaskAssignment) error {
	f.assignments = append(f.assignments, a)
	return nil
}

type fakeUserRepo struct {
	users    map[uuid.UUID]*entities.User
	members  []*entities.User
	projects map[uuid.UUID]*entities.Project
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) ListWorkspaceMembers(_ context.Context, _ uuid.UUID) ([]*entities.User, error) {
	return f.members, nil
}

func (f *fakeUserRepo) GetProject(_ context.Context, id uuid.UUID) (*entities.Project, error) {
	return f.projects[id], nil
}

func member(name string) *entities.User {
	return &entities.User{ID: uuid.New(), Name: name, Email: name + "@test.local", IsActive: true}
}

func TestInternalProcessor_CreatesTasksAndAssignments(t *testing.T) {
	owner := uuid.New()
	sarah := member("Sarah Le")
	taskRepo := &fakeTaskRepo{}
	userRepo := &fakeUserRepo{members: []*entities.User{sarah, member("Bob Tran")}}

	due := time.Now().Add(48 * time.Hour)
	p := NewInternalProcessor(owner, nil, taskRepo, userRepo, nil)
	result := p.ProcessActionItems(context.Background(), []*entities.ParsedActionItem{
		{Text: "todo: review the budget", Assignee: "Sarah", DueDate: &due, Priority: "urgent"},
		{Text: "schedule the retro"},
	})

	if !result.Success {
		t.Fatalf("expected success, errors: %v", result.Errors)
	}
	if result.ProcessedCount != 2 || len(taskRepo.tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d processed, %d stored", result.ProcessedCount, len(taskRepo.tasks))
	}

	first := taskRepo.tasks[0]
	if first.Title != "Review the budget" {
		t.Fatalf("prefix not stripped or not capitalized: %q", first.Title)
	}
	if first.Priority != entities.TaskPriorityUrgent {
		t.Fatalf("expected urgent tier, got %q", first.Priority)
	}
	if first.OwnerID != owner {
		t.Fatal("task owner must be the pipeline user")
	}
	if first.DueDate == nil || !first.DueDate.Equal(due) {
		t.Fatalf("due date lost: %v", first.DueDate)
	}

	if len(taskRepo.assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(taskRepo.assignments))
	}
	if taskRepo.assignments[0].UserID != sarah.ID {
		t.Fatal("assignment resolved to wrong user")
	}

	second := taskRepo.tasks[1]
	if second.Priority != entities.TaskPriorityQuick {
		t.Fatalf("unclassified item should land in quick tier, got %q", second.Priority)
	}
}

func TestInternalProcessor_UnresolvedAssigneeIsNotAnError(t *testing.T) {
	taskRepo := &fakeTaskRepo{}
	userRepo := &fakeUserRepo{members: []*entities.User{member("Bob Tran")}}

	p := NewInternalProcessor(uuid.New(), nil, taskRepo, userRepo, nil)
	result := p.ProcessActionItems(context.Background(), []*entities.ParsedActionItem{
		{Text: "send the invoice", Assignee: "Zelda"},
	})

	if !result.Success {
		t.Fatalf("unresolved assignee must not fail: %v", result.Errors)
	}
	if len(taskRepo.tasks) != 1 {
		t.Fatalf("task should still be created, got %d", len(taskRepo.tasks))
	}
	if len(taskRepo.assignments) != 0 {
		t.Fatal("no assignment should be created for an unknown name")
	}
}

func TestInternalProcessor_PartialFailure(t *testing.T) {
	taskRepo := &fakeTaskRepo{failCreate: true}
	userRepo := &fakeUserRepo{}

	p := NewInternalProcessor(uuid.New(), nil, taskRepo, userRepo, nil)
	result := p.ProcessActionItems(context.Background(), []*entities.ParsedActionItem{
		{Text: "write the postmortem"},
	})

	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.ProcessedCount != 0 || len(result.Errors) != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
}

func TestInternalProcessor_SkipsInvalidItems(t *testing.T) {
	taskRepo := &fakeTaskRepo{}
	p := NewInternalProcessor(uuid.New(), nil, taskRepo, &fakeUserRepo{}, nil)
	result := p.ProcessActionItems(context.Background(), []*entities.ParsedActionItem{
		nil,
		{Text: "   "},
		{Text: "real work"},
	})

	if result.ProcessedCount != 1 || len(taskRepo.tasks) != 1 {
		t.Fatalf("expected only the valid item, got %d", len(taskRepo.tasks))
	}
}

func TestResolveAssignee(t *testing.T) {
	members := []*entities.User{member("Sarah Le"), member("Bob Tran")}

	if got := resolveAssignee("sarah le", members); got == nil || got.Name != "Sarah Le" {
		t.Fatal("exact case-insensitive match failed")
	}
	if got := resolveAssignee("Bob", members); got == nil || got.Name != "Bob Tran" {
		t.Fatal("token match failed")
	}
	if got := resolveAssignee("sar", members); got == nil || got.Name != "Sarah Le" {
		t.Fatal("token prefix match failed")
	}
	if got := resolveAssignee("Charlie", members); got != nil {
		t.Fatalf("unknown name should not resolve, got %s", got.Name)
	}
	if got := resolveAssignee("", members); got != nil {
		t.Fatal("empty name should not resolve")
	}
}

func TestTaskTitle(t *testing.T) {
	cases := map[string]string{
		"action item: ship the fix": "Ship the fix",
		"TODO: write docs":          "Write docs",
		"@kevin review the PR":      "Review the PR",
		"plain task":                "Plain task",
	}
	for in, want := range cases {
		if got := taskTitle(in); got != want {
			t.Fatalf("taskTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapTaskPriority(t *testing.T) {
	cases := map[string]entities.TaskPriority{
		"urgent":        entities.TaskPriorityUrgent,
		"ASAP":          entities.TaskPriorityUrgent,
		"high priority": entities.TaskPriorityHigh,
		"important":     entities.TaskPriorityHigh,
		"medium":        entities.TaskPriorityMedium,
		"low priority":  entities.TaskPriorityLow,
		"someday":       entities.TaskPriorityLow,
		"":              entities.TaskPriorityQuick,
		"banana":        entities.TaskPriorityQuick,
	}
	for in, want := range cases {
		if got := mapTaskPriority(in); got != want {
			t.Fatalf("mapTaskPriority(%q) = %q, want %q", in, got, want)
		}
	}
}
