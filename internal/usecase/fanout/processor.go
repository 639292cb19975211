package fanout

import (
	"context"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

// CreatedItem is a handle to an action item materialized in a destination
type CreatedItem struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id,omitempty"`
	Title      string `json:"title"`
	URL        string `json:"url,omitempty"`
}

// Result is the structured outcome of one processor batch. Success is true
// only with zero errors; partial success shows as created items alongside
// a non-empty error list.
type Result struct {
	Processor      string        `json:"processor"`
	Success        bool          `json:"success"`
	ProcessedCount int           `json:"processed_count"`
	Errors         []string      `json:"errors,omitempty"`
	CreatedItems   []CreatedItem `json:"created_items,omitempty"`
}

// ConfigValidation is the outcome of a synchronous configuration check
type ConfigValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Status is a lightweight reachability/auth report for one destination
type Status struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

// Processor materializes a batch of action items in one destination system.
// Implementations isolate failures per item: one bad item appends an error
// and processing continues. ProcessActionItems never fails outright; it
// always returns a Result.
type Processor interface {
	Name() string

	// ValidateConfig checks required identity, credential, and destination
	// fields synchronously, before any network I/O is attempted.
	ValidateConfig() ConfigValidation

	// Status performs a lightweight live reachability/auth check.
	Status(ctx context.Context) Status

	ProcessActionItems(ctx context.Context, items []*entities.ParsedActionItem) *Result
}
