package entities

import "time"

// ParsedActionItem is a single action item extracted from a transcript.
// It is the unit of work handed to destination processors; the assignee is
// still a free-text name at this stage, not a resolved user identity.
type ParsedActionItem struct {
	Text           string     `json:"text"`
	Assignee       string     `json:"assignee,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	Context        string     `json:"context,omitempty"`
	ScreenshotRefs []int      `json:"screenshot_refs,omitempty"`
}

// IsValid reports whether the item carries a usable action description.
func (a *ParsedActionItem) IsValid() bool {
	if a == nil {
		return false
	}
	for _, r := range a.Text {
		if r != ' ' && r != '\t' && r != '\n' {
			return true
		}
	}
	return false
}
