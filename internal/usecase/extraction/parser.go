package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// modelAction is one candidate in the model's response contract
type modelAction struct {
	Text           string  `json:"text"`
	AssigneeName   string  `json:"assigneeName,omitempty"`
	DueDateText    string  `json:"dueDateText,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
	IsFirstPerson  bool    `json:"isFirstPerson,omitempty"`
	ScreenshotRefs []int   `json:"screenshotRefs,omitempty"`
}

// modelActionsResponse is the only wire shape the engine accepts from the
// extraction model
type modelActionsResponse struct {
	Actions []modelAction `json:"actions"`
}

// parseModelActions extracts the JSON object from a raw model completion
// and validates it against the response contract. Models often wrap their
// output in prose or markdown fences; the substring between the first '{'
// and the last '}' is treated as the payload.
func parseModelActions(raw string) (*modelActionsResponse, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var resp modelActionsResponse
	if err := json.Unmarshal([]byte(raw[start:end+1]), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}
	if resp.Actions == nil {
		return nil, fmt.Errorf("missing actions array in model output")
	}
	return &resp, nil
}
