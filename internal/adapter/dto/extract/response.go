package extract

import "github.com/johnquangdev/actionsync/internal/domain/entities"

// ExtractResponse carries the extracted action items
type ExtractResponse struct {
	Items []*entities.ParsedActionItem `json:"items"`
	Count int                          `json:"count"`
}
