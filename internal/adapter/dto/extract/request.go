package extract

// ExtractRequest is the payload for a direct extraction call
type ExtractRequest struct {
	Text       string `json:"text" validate:"required"`
	MaxActions int    `json:"max_actions,omitempty" validate:"omitempty,min=1,max=100"`
	ChunkSize  int    `json:"chunk_size,omitempty" validate:"omitempty,min=500,max=20000"`
}
