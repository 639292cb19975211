package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/actionsync/errors"
	"github.com/johnquangdev/actionsync/internal/adapter/dto/extract"
	"github.com/johnquangdev/actionsync/internal/usecase/extraction"
)

// Extraction handles direct extraction requests
type Extraction struct {
	engine *extraction.Engine
	logger *zap.Logger
}

// NewExtraction creates the extraction handler
func NewExtraction(engine *extraction.Engine, logger *zap.Logger) *Extraction {
	return &Extraction{engine: engine, logger: logger}
}

// Extract runs action-item extraction over a raw transcript text
// POST /v1/actions/extract
func (h *Extraction) Extract(c echo.Context) error {
	var req extract.ExtractRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrMissingTranscriptText())
	}

	items := h.engine.Extract(c.Request().Context(), req.Text, extraction.Options{
		MaxActions: req.MaxActions,
		ChunkSize:  req.ChunkSize,
	})

	if h.logger != nil {
		h.logger.Info("🤖 extraction request served",
			zap.String("request_id", getRequestID(c)),
			zap.Int("items", len(items)))
	}

	return HandleSuccess(h.logger, c, extract.ExtractResponse{
		Items: items,
		Count: len(items),
	})
}
