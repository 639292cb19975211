package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/actionsync/errors"
	"github.com/johnquangdev/actionsync/internal/adapter/dto/syncdto"
	"github.com/johnquangdev/actionsync/internal/usecase/fanout"
	"github.com/johnquangdev/actionsync/internal/usecase/syncer"
)

// Sync handles sync-trigger and processor-status requests
type Sync struct {
	svc     *syncer.Service
	factory *fanout.Factory
	logger  *zap.Logger
}

// NewSync creates the sync handler
func NewSync(svc *syncer.Service, factory *fanout.Factory, logger *zap.Logger) *Sync {
	return &Sync{svc: svc, factory: factory, logger: logger}
}

// BulkSync triggers a sync run for one source integration
// POST /v1/sync/:integration_id
func (h *Sync) BulkSync(c echo.Context) error {
	integrationID, err := uuid.Parse(c.Param("integration_id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("integration_id must be a valid uuid"))
	}

	var req syncdto.BulkSyncRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id must be a valid uuid"))
	}

	result := h.svc.BulkSync(c.Request().Context(), userID, integrationID, req.SinceDays)
	return HandleSuccess(h.logger, c, result)
}

// ProcessorStatus reports configuration validity and reachability for every
// processor the user's integrations would produce
// GET /v1/processors/status?user_id=...
func (h *Sync) ProcessorStatus(c echo.Context) error {
	userID, err := uuid.Parse(c.QueryParam("user_id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id must be a valid uuid"))
	}

	ctx := c.Request().Context()
	processors, err := h.factory.CreateProcessors(ctx, userID, nil, nil)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	statuses := make([]syncdto.ProcessorStatusResponse, 0, len(processors))
	for _, p := range processors {
		v := p.ValidateConfig()
		resp := syncdto.ProcessorStatusResponse{
			Name:         p.Name(),
			ConfigValid:  v.Valid,
			ConfigErrors: v.Errors,
		}
		if v.Valid {
			st := p.Status(ctx)
			resp.Available = st.Available
			resp.Message = st.Message
		}
		statuses = append(statuses, resp)
	}

	return HandleSuccess(h.logger, c, statuses)
}
