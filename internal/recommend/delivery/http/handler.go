package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"location-recommender-agent/internal/recommend"
	pkgLog "location-recommender-agent/pkg/log"
	pkgResponse "location-recommender-agent/pkg/response"
)

type handler struct {
	l  pkgLog.Logger
	uc recommend.UseCase
}

// HandleChat handles one chat turn for a session.
func (h *handler) HandleChat(c *gin.Context) {
	ctx := c.Request.Context()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "recommend.delivery.http.HandleChat.ShouldBindJSON: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	out, err := h.uc.HandleMessage(ctx, req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, recommend.ErrEmptyMessage) {
			pkgResponse.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "recommend.delivery.http.HandleChat.HandleMessage: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, out)
}

// HandleMemory returns the durable memory snapshot of a session.
func (h *handler) HandleMemory(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID := c.Param("id")
	view, err := h.uc.MemorySnapshot(ctx, sessionID)
	if err != nil {
		if errors.Is(err, recommend.ErrSessionNotFound) {
			pkgResponse.NotFound(c, err.Error())
			return
		}
		h.l.Errorf(ctx, "recommend.delivery.http.HandleMemory.MemorySnapshot: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, view)
}
