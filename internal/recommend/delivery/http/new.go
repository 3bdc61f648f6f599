package http

import (
	"github.com/gin-gonic/gin"

	"location-recommender-agent/internal/recommend"
	pkgLog "location-recommender-agent/pkg/log"
)

// Handler is the interface for the chat HTTP delivery handler.
type Handler interface {
	HandleChat(c *gin.Context)
	HandleMemory(c *gin.Context)
}

// New creates a new chat delivery handler.
func New(l pkgLog.Logger, uc recommend.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
