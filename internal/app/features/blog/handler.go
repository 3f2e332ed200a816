// internal/app/features/blog/handler.go
package blog

import (
	"github.com/dalemusser/meditrip/internal/app/content"
	"go.uber.org/zap"
)

// relatedCount is how many related posts the detail page shows.
const relatedCount = 3

// Handler serves the blog listing and post pages.
type Handler struct {
	Content *content.Service
	Log     *zap.Logger
}

func NewHandler(svc *content.Service, logger *zap.Logger) *Handler {
	return &Handler{Content: svc, Log: logger}
}
