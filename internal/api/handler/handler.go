package handler

import (
	"log/slog"

	"github.com/transferhq/dispatch-be/internal/dispatch"
	"github.com/transferhq/dispatch-be/shared/metrics"
)

// Dependencies holds all dependencies needed by handlers.
type Dependencies struct {
	Logger  *slog.Logger
	Engine  *dispatch.Engine
	Metrics *metrics.Metrics
}

// AssignmentHandler handles assignment and day-view HTTP requests.
type AssignmentHandler struct {
	logger  *slog.Logger
	engine  *dispatch.Engine
	metrics *metrics.Metrics
}

// NewAssignmentHandler creates a new AssignmentHandler instance.
func NewAssignmentHandler(deps *Dependencies) *AssignmentHandler {
	return &AssignmentHandler{
		logger:  deps.Logger,
		engine:  deps.Engine,
		metrics: deps.Metrics,
	}
}
