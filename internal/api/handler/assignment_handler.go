package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/transferhq/dispatch-be/internal/api/dto"
	"github.com/transferhq/dispatch-be/internal/dispatch"
	"github.com/transferhq/dispatch-be/internal/dispatch/domain"
	"github.com/transferhq/dispatch-be/internal/dispatch/model"
)

// Assign handles POST /api/v1/assignments
func (h *AssignmentHandler) Assign(c *gin.Context) {
	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid assign request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	if badID(c, "job_id", req.JobID) || badID(c, "vehicle_id", req.VehicleID) ||
		badID(c, "driver_id", req.DriverID) || badID(c, "rep_id", req.RepID) {
		return
	}

	assignment, err := h.engine.Assign(c.Request.Context(), dispatch.AssignParams{
		JobID:     req.JobID,
		VehicleID: req.VehicleID,
		DriverID:  req.DriverID,
		RepID:     req.RepID,
		ActorID:   req.AssignedBy,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.metrics.AssignmentsCreated.Inc()
	c.JSON(http.StatusCreated, toAssignmentDTO(assignment))
}

// Reassign handles PATCH /api/v1/assignments/:assignment_id
func (h *AssignmentHandler) Reassign(c *gin.Context) {
	assignmentID := c.Param("assignment_id")
	if _, err := uuid.Parse(assignmentID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "assignment_id must be a valid UUID"})
		return
	}

	var req dto.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid reassign request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	if badID(c, "vehicle_id", req.VehicleID) || badID(c, "driver_id", req.DriverID) ||
		badID(c, "rep_id", req.RepID) {
		return
	}

	assignment, err := h.engine.Reassign(c.Request.Context(), assignmentID, dispatch.ReassignParams{
		VehicleID: req.VehicleID,
		DriverID:  req.DriverID,
		RepID:     req.RepID,
		ActorID:   req.AssignedBy,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.metrics.AssignmentsUpdated.Inc()
	c.JSON(http.StatusOK, toAssignmentDTO(assignment))
}

// Unassign handles DELETE /api/v1/assignments/:assignment_id
func (h *AssignmentHandler) Unassign(c *gin.Context) {
	assignmentID := c.Param("assignment_id")
	if _, err := uuid.Parse(assignmentID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "assignment_id must be a valid UUID"})
		return
	}

	if err := h.engine.Unassign(c.Request.Context(), assignmentID); err != nil {
		h.writeError(c, err)
		return
	}

	h.metrics.AssignmentsRemoved.Inc()
	c.Status(http.StatusNoContent)
}

// badID rejects a non-empty id that is not a UUID before it reaches the
// uuid-typed columns.
func badID(c *gin.Context, field, value string) bool {
	if value == "" {
		return false
	}
	if _, err := uuid.Parse(value); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: field + " must be a valid UUID"})
		return true
	}
	return false
}

// writeError maps engine errors to HTTP responses. Conflicts carry enough
// detail for the dispatcher to resolve the clash in one round trip.
func (h *AssignmentHandler) writeError(c *gin.Context, err error) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		h.metrics.Conflicts.WithLabelValues(string(conflictErr.Resource)).Inc()
		resp := dto.ErrorResponse{
			Error:        conflictErr.Error(),
			CollidingJob: conflictErr.JobRef,
		}
		if conflictErr.NextAvailable != nil {
			resp.NextAvailable = conflictErr.NextAvailable.Format(time.RFC3339)
		}
		c.JSON(http.StatusConflict, resp)
		return
	}

	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case domain.IsInvalidState(err):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("assignment operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}

func toAssignmentDTO(a *model.Assignment) dto.AssignmentDTO {
	out := dto.AssignmentDTO{
		AssignmentID: a.AssignmentID,
		JobID:        a.JobID,
		VehicleID:    a.VehicleID,
		DriverStatus: string(a.DriverStatus),
		RepStatus:    string(a.RepStatus),
		AssignedBy:   a.AssignedBy,
		JobDate:      a.JobDate.Format(time.DateOnly),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if a.DriverID != nil {
		out.DriverID = *a.DriverID
	}
	if a.RepID != nil {
		out.RepID = *a.RepID
	}
	return out
}
