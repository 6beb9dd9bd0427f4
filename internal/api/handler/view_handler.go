package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/transferhq/dispatch-be/internal/api/dto"
	"github.com/transferhq/dispatch-be/internal/dispatch/model"
)

// DayView handles GET /api/v1/day-view?date=2026-08-29
func (h *AssignmentHandler) DayView(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}

	view, err := h.engine.DayView(c.Request.Context(), date)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DayViewResponse{
		Date:       view.Date.Format(time.DateOnly),
		Arrivals:   toDayJobDTOs(view.Arrivals),
		Departures: toDayJobDTOs(view.Departures),
		Other:      toDayJobDTOs(view.Other),
	})
}

// AvailableVehicles handles GET /api/v1/vehicles/available?date=...
func (h *AssignmentHandler) AvailableVehicles(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}

	vehicles, err := h.engine.AvailableVehicles(c.Request.Context(), date)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]dto.VehicleDTO, len(vehicles))
	for i, v := range vehicles {
		out[i] = dto.VehicleDTO{
			VehicleID:    v.VehicleID,
			PlateNo:      v.PlateNo,
			VehicleType:  v.VehicleType,
			SeatCapacity: v.SeatCapacity,
		}
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": out})
}

// AvailableDrivers handles GET /api/v1/drivers/available?date=...&job_id=...
func (h *AssignmentHandler) AvailableDrivers(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}

	drivers, err := h.engine.AvailableDrivers(c.Request.Context(), date, c.Query("job_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]dto.PersonDTO, len(drivers))
	for i, d := range drivers {
		out[i] = dto.PersonDTO{ID: d.DriverID, Name: d.Name, Phone: d.Phone}
	}
	c.JSON(http.StatusOK, gin.H{"drivers": out})
}

// AvailableReps handles GET /api/v1/reps/available?date=...&job_id=...
func (h *AssignmentHandler) AvailableReps(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}

	reps, err := h.engine.AvailableReps(c.Request.Context(), date, c.Query("job_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]dto.PersonDTO, len(reps))
	for i, r := range reps {
		out[i] = dto.PersonDTO{ID: r.RepID, Name: r.Name, Phone: r.Phone}
	}
	c.JSON(http.StatusOK, gin.H{"reps": out})
}

func (h *AssignmentHandler) dateParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "date query parameter is required"})
		return time.Time{}, false
	}
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		h.logger.Debug("invalid date parameter", slog.String("date", raw))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "date must be formatted YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

func toDayJobDTOs(jobs []model.DayJob) []dto.DayJobDTO {
	out := make([]dto.DayJobDTO, len(jobs))
	for i, j := range jobs {
		d := dto.DayJobDTO{
			JobID:       j.JobID,
			Ref:         j.Ref,
			ServiceType: string(j.ServiceType),
			Status:      string(j.Status),
			PaxCount:    j.PaxCount,
			FlightNo:    j.FlightNo,
		}
		if j.FlightArrival != nil {
			d.ArrivalTime = j.FlightArrival.Format(time.RFC3339)
		}
		if j.FlightDeparture != nil {
			d.DepartureTime = j.FlightDeparture.Format(time.RFC3339)
		}
		if j.PickupTime != nil {
			d.PickupTime = j.PickupTime.Format(time.RFC3339)
		}
		if j.AssignmentID != nil {
			d.Assignment = toAssignmentSummary(j)
		}
		out[i] = d
	}
	return out
}

func toAssignmentSummary(j model.DayJob) *dto.AssignmentSummaryDTO {
	s := &dto.AssignmentSummaryDTO{AssignmentID: *j.AssignmentID}
	if j.VehicleID != nil {
		s.VehicleID = *j.VehicleID
	}
	if j.VehiclePlate != nil {
		s.VehiclePlate = *j.VehiclePlate
	}
	if j.VehicleType != nil {
		s.VehicleType = *j.VehicleType
	}
	if j.DriverID != nil {
		s.DriverID = *j.DriverID
		if j.DriverName != nil {
			s.DriverName = *j.DriverName
		}
		if j.DriverStatus != nil {
			s.DriverStatus = *j.DriverStatus
		}
	}
	if j.RepID != nil {
		s.RepID = *j.RepID
		if j.RepName != nil {
			s.RepName = *j.RepName
		}
		if j.RepStatus != nil {
			s.RepStatus = *j.RepStatus
		}
	}
	return s
}
