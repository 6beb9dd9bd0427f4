package dispatch

import (
	"context"
	"time"

	"github.com/transferhq/dispatch-be/internal/dispatch/domain"
	"github.com/transferhq/dispatch-be/internal/dispatch/model"
)

// AvailableVehicles lists active owned vehicles with no non-terminal
// assignment on the date.
func (e *Engine) AvailableVehicles(ctx context.Context, date time.Time) ([]model.Vehicle, error) {
	vehicles, err := e.store.FleetVehicles(ctx)
	if err != nil {
		return nil, err
	}
	active, err := e.store.ActiveAssignmentsOnDate(ctx, date, "")
	if err != nil {
		return nil, err
	}

	busy := make(map[string]struct{}, len(active))
	for _, a := range active {
		busy[a.VehicleID] = struct{}{}
	}

	free := make([]model.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if _, taken := busy[v.VehicleID]; !taken {
			free = append(free, v)
		}
	}
	return free, nil
}

// AvailableDrivers lists active drivers. With a target job, drivers the
// checker would flag against that job are filtered out.
func (e *Engine) AvailableDrivers(ctx context.Context, date time.Time, jobID string) ([]model.Driver, error) {
	drivers, err := e.store.ActiveDrivers(ctx)
	if err != nil {
		return nil, err
	}
	if jobID == "" {
		return drivers, nil
	}

	candidate, active, _, err := e.targetJobContext(ctx, jobID)
	if err != nil {
		return nil, err
	}

	free := make([]model.Driver, 0, len(drivers))
	for _, d := range drivers {
		if e.checker.CheckDriver(d.DriverID, candidate, forDriver(active, d.DriverID)) == nil {
			free = append(free, d)
		}
	}
	return free, nil
}

// AvailableReps lists active reps. With a target job, the checker's rules
// apply, including the same-flight exception; an excursion job gets an
// empty list since reps never work excursions.
func (e *Engine) AvailableReps(ctx context.Context, date time.Time, jobID string) ([]model.Rep, error) {
	reps, err := e.store.ActiveReps(ctx)
	if err != nil {
		return nil, err
	}
	if jobID == "" {
		return reps, nil
	}

	candidate, active, job, err := e.targetJobContext(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.ServiceType == domain.ServiceExcursion {
		return []model.Rep{}, nil
	}

	free := make([]model.Rep, 0, len(reps))
	for _, r := range reps {
		if e.checker.CheckRep(r.RepID, candidate, forRep(active, r.RepID)) == nil {
			free = append(free, r)
		}
	}
	return free, nil
}

func (e *Engine) targetJobContext(ctx context.Context, jobID string) (Timing, []model.AssignmentWithJob, *model.Job, error) {
	job, err := e.store.JobByID(ctx, jobID)
	if err != nil {
		return Timing{}, nil, nil, err
	}
	flight, err := e.store.FlightByJobID(ctx, jobID)
	if err != nil {
		return Timing{}, nil, nil, err
	}
	active, err := e.store.ActiveAssignmentsOnDate(ctx, job.JobDate, "")
	if err != nil {
		return Timing{}, nil, nil, err
	}
	return TimingOf(job, flight), active, job, nil
}
