package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transferhq/dispatch-be/internal/dispatch/domain"
	"github.com/transferhq/dispatch-be/internal/dispatch/model"
)

func (f *fakeStore) addJob(j model.Job) {
	cp := j
	f.jobs[j.JobID] = &cp
}

func jobIDs(jobs []model.DayJob) []string {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.JobID)
	}
	return ids
}

func TestDayView(t *testing.T) {
	f := newFakeStore()

	// Arrivals out of order, one missing its flight record entirely.
	f.addArrivalJob("arr-late", "TRF-003", "EK201", at(14, 0))
	f.addArrivalJob("arr-early", "TRF-001", "QR118", at(8, 0))
	f.addJob(model.Job{
		JobID:       "arr-noflight",
		Ref:         "TRF-009",
		ServiceType: domain.ServiceArrival,
		JobDate:     testDate,
		Status:      domain.JobStatusPending,
		CreatedAt:   testDate,
	})

	// Departures: one anchored on pickup, one on flight departure.
	f.addJob(model.Job{
		JobID:       "dep-pickup",
		Ref:         "TRF-004",
		ServiceType: domain.ServiceDeparture,
		JobDate:     testDate,
		Status:      domain.JobStatusPending,
		PickupTime:  tp(at(9, 30)),
		CreatedAt:   testDate,
	})
	f.addJob(model.Job{
		JobID:       "dep-flight",
		Ref:         "TRF-005",
		ServiceType: domain.ServiceDeparture,
		JobDate:     testDate,
		Status:      domain.JobStatusPending,
		CreatedAt:   testDate,
	})
	f.flights["dep-flight"] = &model.Flight{JobID: "dep-flight", FlightNo: "TK700", DepartureTime: tp(at(7, 0))}

	// Non-airport work lands in the other bucket in creation order.
	f.addJob(model.Job{
		JobID:       "exc-1",
		Ref:         "EXC-014",
		ServiceType: domain.ServiceExcursion,
		JobDate:     testDate,
		Status:      domain.JobStatusPending,
		CreatedAt:   testDate.Add(2 * time.Hour),
	})
	f.addJob(model.Job{
		JobID:       "city-1",
		Ref:         "CTY-002",
		ServiceType: domain.ServiceCity,
		JobDate:     testDate,
		Status:      domain.JobStatusPending,
		CreatedAt:   testDate.Add(time.Hour),
	})

	// A job on another date must not leak in.
	f.addJob(model.Job{
		JobID:       "tomorrow",
		Ref:         "TRF-100",
		ServiceType: domain.ServiceArrival,
		JobDate:     testDate.AddDate(0, 0, 1),
		Status:      domain.JobStatusPending,
		CreatedAt:   testDate,
	})

	e := newTestEngine(f, nil)
	view, err := e.DayView(context.Background(), testDate)
	require.NoError(t, err)

	assert.Equal(t, []string{"arr-early", "arr-late", "arr-noflight"}, jobIDs(view.Arrivals))
	assert.Equal(t, []string{"dep-flight", "dep-pickup"}, jobIDs(view.Departures))
	assert.Equal(t, []string{"city-1", "exc-1"}, jobIDs(view.Other))
}

func TestDayViewCreationTiebreak(t *testing.T) {
	f := newFakeStore()
	f.addArrivalJob("job-b", "TRF-002", "EK201", at(10, 0))
	f.addArrivalJob("job-a", "TRF-001", "EK201", at(10, 0))
	f.jobs["job-a"].CreatedAt = testDate.Add(time.Minute)
	f.jobs["job-b"].CreatedAt = testDate.Add(2 * time.Minute)

	e := newTestEngine(f, nil)
	view, err := e.DayView(context.Background(), testDate)
	require.NoError(t, err)

	// Equal anchors fall back to creation order.
	assert.Equal(t, []string{"job-a", "job-b"}, jobIDs(view.Arrivals))
}

func TestDayViewCarriesAssignment(t *testing.T) {
	f := newFakeStore()
	f.addArrivalJob("job-1", "TRF-001", "EK201", at(10, 0))
	f.addVehicle("veh-1", 6)
	e := newTestEngine(f, nil)

	a, err := e.Assign(context.Background(), AssignParams{JobID: "job-1", VehicleID: "veh-1", ActorID: "usr-ops"})
	require.NoError(t, err)

	view, err := e.DayView(context.Background(), testDate)
	require.NoError(t, err)
	require.Len(t, view.Arrivals, 1)

	row := view.Arrivals[0]
	assert.Equal(t, domain.JobStatusAssigned, row.Status)
	require.NotNil(t, row.AssignmentID)
	assert.Equal(t, a.AssignmentID, *row.AssignmentID)
	require.NotNil(t, row.VehicleID)
	assert.Equal(t, "veh-1", *row.VehicleID)
}
