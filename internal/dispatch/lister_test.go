package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transferhq/dispatch-be/internal/dispatch/domain"
)

func TestAvailableVehicles(t *testing.T) {
	f := newFakeStore()
	f.addArrivalJob("job-1", "TRF-001", "EK201", at(10, 0))
	f.addVehicle("veh-busy", 6)
	f.addVehicle("veh-free", 6)
	f.addVehicle("veh-contracted", 6)
	f.vehicles["veh-contracted"].Ownership = domain.OwnershipContracted
	f.addVehicle("veh-inactive", 6)
	f.vehicles["veh-inactive"].Active = false
	e := newTestEngine(f, nil)

	_, err := e.Assign(context.Background(), AssignParams{JobID: "job-1", VehicleID: "veh-busy", ActorID: "usr-ops"})
	require.NoError(t, err)

	free, err := e.AvailableVehicles(context.Background(), testDate)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, "veh-free", free[0].VehicleID)
}

func TestAvailableVehiclesTerminalJobReleases(t *testing.T) {
	f := newFakeStore()
	f.addArrivalJob("job-1", "TRF-001", "EK201", at(10, 0))
	f.addVehicle("veh-1", 6)
	e := newTestEngine(f, nil)

	_, err := e.Assign(context.Background(), AssignParams{JobID: "job-1", VehicleID: "veh-1", ActorID: "usr-ops"})
	require.NoError(t, err)
	f.jobs["job-1"].Status = domain.JobStatusCompleted

	free, err := e.AvailableVehicles(context.Background(), testDate)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, "veh-1", free[0].VehicleID)
}

func TestAvailableDrivers(t *testing.T) {
	f := newFakeStore()
	f.addArrivalJob("job-1", "TRF-001", "EK201", at(10, 0))
	f.addArrivalJob("job-near", "TRF-002", "QR118", at(11, 0))
	f.addArrivalJob("job-far", "TRF-003", "TK700", at(15, 0))
	f.addVehicle("veh-1", 6)
	f.addDriver("drv-busy", "Hassan")
	f.addDriver("drv-free", "Omar")
	f.addDriver("drv-inactive", "Karim")
	f.drivers["drv-inactive"].Active = false
	e := newTestEngine(f, nil)

	_, err := e.Assign(context.Background(), AssignParams{JobID: "job-1", VehicleID: "veh-1", DriverID: "drv-busy", ActorID: "usr-ops"})
	require.NoError(t, err)

	t.Run("without a job every active driver is offered", func(t *testing.T) {
		drivers, err := e.AvailableDrivers(context.Background(), testDate, "")
		require.NoError(t, err)
		assert.Len(t, drivers, 2)
	})

	t.Run("job inside the gap filters the busy driver", func(t *testing.T) {
		drivers, err := e.AvailableDrivers(context.Background(), testDate, "job-near")
		require.NoError(t, err)
		require.Len(t, drivers, 1)
		assert.Equal(t, "drv-free", drivers[0].DriverID)
	})

	t.Run("job outside the gap offers everyone", func(t *testing.T) {
		drivers, err := e.AvailableDrivers(context.Background(), testDate, "job-far")
		require.NoError(t, err)
		assert.Len(t, drivers, 2)
	})

	t.Run("unknown job is not found", func(t *testing.T) {
		_, err := e.AvailableDrivers(context.Background(), testDate, "nope")
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})
}

func TestAvailableReps(t *testing.T) {
	f := newFakeStore()
	f.addArrivalJob("job-1", "TRF-001", "EK201", at(10, 0))
	f.addArrivalJob("job-sameflight", "TRF-002", "EK201", at(10, 0))
	f.addArrivalJob("job-clash", "TRF-003", "QR118", at(10, 30))
	f.addExcursionJob("job-exc", "EXC-014")
	f.addVehicle("veh-1", 6)
	f.addRep("rep-busy", "Mira")
	f.addRep("rep-free", "Lena")
	e := newTestEngine(f, nil)

	_, err := e.Assign(context.Background(), AssignParams{JobID: "job-1", VehicleID: "veh-1", RepID: "rep-busy", ActorID: "usr-ops"})
	require.NoError(t, err)

	t.Run("without a job every active rep is offered", func(t *testing.T) {
		reps, err := e.AvailableReps(context.Background(), testDate, "")
		require.NoError(t, err)
		assert.Len(t, reps, 2)
	})

	t.Run("same flight keeps the busy rep available", func(t *testing.T) {
		reps, err := e.AvailableReps(context.Background(), testDate, "job-sameflight")
		require.NoError(t, err)
		assert.Len(t, reps, 2)
	})

	t.Run("clashing job filters the busy rep", func(t *testing.T) {
		reps, err := e.AvailableReps(context.Background(), testDate, "job-clash")
		require.NoError(t, err)
		require.Len(t, reps, 1)
		assert.Equal(t, "rep-free", reps[0].RepID)
	})

	t.Run("excursion job offers no reps at all", func(t *testing.T) {
		reps, err := e.AvailableReps(context.Background(), testDate, "job-exc")
		require.NoError(t, err)
		assert.Empty(t, reps)
	})
}
