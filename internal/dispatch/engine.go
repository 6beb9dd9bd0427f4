package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/transferhq/dispatch-be/internal/dispatch/domain"
	"github.com/transferhq/dispatch-be/internal/dispatch/model"
)

// Store is the read side of the engine's persistence. Every method honors
// soft-deletion: a soft-deleted record is reported as not found.
type Store interface {
	JobByID(ctx context.Context, jobID string) (*model.Job, error)
	// FlightByJobID returns (nil, nil) when the job has no flight attached.
	FlightByJobID(ctx context.Context, jobID string) (*model.Flight, error)
	VehicleByID(ctx context.Context, vehicleID string) (*model.Vehicle, error)
	DriverByID(ctx context.Context, driverID string) (*model.Driver, error)
	RepByID(ctx context.Context, repID string) (*model.Rep, error)
	AssignmentByID(ctx context.Context, assignmentID string) (*model.Assignment, error)
	AssignmentByJobID(ctx context.Context, jobID string) (*model.Assignment, error)
	// ActiveAssignmentsOnDate returns all assignments whose job shares the
	// date and is in a non-terminal status, optionally excluding one
	// assignment (the one being reassigned).
	ActiveAssignmentsOnDate(ctx context.Context, date time.Time, excludeAssignmentID string) ([]model.AssignmentWithJob, error)
	JobsOnDate(ctx context.Context, date time.Time) ([]model.DayJob, error)
	// FleetVehicles lists active, owned, non-deleted vehicles.
	FleetVehicles(ctx context.Context) ([]model.Vehicle, error)
	ActiveDrivers(ctx context.Context) ([]model.Driver, error)
	ActiveReps(ctx context.Context) ([]model.Rep, error)
}

// TxStore is the write side, only reachable inside a unit of work.
type TxStore interface {
	CreateAssignment(ctx context.Context, a *model.Assignment) error
	UpdateAssignment(ctx context.Context, a *model.Assignment) error
	DeleteAssignment(ctx context.Context, assignmentID string) error
	SetJobStatus(ctx context.Context, jobID string, status domain.JobStatus) error
	CreateNotification(ctx context.Context, n *model.Notification) error
}

// TxRunner executes fn inside one atomic unit of work. fn's writes commit
// together or not at all.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx TxStore) error) error
}

// Notifier nudges the delivery pipeline after a notification row has
// committed. Failure to nudge is logged, never surfaced: the row is the
// source of truth and delivery is out of band.
type Notifier interface {
	NotifyAssigned(ctx context.Context, n *model.Notification) error
}

// Engine is the resource assignment and availability engine. It owns the
// decision logic and the transactional contract for attaching vehicles,
// drivers and reps to jobs.
type Engine struct {
	store    Store
	tx       TxRunner
	checker  *Checker
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewEngine wires the engine. notifier may be nil when there is no
// delivery pipeline (tests, batch tooling).
func NewEngine(store Store, tx TxRunner, policy Policy, notifier Notifier, logger *slog.Logger) *Engine {
	return &Engine{
		store:    store,
		tx:       tx,
		checker:  NewChecker(policy),
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// AssignParams are the inputs to Assign. DriverID and RepID are optional.
type AssignParams struct {
	JobID     string
	VehicleID string
	DriverID  string
	RepID     string
	ActorID   string
}

// Assign validates and creates the assignment for a job, flips the job to
// ASSIGNED and, when a rep is attached, records a JOB_ASSIGNED
// notification — all in one transaction.
func (e *Engine) Assign(ctx context.Context, p AssignParams) (*model.Assignment, error) {
	job, err := e.store.JobByID(ctx, p.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status == domain.JobStatusCancelled {
		return nil, domain.ErrJobCancelled
	}

	if _, err := e.store.AssignmentByJobID(ctx, p.JobID); err == nil {
		return nil, domain.ErrJobAlreadyAssigned
	} else if !errors.Is(err, domain.ErrAssignmentNotFound) {
		return nil, err
	}

	flight, err := e.store.FlightByJobID(ctx, p.JobID)
	if err != nil {
		return nil, err
	}
	candidate := TimingOf(job, flight)

	active, err := e.store.ActiveAssignmentsOnDate(ctx, job.JobDate, "")
	if err != nil {
		return nil, err
	}

	if err := e.checkVehicle(ctx, p.VehicleID, job, active); err != nil {
		return nil, err
	}
	if p.DriverID != "" {
		if err := e.checkDriver(ctx, p.DriverID, candidate, active); err != nil {
			return nil, err
		}
	}
	if p.RepID != "" {
		if err := e.checkRep(ctx, p.RepID, job, candidate, active); err != nil {
			return nil, err
		}
	}

	now := e.now()
	assignment := &model.Assignment{
		AssignmentID: uuid.New().String(),
		JobID:        job.JobID,
		VehicleID:    p.VehicleID,
		DriverID:     optional(p.DriverID),
		RepID:        optional(p.RepID),
		DriverStatus: domain.ConfirmPending,
		RepStatus:    domain.ConfirmPending,
		AssignedBy:   p.ActorID,
		JobDate:      job.JobDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var notification *model.Notification
	if p.RepID != "" {
		notification = e.newNotification(p.RepID, assignment, now)
	}

	err = e.tx.InTx(ctx, func(tx TxStore) error {
		if err := tx.CreateAssignment(ctx, assignment); err != nil {
			return err
		}
		if err := tx.SetJobStatus(ctx, job.JobID, domain.JobStatusAssigned); err != nil {
			return err
		}
		if notification != nil {
			if err := tx.CreateNotification(ctx, notification); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit assignment: %w", err)
	}

	e.logger.Info("assignment created",
		slog.String("assignment_id", assignment.AssignmentID),
		slog.String("job_id", job.JobID),
		slog.String("job_ref", job.Ref),
		slog.String("vehicle_id", p.VehicleID),
		slog.String("assigned_by", p.ActorID),
	)

	e.nudge(ctx, notification)
	return assignment, nil
}

// ReassignParams name the fields to swap. An empty field is left unchanged.
type ReassignParams struct {
	VehicleID string
	DriverID  string
	RepID     string
	ActorID   string
}

// Reassign swaps the supplied resources on an existing assignment, running
// the same validations as Assign with the assignment itself excluded from
// conflict searches. A changed driver or rep has its confirmation status
// reset to PENDING; a changed rep also gets a fresh notification.
func (e *Engine) Reassign(ctx context.Context, assignmentID string, p ReassignParams) (*model.Assignment, error) {
	if p.VehicleID == "" && p.DriverID == "" && p.RepID == "" {
		return nil, domain.ErrNoReassignFields
	}

	assignment, err := e.store.AssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	job, err := e.store.JobByID(ctx, assignment.JobID)
	if err != nil {
		return nil, err
	}
	flight, err := e.store.FlightByJobID(ctx, job.JobID)
	if err != nil {
		return nil, err
	}
	candidate := TimingOf(job, flight)

	active, err := e.store.ActiveAssignmentsOnDate(ctx, job.JobDate, assignment.AssignmentID)
	if err != nil {
		return nil, err
	}

	var notification *model.Notification
	now := e.now()

	if p.VehicleID != "" {
		if err := e.checkVehicle(ctx, p.VehicleID, job, active); err != nil {
			return nil, err
		}
		assignment.VehicleID = p.VehicleID
	}

	if p.DriverID != "" {
		if err := e.checkDriver(ctx, p.DriverID, candidate, active); err != nil {
			return nil, err
		}
		if assignment.DriverID == nil || *assignment.DriverID != p.DriverID {
			assignment.DriverStatus = domain.ConfirmPending
		}
		assignment.DriverID = optional(p.DriverID)
	}

	if p.RepID != "" {
		if err := e.checkRep(ctx, p.RepID, job, candidate, active); err != nil {
			return nil, err
		}
		if assignment.RepID == nil || *assignment.RepID != p.RepID {
			assignment.RepStatus = domain.ConfirmPending
			notification = e.newNotification(p.RepID, assignment, now)
		}
		assignment.RepID = optional(p.RepID)
	}

	assignment.UpdatedAt = now

	err = e.tx.InTx(ctx, func(tx TxStore) error {
		if err := tx.UpdateAssignment(ctx, assignment); err != nil {
			return err
		}
		if notification != nil {
			if err := tx.CreateNotification(ctx, notification); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit reassignment: %w", err)
	}

	e.logger.Info("assignment updated",
		slog.String("assignment_id", assignment.AssignmentID),
		slog.String("job_id", job.JobID),
		slog.String("assigned_by", p.ActorID),
	)

	e.nudge(ctx, notification)
	return assignment, nil
}

// Unassign deletes the assignment and resets its job to PENDING, atomically.
func (e *Engine) Unassign(ctx context.Context, assignmentID string) error {
	assignment, err := e.store.AssignmentByID(ctx, assignmentID)
	if err != nil {
		return err
	}

	err = e.tx.InTx(ctx, func(tx TxStore) error {
		if err := tx.DeleteAssignment(ctx, assignment.AssignmentID); err != nil {
			return err
		}
		return tx.SetJobStatus(ctx, assignment.JobID, domain.JobStatusPending)
	})
	if err != nil {
		return fmt.Errorf("failed to commit unassignment: %w", err)
	}

	e.logger.Info("assignment removed",
		slog.String("assignment_id", assignment.AssignmentID),
		slog.String("job_id", assignment.JobID),
	)
	return nil
}

func (e *Engine) checkVehicle(ctx context.Context, vehicleID string, job *model.Job, active []model.AssignmentWithJob) error {
	vehicle, err := e.store.VehicleByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if !vehicle.Active {
		return domain.ErrVehicleNotFound
	}
	if job.PaxCount > vehicle.SeatCapacity {
		return &domain.CapacityError{
			JobRef:       job.Ref,
			PaxCount:     job.PaxCount,
			SeatCapacity: vehicle.SeatCapacity,
		}
	}
	if conflict := e.checker.CheckVehicle(vehicleID, forVehicle(active, vehicleID)); conflict != nil {
		return conflict
	}
	return nil
}

func (e *Engine) checkDriver(ctx context.Context, driverID string, candidate Timing, active []model.AssignmentWithJob) error {
	driver, err := e.store.DriverByID(ctx, driverID)
	if err != nil {
		return err
	}
	if !driver.Active {
		return domain.ErrDriverNotFound
	}
	if conflict := e.checker.CheckDriver(driverID, candidate, forDriver(active, driverID)); conflict != nil {
		return conflict
	}
	return nil
}

func (e *Engine) checkRep(ctx context.Context, repID string, job *model.Job, candidate Timing, active []model.AssignmentWithJob) error {
	// Excursions never carry a rep; rejected before availability is looked at.
	if job.ServiceType == domain.ServiceExcursion {
		return domain.ErrRepOnExcursion
	}
	rep, err := e.store.RepByID(ctx, repID)
	if err != nil {
		return err
	}
	if !rep.Active {
		return domain.ErrRepNotFound
	}
	if conflict := e.checker.CheckRep(repID, candidate, forRep(active, repID)); conflict != nil {
		return conflict
	}
	return nil
}

func (e *Engine) newNotification(repID string, a *model.Assignment, now time.Time) *model.Notification {
	return &model.Notification{
		NotificationID: uuid.New().String(),
		RepID:          repID,
		JobID:          a.JobID,
		AssignmentID:   a.AssignmentID,
		Kind:           domain.NotificationJobAssigned,
		Status:         domain.NotificationPending,
		CreatedAt:      now,
	}
}

func (e *Engine) nudge(ctx context.Context, n *model.Notification) {
	if n == nil || e.notifier == nil {
		return
	}
	if err := e.notifier.NotifyAssigned(ctx, n); err != nil {
		// The committed row keeps the notification recoverable.
		e.logger.Warn("failed to publish notification nudge",
			slog.String("notification_id", n.NotificationID),
			slog.String("error", err.Error()),
		)
	}
}

func forVehicle(all []model.AssignmentWithJob, vehicleID string) []model.AssignmentWithJob {
	var out []model.AssignmentWithJob
	for _, a := range all {
		if a.VehicleID == vehicleID {
			out = append(out, a)
		}
	}
	return out
}

func forDriver(all []model.AssignmentWithJob, driverID string) []model.AssignmentWithJob {
	var out []model.AssignmentWithJob
	for _, a := range all {
		if a.DriverID != nil && *a.DriverID == driverID {
			out = append(out, a)
		}
	}
	return out
}

func forRep(all []model.AssignmentWithJob, repID string) []model.AssignmentWithJob {
	var out []model.AssignmentWithJob
	for _, a := range all {
		if a.RepID != nil && *a.RepID == repID {
			out = append(out, a)
		}
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
