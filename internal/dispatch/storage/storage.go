package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/transferhq/dispatch-be/internal/dispatch"
	"github.com/transferhq/dispatch-be/internal/dispatch/domain"
	"github.com/transferhq/dispatch-be/internal/dispatch/model"
	"github.com/transferhq/dispatch-be/shared/postgresql"
)

// Storage is the PostgreSQL implementation of the engine's Store and
// TxRunner. Soft-deleted rows are filtered by every query.
type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{db: pg.GetDB()}
}

const jobColumns = `
	job_id, ref, service_type, job_date, pax_count, status,
	pickup_time, created_at, updated_at, deleted_at
`

func (s *Storage) JobByID(ctx context.Context, jobID string) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1 AND deleted_at IS NULL`

	var job model.Job
	err := s.db.GetContext(ctx, &job, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

func (s *Storage) FlightByJobID(ctx context.Context, jobID string) (*model.Flight, error) {
	query := `
		SELECT job_id, COALESCE(flight_no, '') AS flight_no, arrival_time, departure_time
		FROM flights
		WHERE job_id = $1
	`

	var flight model.Flight
	err := s.db.GetContext(ctx, &flight, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	return &flight, nil
}

func (s *Storage) VehicleByID(ctx context.Context, vehicleID string) (*model.Vehicle, error) {
	query := `
		SELECT vehicle_id, plate_no, vehicle_type, seat_capacity, ownership, active, deleted_at
		FROM vehicles
		WHERE vehicle_id = $1 AND deleted_at IS NULL
	`

	var vehicle model.Vehicle
	err := s.db.GetContext(ctx, &vehicle, query, vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &vehicle, nil
}

func (s *Storage) DriverByID(ctx context.Context, driverID string) (*model.Driver, error) {
	query := `
		SELECT driver_id, name, phone, active, deleted_at
		FROM drivers
		WHERE driver_id = $1 AND deleted_at IS NULL
	`

	var driver model.Driver
	err := s.db.GetContext(ctx, &driver, query, driverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return &driver, nil
}

func (s *Storage) RepByID(ctx context.Context, repID string) (*model.Rep, error) {
	query := `
		SELECT rep_id, name, phone, fee_per_flight, active, deleted_at
		FROM reps
		WHERE rep_id = $1 AND deleted_at IS NULL
	`

	var rep model.Rep
	err := s.db.GetContext(ctx, &rep, query, repID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRepNotFound
		}
		return nil, fmt.Errorf("failed to get rep: %w", err)
	}
	return &rep, nil
}

const assignmentColumns = `
	assignment_id, job_id, vehicle_id, driver_id, rep_id,
	driver_status, rep_status, assigned_by, job_date, created_at, updated_at
`

func (s *Storage) AssignmentByID(ctx context.Context, assignmentID string) (*model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE assignment_id = $1`

	var a model.Assignment
	err := s.db.GetContext(ctx, &a, query, assignmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &a, nil
}

func (s *Storage) AssignmentByJobID(ctx context.Context, jobID string) (*model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE job_id = $1`

	var a model.Assignment
	err := s.db.GetContext(ctx, &a, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment by job: %w", err)
	}
	return &a, nil
}

func (s *Storage) ActiveAssignmentsOnDate(ctx context.Context, date time.Time, excludeAssignmentID string) ([]model.AssignmentWithJob, error) {
	query := `
		SELECT
			a.assignment_id, a.job_id, j.ref, j.service_type, j.status,
			a.vehicle_id, a.driver_id, a.rep_id,
			j.pickup_time,
			COALESCE(f.flight_no, '') AS flight_no,
			f.arrival_time, f.departure_time
		FROM assignments a
		JOIN jobs j ON j.job_id = a.job_id
		LEFT JOIN flights f ON f.job_id = j.job_id
		WHERE j.job_date = $1::date
		  AND j.deleted_at IS NULL
		  AND j.status NOT IN ($2, $3)
		  AND ($4::uuid IS NULL OR a.assignment_id <> $4::uuid)
		ORDER BY a.created_at, a.assignment_id
	`

	var rows []model.AssignmentWithJob
	err := s.db.SelectContext(ctx, &rows, query,
		dateOnly(date), domain.JobStatusCancelled, domain.JobStatusCompleted, nullUUID(excludeAssignmentID))
	if err != nil {
		return nil, fmt.Errorf("failed to list active assignments: %w", err)
	}
	return rows, nil
}

func (s *Storage) JobsOnDate(ctx context.Context, date time.Time) ([]model.DayJob, error) {
	query := `
		SELECT
			j.job_id, j.ref, j.service_type, j.status, j.pax_count,
			j.pickup_time, j.created_at,
			COALESCE(f.flight_no, '') AS flight_no,
			f.arrival_time, f.departure_time,
			a.assignment_id, a.vehicle_id, v.plate_no, v.vehicle_type,
			a.driver_id, d.name AS driver_name, a.driver_status,
			a.rep_id, r.name AS rep_name, a.rep_status
		FROM jobs j
		LEFT JOIN flights f ON f.job_id = j.job_id
		LEFT JOIN assignments a ON a.job_id = j.job_id
		LEFT JOIN vehicles v ON v.vehicle_id = a.vehicle_id
		LEFT JOIN drivers d ON d.driver_id = a.driver_id
		LEFT JOIN reps r ON r.rep_id = a.rep_id
		WHERE j.job_date = $1::date AND j.deleted_at IS NULL
		ORDER BY j.created_at, j.job_id
	`

	var rows []model.DayJob
	if err := s.db.SelectContext(ctx, &rows, query, dateOnly(date)); err != nil {
		return nil, fmt.Errorf("failed to list jobs for date: %w", err)
	}
	return rows, nil
}

func (s *Storage) FleetVehicles(ctx context.Context) ([]model.Vehicle, error) {
	query := `
		SELECT vehicle_id, plate_no, vehicle_type, seat_capacity, ownership, active, deleted_at
		FROM vehicles
		WHERE active AND ownership = $1 AND deleted_at IS NULL
		ORDER BY plate_no
	`

	var vehicles []model.Vehicle
	if err := s.db.SelectContext(ctx, &vehicles, query, domain.OwnershipOwned); err != nil {
		return nil, fmt.Errorf("failed to list fleet vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *Storage) ActiveDrivers(ctx context.Context) ([]model.Driver, error) {
	query := `
		SELECT driver_id, name, phone, active, deleted_at
		FROM drivers
		WHERE active AND deleted_at IS NULL
		ORDER BY name
	`

	var drivers []model.Driver
	if err := s.db.SelectContext(ctx, &drivers, query); err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return drivers, nil
}

func (s *Storage) ActiveReps(ctx context.Context) ([]model.Rep, error) {
	query := `
		SELECT rep_id, name, phone, fee_per_flight, active, deleted_at
		FROM reps
		WHERE active AND deleted_at IS NULL
		ORDER BY name
	`

	var reps []model.Rep
	if err := s.db.SelectContext(ctx, &reps, query); err != nil {
		return nil, fmt.Errorf("failed to list reps: %w", err)
	}
	return reps, nil
}

// InTx runs fn inside a SERIALIZABLE transaction. Together with the unique
// index on assignments(job_id) this is the backstop against the
// check-then-act window: a racing conflicting commit fails instead of
// breaking exclusivity.
func (s *Storage) InTx(ctx context.Context, fn func(tx dispatch.TxStore) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&txStore{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (after: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// nullUUID maps an optional uuid parameter to NULL when empty. The ::uuid
// cast in the query types the placeholder; an empty string would pin it as
// text and uuid <> text has no operator.
func nullUUID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}

// dateOnly strips the time of day so the ::date casts in the day queries
// always land on the caller's calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// txStore is the write side, bound to one open transaction.
type txStore struct {
	tx *sqlx.Tx
}

func (t *txStore) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	query := `
		INSERT INTO assignments (
			assignment_id, job_id, vehicle_id, driver_id, rep_id,
			driver_status, rep_status, assigned_by, job_date, created_at, updated_at
		) VALUES (
			:assignment_id, :job_id, :vehicle_id, :driver_id, :rep_id,
			:driver_status, :rep_status, :assigned_by, :job_date, :created_at, :updated_at
		)
	`

	if _, err := t.tx.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (t *txStore) UpdateAssignment(ctx context.Context, a *model.Assignment) error {
	query := `
		UPDATE assignments
		SET vehicle_id = :vehicle_id,
		    driver_id = :driver_id,
		    rep_id = :rep_id,
		    driver_status = :driver_status,
		    rep_status = :rep_status,
		    updated_at = :updated_at
		WHERE assignment_id = :assignment_id
	`

	if _, err := t.tx.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	return nil
}

func (t *txStore) DeleteAssignment(ctx context.Context, assignmentID string) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM assignments WHERE assignment_id = $1`, assignmentID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

func (t *txStore) SetJobStatus(ctx context.Context, jobID string, status domain.JobStatus) error {
	query := `UPDATE jobs SET status = $1, updated_at = NOW() WHERE job_id = $2 AND deleted_at IS NULL`

	res, err := t.tx.ExecContext(ctx, query, status, jobID)
	if err != nil {
		return fmt.Errorf("failed to set job status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (t *txStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (
			notification_id, rep_id, job_id, assignment_id, kind, status, created_at
		) VALUES (
			:notification_id, :rep_id, :job_id, :assignment_id, :kind, :status, :created_at
		)
	`

	if _, err := t.tx.NamedExecContext(ctx, query, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}
