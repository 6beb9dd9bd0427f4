package domain

import (
	"errors"
	"fmt"
	"time"
)

// Not-found errors cover absent, soft-deleted and inactive records alike:
// a resource the dispatcher cannot use might as well not exist.
var (
	ErrJobNotFound        = errors.New("job not found")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrDriverNotFound     = errors.New("driver not found")
	ErrRepNotFound        = errors.New("rep not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// Invalid-state errors: the request is well-formed but the job cannot
// accept it in its current shape.
var (
	ErrJobCancelled       = errors.New("job is cancelled")
	ErrJobAlreadyAssigned = errors.New("job already has an assignment")
	ErrRepOnExcursion     = errors.New("reps cannot be assigned to excursion jobs")
)

// ErrNoReassignFields is returned when a reassign request names nothing to change.
var ErrNoReassignFields = errors.New("reassign requires at least one of vehicle, driver or rep")

// CapacityError is returned when a job's pax count exceeds the vehicle's seats.
type CapacityError struct {
	JobRef       string
	PaxCount     int
	SeatCapacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("job %s has %d pax but vehicle seats %d", e.JobRef, e.PaxCount, e.SeatCapacity)
}

// ConflictError is returned when a resource is already committed to another
// job on the same date. JobRef identifies the colliding job so the operator
// can resolve the clash without another lookup. NextAvailable is set for
// time-based conflicts only.
type ConflictError struct {
	Resource      ResourceKind
	ResourceID    string
	JobID         string
	JobRef        string
	NextAvailable *time.Time
}

func (e *ConflictError) Error() string {
	if e.NextAvailable != nil {
		return fmt.Sprintf("%s %s is busy with job %s, next available at %s",
			e.Resource, e.ResourceID, e.JobRef, e.NextAvailable.Format(time.RFC3339))
	}
	return fmt.Sprintf("%s %s is busy with job %s for the whole day", e.Resource, e.ResourceID, e.JobRef)
}

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrJobNotFound) ||
		errors.Is(err, ErrVehicleNotFound) ||
		errors.Is(err, ErrDriverNotFound) ||
		errors.Is(err, ErrRepNotFound) ||
		errors.Is(err, ErrAssignmentNotFound)
}

// IsInvalidState reports whether err is a state-precondition failure.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrJobCancelled) ||
		errors.Is(err, ErrJobAlreadyAssigned) ||
		errors.Is(err, ErrRepOnExcursion)
}

// IsValidation reports whether err is an input-validation failure.
func IsValidation(err error) bool {
	var capErr *CapacityError
	return errors.Is(err, ErrNoReassignFields) || errors.As(err, &capErr)
}
