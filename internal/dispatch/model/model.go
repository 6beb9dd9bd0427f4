package model

import (
	"time"

	"github.com/transferhq/dispatch-be/internal/dispatch/domain"
)

// Job is a booking-subsystem record. The engine reads everything and
// transitions only Status.
type Job struct {
	JobID       string             `db:"job_id"`
	Ref         string             `db:"ref"`
	ServiceType domain.ServiceType `db:"service_type"`
	JobDate     time.Time          `db:"job_date"`
	PaxCount    int                `db:"pax_count"`
	Status      domain.JobStatus   `db:"status"`
	PickupTime  *time.Time         `db:"pickup_time"`
	CreatedAt   time.Time          `db:"created_at"`
	UpdatedAt   time.Time          `db:"updated_at"`
	DeletedAt   *time.Time         `db:"deleted_at"`
}

// Flight carries the flight details attached to at most one job.
type Flight struct {
	JobID         string     `db:"job_id"`
	FlightNo      string     `db:"flight_no"`
	ArrivalTime   *time.Time `db:"arrival_time"`
	DepartureTime *time.Time `db:"departure_time"`
}

// Vehicle is a fleet master record. SeatCapacity is immutable here.
type Vehicle struct {
	VehicleID    string           `db:"vehicle_id"`
	PlateNo      string           `db:"plate_no"`
	VehicleType  string           `db:"vehicle_type"`
	SeatCapacity int              `db:"seat_capacity"`
	Ownership    domain.Ownership `db:"ownership"`
	Active       bool             `db:"active"`
	DeletedAt    *time.Time       `db:"deleted_at"`
}

// Driver is an HR master record.
type Driver struct {
	DriverID  string     `db:"driver_id"`
	Name      string     `db:"name"`
	Phone     string     `db:"phone"`
	Active    bool       `db:"active"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// Rep is a customer-facing representative. FeePerFlight is carried for the
// billing subsystem and never read by the engine.
type Rep struct {
	RepID        string     `db:"rep_id"`
	Name         string     `db:"name"`
	Phone        string     `db:"phone"`
	FeePerFlight float64    `db:"fee_per_flight"`
	Active       bool       `db:"active"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

// Assignment joins exactly one job to a vehicle and optionally a driver
// and/or a rep. JobDate is denormalized from the job so the storage layer
// can index same-date exclusivity.
type Assignment struct {
	AssignmentID string               `db:"assignment_id"`
	JobID        string               `db:"job_id"`
	VehicleID    string               `db:"vehicle_id"`
	DriverID     *string              `db:"driver_id"`
	RepID        *string              `db:"rep_id"`
	DriverStatus domain.ConfirmStatus `db:"driver_status"`
	RepStatus    domain.ConfirmStatus `db:"rep_status"`
	AssignedBy   string               `db:"assigned_by"`
	JobDate      time.Time            `db:"job_date"`
	CreatedAt    time.Time            `db:"created_at"`
	UpdatedAt    time.Time            `db:"updated_at"`
}

// Notification is the record the engine writes in the same transaction as
// the assignment. Delivery is the worker's job.
type Notification struct {
	NotificationID string                    `db:"notification_id"`
	RepID          string                    `db:"rep_id"`
	JobID          string                    `db:"job_id"`
	AssignmentID   string                    `db:"assignment_id"`
	Kind           string                    `db:"kind"`
	Status         domain.NotificationStatus `db:"status"`
	CreatedAt      time.Time                 `db:"created_at"`
}

// AssignmentWithJob is an active assignment joined with the timing fields
// of its job, which is what the availability checker needs.
type AssignmentWithJob struct {
	AssignmentID    string             `db:"assignment_id"`
	JobID           string             `db:"job_id"`
	JobRef          string             `db:"ref"`
	ServiceType     domain.ServiceType `db:"service_type"`
	JobStatus       domain.JobStatus   `db:"status"`
	VehicleID       string             `db:"vehicle_id"`
	DriverID        *string            `db:"driver_id"`
	RepID           *string            `db:"rep_id"`
	PickupTime      *time.Time         `db:"pickup_time"`
	FlightNo        string             `db:"flight_no"`
	FlightArrival   *time.Time         `db:"arrival_time"`
	FlightDeparture *time.Time         `db:"departure_time"`
}

// DayJob is one row of the day view: a job with its flight and, when
// assigned, the attached resources.
type DayJob struct {
	JobID           string             `db:"job_id"`
	Ref             string             `db:"ref"`
	ServiceType     domain.ServiceType `db:"service_type"`
	Status          domain.JobStatus   `db:"status"`
	PaxCount        int                `db:"pax_count"`
	PickupTime      *time.Time         `db:"pickup_time"`
	CreatedAt       time.Time          `db:"created_at"`
	FlightNo        string             `db:"flight_no"`
	FlightArrival   *time.Time         `db:"arrival_time"`
	FlightDeparture *time.Time         `db:"departure_time"`
	AssignmentID    *string            `db:"assignment_id"`
	VehicleID       *string            `db:"vehicle_id"`
	VehiclePlate    *string            `db:"plate_no"`
	VehicleType     *string            `db:"vehicle_type"`
	DriverID        *string            `db:"driver_id"`
	DriverName      *string            `db:"driver_name"`
	DriverStatus    *string            `db:"driver_status"`
	RepID           *string            `db:"rep_id"`
	RepName         *string            `db:"rep_name"`
	RepStatus       *string            `db:"rep_status"`
}
