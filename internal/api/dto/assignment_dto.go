package dto

type AssignRequest struct {
	JobID      string `json:"job_id" binding:"required"`
	VehicleID  string `json:"vehicle_id" binding:"required"`
	DriverID   string `json:"driver_id"`
	RepID      string `json:"rep_id"`
	AssignedBy string `json:"assigned_by" binding:"required"`
}

type ReassignRequest struct {
	VehicleID  string `json:"vehicle_id"`
	DriverID   string `json:"driver_id"`
	RepID      string `json:"rep_id"`
	AssignedBy string `json:"assigned_by" binding:"required"`
}

type AssignmentDTO struct {
	AssignmentID string `json:"assignment_id"`
	JobID        string `json:"job_id"`
	VehicleID    string `json:"vehicle_id"`
	DriverID     string `json:"driver_id,omitempty"`
	RepID        string `json:"rep_id,omitempty"`
	DriverStatus string `json:"driver_status"`
	RepStatus    string `json:"rep_status"`
	AssignedBy   string `json:"assigned_by"`
	JobDate      string `json:"job_date"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type AssignmentSummaryDTO struct {
	AssignmentID string `json:"assignment_id"`
	VehicleID    string `json:"vehicle_id"`
	VehiclePlate string `json:"vehicle_plate"`
	VehicleType  string `json:"vehicle_type"`
	DriverID     string `json:"driver_id,omitempty"`
	DriverName   string `json:"driver_name,omitempty"`
	DriverStatus string `json:"driver_status,omitempty"`
	RepID        string `json:"rep_id,omitempty"`
	RepName      string `json:"rep_name,omitempty"`
	RepStatus    string `json:"rep_status,omitempty"`
}

type DayJobDTO struct {
	JobID         string                `json:"job_id"`
	Ref           string                `json:"ref"`
	ServiceType   string                `json:"service_type"`
	Status        string                `json:"status"`
	PaxCount      int                   `json:"pax_count"`
	FlightNo      string                `json:"flight_no,omitempty"`
	ArrivalTime   string                `json:"arrival_time,omitempty"`
	DepartureTime string                `json:"departure_time,omitempty"`
	PickupTime    string                `json:"pickup_time,omitempty"`
	Assignment    *AssignmentSummaryDTO `json:"assignment,omitempty"`
}

type DayViewResponse struct {
	Date       string      `json:"date"`
	Arrivals   []DayJobDTO `json:"arrivals"`
	Departures []DayJobDTO `json:"departures"`
	Other      []DayJobDTO `json:"other"`
}

type VehicleDTO struct {
	VehicleID    string `json:"vehicle_id"`
	PlateNo      string `json:"plate_no"`
	VehicleType  string `json:"vehicle_type"`
	SeatCapacity int    `json:"seat_capacity"`
}

type PersonDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type ErrorResponse struct {
	Error         string `json:"error"`
	CollidingJob  string `json:"colliding_job_ref,omitempty"`
	NextAvailable string `json:"next_available,omitempty"`
}
