package domain

// ServiceType classifies what kind of transport a job is. The set is
// closed: the anchor resolver and the availability rules switch on it
// exhaustively.
type ServiceType string

const (
	ServiceArrival   ServiceType = "ARR"
	ServiceDeparture ServiceType = "DEP"
	ServiceExcursion ServiceType = "EXCURSION"
	ServiceTransfer  ServiceType = "TRANSFER"
	ServiceCity      ServiceType = "CITY"
)

// Valid reports whether s is one of the known service types.
func (s ServiceType) Valid() bool {
	switch s {
	case ServiceArrival, ServiceDeparture, ServiceExcursion, ServiceTransfer, ServiceCity:
		return true
	}
	return false
}

// JobStatus is the lifecycle state of a job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusAssigned   JobStatus = "ASSIGNED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusCancelled  JobStatus = "CANCELLED"
	JobStatusNoShow     JobStatus = "NO_SHOW"
)

// Terminal reports whether a job in this status no longer occupies its
// resources. Terminal jobs are invisible to conflict checks.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// ConfirmStatus is the per-party confirmation lifecycle on an assignment.
// Drivers and reps confirm independently.
type ConfirmStatus string

const (
	ConfirmPending  ConfirmStatus = "PENDING"
	ConfirmAccepted ConfirmStatus = "CONFIRMED"
	ConfirmDeclined ConfirmStatus = "DECLINED"
)

// Ownership distinguishes fleet vehicles from contracted ones. Contracted
// vehicles are never offered by the available-vehicle listing.
type Ownership string

const (
	OwnershipOwned      Ownership = "OWNED"
	OwnershipContracted Ownership = "CONTRACTED"
)

// NotificationStatus tracks a notification record from the moment the
// engine writes it until the delivery worker resolves it.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "PENDING"
	NotificationSending NotificationStatus = "SENDING"
	NotificationSent    NotificationStatus = "SENT"
	NotificationFailed  NotificationStatus = "FAILED"
)

// NotificationJobAssigned is the kind written when a rep is attached to a job.
const NotificationJobAssigned = "JOB_ASSIGNED"

// ResourceKind names the three assignable resource pools.
type ResourceKind string

const (
	ResourceVehicle ResourceKind = "vehicle"
	ResourceDriver  ResourceKind = "driver"
	ResourceRep     ResourceKind = "rep"
)
