package dispatch

import (
	"time"

	"github.com/transferhq/dispatch-be/internal/dispatch/domain"
	"github.com/transferhq/dispatch-be/internal/dispatch/model"
)

// Policy holds the tunable availability rules.
type Policy struct {
	// MinGap is the minimum separation between two anchor times for the
	// same driver or rep.
	MinGap time.Duration
	// FullDayBlockOnMissingAnchor makes a job without an anchor time (an
	// excursion, or a timed job missing its flight data) reserve the
	// driver/rep for the entire date.
	FullDayBlockOnMissingAnchor bool
}

// DefaultPolicy returns the operator's standard rules: 3 hours between
// airport runs, excursions block the day.
func DefaultPolicy() Policy {
	return Policy{
		MinGap:                      3 * time.Hour,
		FullDayBlockOnMissingAnchor: true,
	}
}

// Checker decides whether attaching a resource to a job would collide with
// the resource's other active work that day. It is a pure component: the
// caller supplies the candidate timing and the resource's same-date
// non-terminal assignments.
type Checker struct {
	policy Policy
}

func NewChecker(policy Policy) *Checker {
	return &Checker{policy: policy}
}

// CheckVehicle flags any existing same-date assignment as a conflict. A
// vehicle serves at most one active job per day regardless of time gap,
// stricter than the people-based resources.
func (c *Checker) CheckVehicle(vehicleID string, existing []model.AssignmentWithJob) *domain.ConflictError {
	for _, a := range existing {
		return &domain.ConflictError{
			Resource:   domain.ResourceVehicle,
			ResourceID: vehicleID,
			JobID:      a.JobID,
			JobRef:     a.JobRef,
		}
	}
	return nil
}

// CheckDriver applies the gap rule against each of the driver's existing
// same-date assignments. A missing anchor on either side blocks the whole
// day when the policy says so.
func (c *Checker) CheckDriver(driverID string, candidate Timing, existing []model.AssignmentWithJob) *domain.ConflictError {
	return c.checkTimed(domain.ResourceDriver, driverID, candidate, existing, false)
}

// CheckRep applies the driver rule plus the same-flight exception: two jobs
// with an identical non-empty flight number and identical anchor time may
// share one rep.
func (c *Checker) CheckRep(repID string, candidate Timing, existing []model.AssignmentWithJob) *domain.ConflictError {
	return c.checkTimed(domain.ResourceRep, repID, candidate, existing, true)
}

func (c *Checker) checkTimed(kind domain.ResourceKind, resourceID string, candidate Timing, existing []model.AssignmentWithJob, sameFlightOK bool) *domain.ConflictError {
	candAnchor, candOK := Anchor(candidate)

	for _, a := range existing {
		exAnchor, exOK := Anchor(timingOfAssignment(a))

		if !candOK || !exOK {
			if !c.policy.FullDayBlockOnMissingAnchor {
				continue
			}
			return &domain.ConflictError{
				Resource:   kind,
				ResourceID: resourceID,
				JobID:      a.JobID,
				JobRef:     a.JobRef,
			}
		}

		if sameFlightOK && candidate.FlightNo != "" &&
			candidate.FlightNo == a.FlightNo && candAnchor.Equal(exAnchor) {
			// One rep can greet several jobs off the same flight.
			continue
		}

		if gap(candAnchor, exAnchor) < c.policy.MinGap {
			next := exAnchor.Add(c.policy.MinGap)
			return &domain.ConflictError{
				Resource:      kind,
				ResourceID:    resourceID,
				JobID:         a.JobID,
				JobRef:        a.JobRef,
				NextAvailable: &next,
			}
		}
	}
	return nil
}

func gap(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}
