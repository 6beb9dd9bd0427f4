package dispatch

import (
	"time"

	"github.com/transferhq/dispatch-be/internal/dispatch/domain"
	"github.com/transferhq/dispatch-be/internal/dispatch/model"
)

// Timing carries the fields anchor resolution and the availability rules
// read from a job and its flight.
type Timing struct {
	Service         domain.ServiceType
	Pickup          *time.Time
	FlightNo        string
	FlightArrival   *time.Time
	FlightDeparture *time.Time
}

// Anchor maps a job to the single timestamp used for all temporal conflict
// comparisons. Arrivals anchor on the flight's arrival, departures on the
// pickup time with the flight's departure as fallback. Every other service
// kind has no anchor, which downstream means "occupies the whole day".
func Anchor(t Timing) (time.Time, bool) {
	switch t.Service {
	case domain.ServiceArrival:
		if t.FlightArrival == nil {
			return time.Time{}, false
		}
		return *t.FlightArrival, true
	case domain.ServiceDeparture:
		if t.Pickup != nil {
			return *t.Pickup, true
		}
		if t.FlightDeparture != nil {
			return *t.FlightDeparture, true
		}
		return time.Time{}, false
	case domain.ServiceExcursion, domain.ServiceTransfer, domain.ServiceCity:
		return time.Time{}, false
	default:
		// Unknown service kinds get no anchor rather than a guessed one.
		return time.Time{}, false
	}
}

// TimingOf builds a Timing from a job and its optional flight.
func TimingOf(job *model.Job, flight *model.Flight) Timing {
	t := Timing{
		Service: job.ServiceType,
		Pickup:  job.PickupTime,
	}
	if flight != nil {
		t.FlightNo = flight.FlightNo
		t.FlightArrival = flight.ArrivalTime
		t.FlightDeparture = flight.DepartureTime
	}
	return t
}

func timingOfAssignment(a model.AssignmentWithJob) Timing {
	return Timing{
		Service:         a.ServiceType,
		Pickup:          a.PickupTime,
		FlightNo:        a.FlightNo,
		FlightArrival:   a.FlightArrival,
		FlightDeparture: a.FlightDeparture,
	}
}

func timingOfDayJob(j model.DayJob) Timing {
	return Timing{
		Service:         j.ServiceType,
		Pickup:          j.PickupTime,
		FlightNo:        j.FlightNo,
		FlightArrival:   j.FlightArrival,
		FlightDeparture: j.FlightDeparture,
	}
}
