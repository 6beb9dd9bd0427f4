package dispatch

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/transferhq/dispatch-be/internal/dispatch/domain"
	"github.com/transferhq/dispatch-be/internal/dispatch/model"
)

// DayView groups a date's jobs into the three operational buckets the
// dispatch board shows.
type DayView struct {
	Date       time.Time
	Arrivals   []model.DayJob
	Departures []model.DayJob
	Other      []model.DayJob
}

// DayView builds the read-only day view for a date. Arrivals and
// departures are ordered by anchor time ascending with missing anchors
// last; creation order breaks ties and orders the "other" bucket.
func (e *Engine) DayView(ctx context.Context, date time.Time) (*DayView, error) {
	jobs, err := e.store.JobsOnDate(ctx, date)
	if err != nil {
		return nil, err
	}

	view := &DayView{Date: date}
	for _, j := range jobs {
		switch j.ServiceType {
		case domain.ServiceArrival:
			view.Arrivals = append(view.Arrivals, j)
		case domain.ServiceDeparture:
			view.Departures = append(view.Departures, j)
		default:
			view.Other = append(view.Other, j)
		}
	}

	slices.SortStableFunc(view.Arrivals, compareByAnchor)
	slices.SortStableFunc(view.Departures, compareByAnchor)
	slices.SortStableFunc(view.Other, compareByCreation)
	return view, nil
}

func compareByAnchor(a, b model.DayJob) int {
	anchorA, okA := Anchor(timingOfDayJob(a))
	anchorB, okB := Anchor(timingOfDayJob(b))
	switch {
	case okA && okB:
		if c := anchorA.Compare(anchorB); c != 0 {
			return c
		}
	case okA:
		return -1
	case okB:
		return 1
	}
	return compareByCreation(a, b)
}

func compareByCreation(a, b model.DayJob) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.JobID, b.JobID)
}
