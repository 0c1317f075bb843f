package drawcal

import (
	"fmt"
	"time"
)

// Window is the two-draw-day eligibility window derived from one recharge.
// Day1 and Day2 are starts of Brazil-local days; Day2 is always the first
// draw day strictly after Day1.
type Window struct {
	Day1       time.Time
	Day1Cutoff time.Time
	Day2       time.Time
	Day2Cutoff time.Time
}

// Covers reports whether day (a start-of-local-day instant) is one of the
// window's two draw days
func (w Window) Covers(day time.Time) bool {
	return day.Equal(w.Day1) || day.Equal(w.Day2)
}

// After reports whether day falls past the whole window
func (w Window) After(day time.Time) bool {
	return day.After(w.Day2)
}

// EligibilityWindow computes the two draw days a recharge at instant r makes
// a player eligible for. Day1 is the first draw day still open at the
// recharge instant: a recharge on a no-draw day rolls forward to the next
// real draw day, and a recharge after a day's cutoff rolls past that day the
// same way a late ticket does. Day2 is the next draw day after Day1, never
// the calendar-next day if that day hosts no draw.
func (c *Calendar) EligibilityWindow(r time.Time) (Window, error) {
	day1, err := c.ResolveDrawDay(r)
	if err != nil {
		return Window{}, fmt.Errorf("eligibility window day1: %w", err)
	}
	day2, err := c.nextDrawDayFrom(AddLocalDays(day1, 1))
	if err != nil {
		return Window{}, fmt.Errorf("eligibility window day2: %w", err)
	}
	return Window{
		Day1:       day1,
		Day1Cutoff: c.CutoffInstant(day1),
		Day2:       day2,
		Day2Cutoff: c.CutoffInstant(day2),
	}, nil
}

// ResolveDrawDay returns the Brazil-local draw day a ticket at instant t
// counts toward: the first draw day whose cutoff is at or after t. A
// late-night submission rolls forward to the next eligible draw day, as does
// a submission made on a no-draw day.
func (c *Calendar) ResolveDrawDay(t time.Time) (time.Time, error) {
	probe := StartOfLocalDay(t)
	for i := 0; i < c.probeLimit; i++ {
		if !c.IsNoDrawDay(probe) && !c.CutoffInstant(probe).Before(t) {
			return probe, nil
		}
		probe = AddLocalDays(probe, 1)
	}
	return time.Time{}, fmt.Errorf("resolving draw day for %s: %w", t.In(Location).Format(time.RFC3339), ErrProbeLimitExceeded)
}
