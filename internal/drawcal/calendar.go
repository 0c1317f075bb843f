package drawcal

import (
	"errors"
	"fmt"
	"time"
)

// ErrProbeLimitExceeded means no draw day was found within the probe bound.
// This is a calendar configuration failure, not a per-ticket problem: callers
// must abort the run rather than keep producing verdicts.
var ErrProbeLimitExceeded = errors.New("no draw day found within probe limit; draw calendar configuration is malformed")

// DefaultProbeLimit bounds the forward search for the next draw day.
const DefaultProbeLimit = 60

// TimeOfDay is a wall-clock time without a date
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// Config describes the draw calendar. Month-day sets use "MM-DD" keys so the
// holiday table can be updated yearly without touching code.
type Config struct {
	NoDrawWeekdays  []time.Weekday
	Holidays        []string // e.g. "12-25", "01-01"
	EarlyCutoffDays []string // e.g. "12-24", "12-31"
	RegularCutoff   TimeOfDay
	EarlyCutoff     TimeOfDay
	ProbeLimit      int
}

// DefaultConfig returns the production draw calendar: no draws on Sundays,
// Christmas and New Year, 20:00 cutoff with a 16:00 early cutoff on
// Christmas Eve and New Year's Eve.
func DefaultConfig() Config {
	return Config{
		NoDrawWeekdays:  []time.Weekday{time.Sunday},
		Holidays:        []string{"12-25", "01-01"},
		EarlyCutoffDays: []string{"12-24", "12-31"},
		RegularCutoff:   TimeOfDay{Hour: 20},
		EarlyCutoff:     TimeOfDay{Hour: 16},
		ProbeLimit:      DefaultProbeLimit,
	}
}

// Calendar decides which days host a draw and each day's order cutoff
type Calendar struct {
	noDrawWeekdays  map[time.Weekday]struct{}
	holidays        map[string]struct{}
	earlyCutoffDays map[string]struct{}
	regularCutoff   TimeOfDay
	earlyCutoff     TimeOfDay
	probeLimit      int
}

// New creates a Calendar from cfg, filling zero values from DefaultConfig
func New(cfg Config) *Calendar {
	def := DefaultConfig()
	if cfg.NoDrawWeekdays == nil {
		cfg.NoDrawWeekdays = def.NoDrawWeekdays
	}
	if cfg.Holidays == nil {
		cfg.Holidays = def.Holidays
	}
	if cfg.EarlyCutoffDays == nil {
		cfg.EarlyCutoffDays = def.EarlyCutoffDays
	}
	if cfg.RegularCutoff == (TimeOfDay{}) {
		cfg.RegularCutoff = def.RegularCutoff
	}
	if cfg.EarlyCutoff == (TimeOfDay{}) {
		cfg.EarlyCutoff = def.EarlyCutoff
	}
	if cfg.ProbeLimit <= 0 {
		cfg.ProbeLimit = def.ProbeLimit
	}

	cal := &Calendar{
		noDrawWeekdays:  make(map[time.Weekday]struct{}, len(cfg.NoDrawWeekdays)),
		holidays:        make(map[string]struct{}, len(cfg.Holidays)),
		earlyCutoffDays: make(map[string]struct{}, len(cfg.EarlyCutoffDays)),
		regularCutoff:   cfg.RegularCutoff,
		earlyCutoff:     cfg.EarlyCutoff,
		probeLimit:      cfg.ProbeLimit,
	}
	for _, wd := range cfg.NoDrawWeekdays {
		cal.noDrawWeekdays[wd] = struct{}{}
	}
	for _, md := range cfg.Holidays {
		cal.holidays[md] = struct{}{}
	}
	for _, md := range cfg.EarlyCutoffDays {
		cal.earlyCutoffDays[md] = struct{}{}
	}
	return cal
}

// monthDayKey renders the Brazil-local month and day as "MM-DD"
func monthDayKey(day time.Time) string {
	return day.In(Location).Format("01-02")
}

// IsNoDrawDay reports whether the Brazil-local day of t hosts no draw
func (c *Calendar) IsNoDrawDay(t time.Time) bool {
	local := t.In(Location)
	if _, ok := c.noDrawWeekdays[local.Weekday()]; ok {
		return true
	}
	_, ok := c.holidays[monthDayKey(local)]
	return ok
}

// CutoffTimeOfDay returns the order cutoff wall time for the given day
func (c *Calendar) CutoffTimeOfDay(day time.Time) TimeOfDay {
	if _, ok := c.earlyCutoffDays[monthDayKey(day)]; ok {
		return c.earlyCutoff
	}
	return c.regularCutoff
}

// CutoffInstant returns the absolute instant of the given day's order cutoff
func (c *Calendar) CutoffInstant(day time.Time) time.Time {
	local := day.In(Location)
	cutoff := c.CutoffTimeOfDay(local)
	return FromLocalFields(local.Year(), local.Month(), local.Day(), cutoff.Hour, cutoff.Minute, cutoff.Second)
}

// nextDrawDayFrom advances day (inclusive) to the first day hosting a draw,
// bounded by the probe limit.
func (c *Calendar) nextDrawDayFrom(day time.Time) (time.Time, error) {
	probe := StartOfLocalDay(day)
	for i := 0; i < c.probeLimit; i++ {
		if !c.IsNoDrawDay(probe) {
			return probe, nil
		}
		probe = AddLocalDays(probe, 1)
	}
	return time.Time{}, fmt.Errorf("probing from %s: %w", StartOfLocalDay(day).Format("2006-01-02"), ErrProbeLimitExceeded)
}
