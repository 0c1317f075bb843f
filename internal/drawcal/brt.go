package drawcal

import "time"

// Location is the fixed Brazil offset (UTC-3). Brazil stopped observing
// daylight saving in 2019, so a fixed zone is exact for all wall-clock math.
var Location = time.FixedZone("BRT", -3*60*60)

// ToLocal converts an absolute instant to Brazil-local representation.
func ToLocal(t time.Time) time.Time {
	return t.In(Location)
}

// FromLocalFields composes an absolute instant from Brazil-local calendar
// fields.
func FromLocalFields(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, Location)
}

// StartOfLocalDay zeroes the time-of-day of t in Brazil-local terms.
func StartOfLocalDay(t time.Time) time.Time {
	local := t.In(Location)
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, Location)
}

// AddLocalDays adds n whole Brazil-local days to t. With a fixed offset this
// is plain calendar arithmetic; AddDate keeps the wall clock intact.
func AddLocalDays(t time.Time, n int) time.Time {
	return t.In(Location).AddDate(0, 0, n)
}
