package certificates

import "time"

// ExpiringWindowDays is the fixed lookahead window for flagging certificates
// nearing expiry.
const ExpiringWindowDays = 30

// DeriveStatus maps an optional expiry date and an explicit as-of date to a
// lifecycle status, evaluated at day granularity. It is pure and idempotent;
// asOf is always passed in so the engine never reads a global clock.
func DeriveStatus(expiry *time.Time, asOf time.Time) Status {
	if expiry == nil {
		return StatusUploaded
	}
	e := truncateToDay(*expiry)
	a := truncateToDay(asOf)
	switch {
	case e.Before(a):
		return StatusExpired
	case e.Before(a.AddDate(0, 0, ExpiringWindowDays)):
		return StatusExpiring
	default:
		return StatusValidated
	}
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
