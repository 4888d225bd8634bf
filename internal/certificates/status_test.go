package certificates

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveStatusNoExpiry(t *testing.T) {
	for _, asOf := range []time.Time{
		date(2020, time.January, 1),
		date(2026, time.June, 15),
		date(2099, time.December, 31),
	} {
		if got := DeriveStatus(nil, asOf); got != StatusUploaded {
			t.Fatalf("asOf=%s: expected uploaded, got %s", asOf, got)
		}
	}
}

func TestDeriveStatusBoundaries(t *testing.T) {
	asOf := date(2026, time.January, 15)
	cases := []struct {
		name   string
		expiry time.Time
		want   Status
	}{
		{"day before asOf", asOf.AddDate(0, 0, -1), StatusExpired},
		{"long expired", date(2020, time.March, 1), StatusExpired},
		{"expiry equals asOf", asOf, StatusExpiring},
		{"last day inside window", asOf.AddDate(0, 0, ExpiringWindowDays-1), StatusExpiring},
		{"first day outside window", asOf.AddDate(0, 0, ExpiringWindowDays), StatusValidated},
		{"far future", date(2030, time.January, 1), StatusValidated},
	}
	for _, tc := range cases {
		expiry := tc.expiry
		if got := DeriveStatus(&expiry, asOf); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestDeriveStatusDayGranularity(t *testing.T) {
	// A time-of-day later than asOf's on the same calendar day must not matter.
	expiry := time.Date(2026, time.January, 15, 23, 59, 0, 0, time.UTC)
	asOf := time.Date(2026, time.January, 15, 0, 1, 0, 0, time.UTC)
	if got := DeriveStatus(&expiry, asOf); got != StatusExpiring {
		t.Fatalf("expected expiring on same-day expiry, got %s", got)
	}
}

func TestDeriveStatusIdempotent(t *testing.T) {
	expiry := date(2026, time.April, 1)
	asOf := date(2026, time.March, 20)
	first := DeriveStatus(&expiry, asOf)
	second := DeriveStatus(&expiry, asOf)
	if first != second {
		t.Fatalf("expected identical results, got %s then %s", first, second)
	}
}

func TestDeriveStatusNeverInvalid(t *testing.T) {
	// invalid is reachable only through a manual edit.
	for days := -400; days <= 400; days += 7 {
		expiry := date(2026, time.January, 1).AddDate(0, 0, days)
		if got := DeriveStatus(&expiry, date(2026, time.January, 1)); got == StatusInvalid {
			t.Fatal("DeriveStatus must never produce invalid")
		}
	}
}
