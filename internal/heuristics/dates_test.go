package heuristics

import (
	"testing"
	"time"
)

func iso(t time.Time) string { return t.Format("2006-01-02") }

func TestExtractDatesNumericMonthFirst(t *testing.T) {
	dates := ExtractDates("Issued: 03/04/2026")
	if len(dates) != 1 {
		t.Fatalf("expected 1 date, got %d", len(dates))
	}
	// Leading token 3 can be a month, so it is read month-first.
	if got := iso(dates[0]); got != "2026-03-04" {
		t.Fatalf("expected 2026-03-04, got %s", got)
	}
}

func TestExtractDatesNumericDayFirst(t *testing.T) {
	dates := ExtractDates("Valid until 25/04/2026")
	if len(dates) != 1 {
		t.Fatalf("expected 1 date, got %d", len(dates))
	}
	if got := iso(dates[0]); got != "2026-04-25" {
		t.Fatalf("expected 2026-04-25, got %s", got)
	}
}

func TestExtractDatesISO(t *testing.T) {
	dates := ExtractDates("expires 2026-04-03")
	if len(dates) != 1 {
		t.Fatalf("expected 1 date, got %d", len(dates))
	}
	if got := iso(dates[0]); got != "2026-04-03" {
		t.Fatalf("expected 2026-04-03, got %s", got)
	}
}

func TestExtractDatesMonthName(t *testing.T) {
	dates := ExtractDates("Signed on March 3, 2026 in Geneva")
	if len(dates) != 1 {
		t.Fatalf("expected 1 date, got %d", len(dates))
	}
	if got := iso(dates[0]); got != "2026-03-03" {
		t.Fatalf("expected 2026-03-03, got %s", got)
	}
}

func TestExtractDatesTwoDigitYearPivot(t *testing.T) {
	cases := map[string]string{
		"01/02/70": "1970-01-02",
		"01/02/69": "2069-01-02",
		"01/02/99": "1999-01-02",
		"01/02/00": "2000-01-02",
	}
	for in, want := range cases {
		dates := ExtractDates(in)
		if len(dates) != 1 {
			t.Fatalf("%s: expected 1 date, got %d", in, len(dates))
		}
		if got := iso(dates[0]); got != want {
			t.Fatalf("%s: expected %s, got %s", in, want, got)
		}
	}
}

func TestExtractDatesDropsInvalidAndDeduplicates(t *testing.T) {
	text := "31/02/2026 then 2026-04-03 and again 03/04/2026 plus 2026-03-04"
	dates := ExtractDates(text)
	// 31 Feb is dropped; the numeric 03/04/2026 normalizes to 2026-03-04,
	// which duplicates the ISO 2026-03-04.
	if len(dates) != 2 {
		t.Fatalf("expected 2 dates, got %d: %v", len(dates), dates)
	}
	if iso(dates[0]) != "2026-03-04" || iso(dates[1]) != "2026-04-03" {
		t.Fatalf("unexpected dates: %s, %s", iso(dates[0]), iso(dates[1]))
	}
}

func TestDateRangeEarliestIssueLatestExpiry(t *testing.T) {
	issue, expiry := DateRange("Issued: 01/01/2024 Valid until: 01/01/2026")
	if issue == nil || expiry == nil {
		t.Fatal("expected both dates")
	}
	if iso(*issue) != "2024-01-01" {
		t.Fatalf("issue: expected 2024-01-01, got %s", iso(*issue))
	}
	if iso(*expiry) != "2026-01-01" {
		t.Fatalf("expiry: expected 2026-01-01, got %s", iso(*expiry))
	}
}

func TestDateRangeEmpty(t *testing.T) {
	issue, expiry := DateRange("no dates here")
	if issue != nil || expiry != nil {
		t.Fatal("expected nil dates for text without any date token")
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize("  ISCC \n\n EU\t\tCertificate \r\n ")
	if got != "ISCC EU Certificate" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
