package heuristics

import (
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Named constants so boundary behavior stays pinned by tests. Downstream
// results depend on these exact values; do not tune them.
const (
	// TwoDigitYearPivot maps 2-digit years: >= pivot to 1900s, < pivot to 2000s.
	TwoDigitYearPivot = 70
	// DayFirstThreshold: a leading numeric token above this is treated as a day.
	DayFirstThreshold = 12
)

var (
	numericDate   = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	isoDate       = regexp.MustCompile(`\b(\d{4})[/-](\d{1,2})[/-](\d{1,2})\b`)
	monthNameDate = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ExtractDates scans normalized text with the three date grammars, collects
// every match, normalizes each to a calendar date, drops unparseable tokens,
// deduplicates and returns the survivors in ascending order.
func ExtractDates(text string) []time.Time {
	var (
		mu    sync.Mutex
		found = map[string]time.Time{}
	)
	collect := func(dates []time.Time) {
		mu.Lock()
		for _, d := range dates {
			found[d.Format("2006-01-02")] = d
		}
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for _, scan := range []func(string) []time.Time{scanNumeric, scanISO, scanMonthName} {
		wg.Add(1)
		go func(scan func(string) []time.Time) {
			defer wg.Done()
			collect(scan(text))
		}(scan)
	}
	wg.Wait()

	keys := make([]string, 0, len(found))
	for k := range found {
		keys = append(keys, k)
	}
	sort.Strings(keys) // ISO strings sort chronologically

	out := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		out = append(out, found[k])
	}
	return out
}

// DateRange returns the earliest extracted date as the issue date and the
// latest as the expiry date. This is a deliberate simplification: an unrelated
// date in the document (a signature date, say) will skew the result.
func DateRange(text string) (issue, expiry *time.Time) {
	dates := ExtractDates(text)
	if len(dates) == 0 {
		return nil, nil
	}
	first, last := dates[0], dates[len(dates)-1]
	return &first, &last
}

func scanNumeric(text string) []time.Time {
	var out []time.Time
	for _, m := range numericDate.FindAllStringSubmatch(text, -1) {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		year, ok := normalizeYear(m[3])
		if !ok {
			continue
		}
		// Ambiguity rule: a leading token that cannot be a month is a day;
		// everything else is read month-first. Heuristic, not a guarantee.
		day, month := b, a
		if a > DayFirstThreshold {
			day, month = a, b
		}
		if d, ok := makeDate(year, month, day); ok {
			out = append(out, d)
		}
	}
	return out
}

func scanISO(text string) []time.Time {
	var out []time.Time
	for _, m := range isoDate.FindAllStringSubmatch(text, -1) {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if d, ok := makeDate(year, month, day); ok {
			out = append(out, d)
		}
	}
	return out
}

func scanMonthName(text string) []time.Time {
	var out []time.Time
	for _, m := range monthNameDate.FindAllStringSubmatch(text, -1) {
		month, ok := monthsByPrefix[lowerPrefix3(m[1])]
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if d, ok := makeDate(year, int(month), day); ok {
			out = append(out, d)
		}
	}
	return out
}

func normalizeYear(raw string) (int, bool) {
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	switch len(raw) {
	case 2:
		if year >= TwoDigitYearPivot {
			return 1900 + year, true
		}
		return 2000 + year, true
	case 4:
		return year, true
	default:
		return 0, false
	}
}

// makeDate validates the calendar date; time.Date silently rolls over
// out-of-range components, so round-trip the fields to reject e.g. Feb 31.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func lowerPrefix3(s string) string {
	if len(s) < 3 {
		return ""
	}
	b := []byte(s[:3])
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
