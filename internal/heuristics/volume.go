package heuristics

import (
	"regexp"
	"strconv"
	"strings"
)

// volumePattern matches a number (optional thousands/decimal separator)
// immediately followed by a unit from the fixed vocabulary.
var volumePattern = regexp.MustCompile(`(?i)\b(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:[.,]\d+)?)\s*(tonnes?|tons?|mt|litres?|liters?|kilograms?|kg|gallons?)\b`)

// thousandsForm recognizes comma-grouped notation ("1,250" or "1,250.50")
// where the comma is a separator, not a decimal mark.
var thousandsForm = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)

// ExtractVolume returns the first volume mention in the text. Commas in
// thousands-grouped notation are stripped; a lone comma ("500,5") is read as
// a decimal mark.
func ExtractVolume(text string) (amount float64, unit string, ok bool) {
	m := volumePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}

	raw := m[1]
	if thousandsForm.MatchString(raw) {
		raw = strings.ReplaceAll(raw, ",", "")
	} else {
		raw = strings.ReplaceAll(raw, ",", ".")
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, "", false
	}
	return amount, strings.ToLower(m[2]), true
}
