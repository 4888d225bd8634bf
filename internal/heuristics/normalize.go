// Package heuristics contains the deterministic pattern rules that turn raw
// extracted document text into typed certificate fields. All functions are
// pure; none of them read a clock or any external state.
package heuristics

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize collapses all whitespace runs to single spaces. OCR output is full
// of line-break noise; every matcher in this package expects normalized input.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
