package utils

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify lowercases, strips accents and collapses everything that is not
// alphanumeric into single dashes. Matches how team and group slugs were
// generated historically, so re-imports hit the same rows.
func Slugify(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, value)
	if err != nil {
		folded = value
	}

	var b strings.Builder
	lastDash := true // avoid a leading dash
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// NormalizeLabel lowercases and strips accents and punctuation but keeps
// spaces, for keyword matching against free-text event labels.
func NormalizeLabel(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, value)
	if err != nil {
		folded = value
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// NormalizeKey reduces a table header to its lowercase alphanumeric runes,
// so "G.F." and "gf" address the same column.
func NormalizeKey(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeHeader turns a spreadsheet header cell into a snake_case key.
func NormalizeHeader(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
}

// ParseInt extracts an integer from scraped cell text. Handles decimal commas
// and surrounding noise; returns ok=false when there is no number.
func ParseInt(value string) (int, bool) {
	text := strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if text == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// IntOr is ParseInt with a fallback.
func IntOr(value string, fallback int) int {
	if n, ok := ParseInt(value); ok {
		return n
	}
	return fallback
}
