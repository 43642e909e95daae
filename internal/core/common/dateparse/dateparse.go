package dateparse

import (
	"regexp"
	"strings"
	"time"
)

// Detail reports why Normalize produced no date. Absent and malformed input
// both normalize to "no date", but the import pipeline logs malformed input
// so operators can tell a typo from a deliberate "N/A".
type Detail int

const (
	DetailParsed Detail = iota
	DetailAbsent
	DetailMalformed
)

var sentinels = map[string]struct{}{
	"n/a":  {},
	"na":   {},
	"—":    {},
	"-":    {},
	"none": {},
}

// layouts are tried in priority order: structured day/month/year forms
// first, the general fallbacks last, so behavior stays deterministic per
// format.
var layouts = []string{
	"2-Jan-06",
	"02-Jan-06",
	"2-Jan-2006",
	"02-Jan-2006",
	"2 January 2006",
	"02 January 2006",
	"2006 January 2",
	"2006 Jan 2",
	"Jan 2 2006",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02.01.2006",
	"2006",
}

// fallbackLayouts stand in for a general-purpose "whatever sticks" parse.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2 Jan 2006",
	"January 2 2006",
	"02-01-2006",
	"2006.01.02",
}

var (
	ordinalRe    = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize parses a free-form date string into a canonical calendar date.
// Sentinel tokens ("N/A", "-", "none", empty) and unparseable input both
// return ok=false; Normalize never errors.
func Normalize(raw string) (time.Time, bool) {
	t, detail := NormalizeDetail(raw)
	return t, detail == DetailParsed
}

// NormalizeDetail is Normalize plus the absent-vs-malformed distinction.
func NormalizeDetail(raw string) (time.Time, Detail) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, DetailAbsent
	}
	if _, ok := sentinels[strings.ToLower(s)]; ok {
		return time.Time{}, DetailAbsent
	}

	s = ordinalRe.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, ",", " ")
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnightUTC(t), DetailParsed
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnightUTC(t), DetailParsed
		}
	}

	return time.Time{}, DetailMalformed
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
