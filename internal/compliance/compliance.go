package compliance

import (
	"strings"
	"time"
)

// GapType classifies an employee's standing for one course.
type GapType string

const (
	// GapInitial means the training was confirmed never taken.
	GapInitial GapType = "initial"
	// GapExpired means the validity window has lapsed.
	GapExpired GapType = "expired"
	// GapToBe means expiry falls inside the to-be-expire horizon.
	GapToBe GapType = "tobe"
	// GapOK means the training is current.
	GapOK GapType = "ok"
	// GapNA means the course's record collection is unavailable. Callers
	// must not collapse this into GapInitial: initial is confirmed absence,
	// na is missing infrastructure.
	GapNA GapType = "na"
)

const (
	StatusNA       = "N/A"
	StatusCurrent  = "Current"
	StatusExpired  = "Expired"
	StatusToBe     = "To be expired"
	StatusNotTaken = "Not Taken"
)

// ComplianceRow is derived per query and never persisted.
type ComplianceRow struct {
	CourseID     int64      `json:"course_id"`
	CourseCode   string     `json:"course_code"`
	CourseName   string     `json:"course_name"`
	CompletedRaw string     `json:"completed_raw,omitempty"`
	Completed    *time.Time `json:"completed_date,omitempty"`
	Expiry       *time.Time `json:"expiry_date,omitempty"`
	Status       string     `json:"status"`
	GapType      GapType    `json:"gap_type"`
}

var labelSentinels = map[string]struct{}{
	"":     {},
	"n/a":  {},
	"na":   {},
	"—":    {},
	"-":    {},
	"none": {},
}

// NormalizeLabel folds a stored free-text status into the closed vocabulary.
// Unrecognized non-empty labels pass through verbatim (e.g. "Labour Union").
func NormalizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch lower := strings.ToLower(trimmed); {
	case isLabelSentinel(lower):
		return StatusNA
	case lower == "current" || lower == "valid":
		return StatusCurrent
	case lower == "expired" || lower == "overdue":
		return StatusExpired
	case lower == "to be expired" || lower == "tobe" || lower == "to_be_expired":
		return StatusToBe
	default:
		return trimmed
	}
}

func isLabelSentinel(lower string) bool {
	_, ok := labelSentinels[lower]
	return ok
}
