package importer

import (
	"time"
)

// SessionState tracks the two-phase import lifecycle. A session is born
// Previewed; Committed and Cancelled are terminal.
type SessionState string

const (
	StatePreviewed SessionState = "previewed"
	StateCommitted SessionState = "committed"
	StateCancelled SessionState = "cancelled"
)

// PreviewRow is one parsed-and-validated candidate record. TakenRaw is kept
// verbatim for display and storage; TakenDate is the normalized form.
type PreviewRow struct {
	RowNumber  int        `json:"row"`
	EmployeeID string     `json:"employee_id"`
	FullName   string     `json:"full_name"`
	CostCenter string     `json:"cost_center"`
	Position   string     `json:"position"`
	Department string     `json:"department"`
	TakenRaw   string     `json:"taken_date"`
	TakenDate  *time.Time `json:"taken_date_parsed,omitempty"`
	Status     string     `json:"status"`
	Inactive   bool       `json:"inactive,omitempty"`
}

// RowDiagnostic records why a row was skipped during preview or failed
// during confirm.
type RowDiagnostic struct {
	RowNumber  int    `json:"row"`
	EmployeeID string `json:"employee_id,omitempty"`
	Reason     string `json:"reason"`
}

// ConfirmResult is the outcome of committing one session.
type ConfirmResult struct {
	Saved   int `json:"saved"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ImportSession holds one pending preview. Sessions live in memory only and
// expire after the configured TTL; an expired session is indistinguishable
// from one that never existed.
type ImportSession struct {
	Token     string
	CourseID  int64
	State     SessionState
	Rows      []PreviewRow
	Skipped   []RowDiagnostic
	Failed    []RowDiagnostic
	Result    *ConfirmResult
	CreatedAt time.Time
	ExpiresAt time.Time

	// downloaded marks report types already handed out; each report is
	// available exactly once.
	downloaded map[string]bool
}

func (s *ImportSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
