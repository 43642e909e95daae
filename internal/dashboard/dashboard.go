package dashboard

import (
	"context"
	"time"
)

// CourseStat is the three-way gap count for one course over the active
// roster. Total is the course's whole gap, not the roster size.
type CourseStat struct {
	CourseCode string `json:"code"`
	CourseName string `json:"name"`
	Initial    int64  `json:"initial"`
	Expired    int64  `json:"expired"`
	ToBe       int64  `json:"tobe"`
	Total      int64  `json:"total"`
}

// DeptGap is the summed gap for one cost center across every course.
type DeptGap struct {
	CostCenter string `json:"cost_center"`
	Gap        int64  `json:"gap"`
}

// Stats is the cached dashboard envelope. It is disposable and regenerable,
// never authoritative.
type Stats struct {
	CourseStats map[int64]CourseStat `json:"course_stats"`
	DeptGaps    []DeptGap            `json:"department_gaps"`
	TotalGap    int64                `json:"total_gap"`
	Months      []string             `json:"months"`
	MonthCounts map[string]int64     `json:"month_counts"`
	Unavailable []string             `json:"unavailable,omitempty"`
	HorizonDays int                  `json:"horizon_days"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// GapCounts is one three-way aggregate. Initial counts active employees with
// no record or no usable completion date; expired and tobe compare the
// denormalized expiry date against boundaries computed by the caller.
type GapCounts struct {
	Initial int64
	Expired int64
	ToBe    int64
}

func (g GapCounts) Total() int64 {
	return g.Initial + g.Expired + g.ToBe
}

// GapEmployee is one drill-down row.
type GapEmployee struct {
	EmployeeID    string     `json:"employee_id"`
	FullName      string     `json:"full_name"`
	CostCenter    string     `json:"cost_center"`
	Position      string     `json:"position"`
	Department    string     `json:"department"`
	CompletedRaw  string     `json:"completed_raw,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	StatusLabel   string     `json:"status_label,omitempty"`
}

// StatsRepository runs the aggregate queries. Date boundaries are computed
// by the service and passed in so the same SQL runs on postgres and sqlite.
type StatsRepository interface {
	CourseGapCounts(courseID int64, today, horizonEnd time.Time) (GapCounts, error)
	CostCenterGapCounts(courseID int64, today, horizonEnd time.Time) (map[string]GapCounts, error)
	CompletionDatesSince(since time.Time) ([]time.Time, error)
	// GapEmployees pages through one gap bucket; limit <= 0 disables
	// pagination for exports.
	GapEmployees(courseID int64, gapType string, today, horizonEnd time.Time, limit, offset int) ([]*GapEmployee, int64, error)
}

// StatsCache stores computed Stats under a horizon-derived key. Get returns
// (nil, nil) on a miss; a miss is never an error.
type StatsCache interface {
	Get(ctx context.Context, key string) (*Stats, error)
	Set(ctx context.Context, key string, stats *Stats, ttl time.Duration) error
}
