package postgres

import (
	"time"

	"github.com/frahmantamala/coursetrack/internal/dashboard"
	"gorm.io/gorm"
)

// StatsRepository answers the dashboard aggregates with raw SQL kept to
// plain date comparisons so the queries run unchanged on postgres and
// sqlite. All boundaries arrive as parameters.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) dashboard.StatsRepository {
	return &StatsRepository{db: db}
}

const gapCountsSQL = `
SELECT
	COALESCE(SUM(CASE WHEN r.completed_date IS NULL THEN 1 ELSE 0 END), 0) AS initial,
	COALESCE(SUM(CASE WHEN r.expiry_date IS NOT NULL AND r.expiry_date < ? THEN 1 ELSE 0 END), 0) AS expired,
	COALESCE(SUM(CASE WHEN r.expiry_date IS NOT NULL AND r.expiry_date >= ? AND r.expiry_date <= ? THEN 1 ELSE 0 END), 0) AS to_be
FROM employees e
LEFT JOIN course_records r ON r.employee_id = e.employee_id AND r.course_id = ?
WHERE e.is_active = ?`

func (r *StatsRepository) CourseGapCounts(courseID int64, today, horizonEnd time.Time) (dashboard.GapCounts, error) {
	var row struct {
		Initial int64
		Expired int64
		ToBe    int64
	}
	err := r.db.
		Raw(gapCountsSQL, today, today, horizonEnd, courseID, true).
		Scan(&row).Error
	if err != nil {
		return dashboard.GapCounts{}, err
	}
	return dashboard.GapCounts{Initial: row.Initial, Expired: row.Expired, ToBe: row.ToBe}, nil
}

const costCenterGapCountsSQL = `
SELECT
	e.cost_center AS cost_center,
	COALESCE(SUM(CASE WHEN r.completed_date IS NULL THEN 1 ELSE 0 END), 0) AS initial,
	COALESCE(SUM(CASE WHEN r.expiry_date IS NOT NULL AND r.expiry_date < ? THEN 1 ELSE 0 END), 0) AS expired,
	COALESCE(SUM(CASE WHEN r.expiry_date IS NOT NULL AND r.expiry_date >= ? AND r.expiry_date <= ? THEN 1 ELSE 0 END), 0) AS to_be
FROM employees e
LEFT JOIN course_records r ON r.employee_id = e.employee_id AND r.course_id = ?
WHERE e.is_active = ?
GROUP BY e.cost_center`

func (r *StatsRepository) CostCenterGapCounts(courseID int64, today, horizonEnd time.Time) (map[string]dashboard.GapCounts, error) {
	var rows []struct {
		CostCenter string
		Initial    int64
		Expired    int64
		ToBe       int64
	}
	err := r.db.
		Raw(costCenterGapCountsSQL, today, today, horizonEnd, courseID, true).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]dashboard.GapCounts, len(rows))
	for _, row := range rows {
		counts[row.CostCenter] = dashboard.GapCounts{Initial: row.Initial, Expired: row.Expired, ToBe: row.ToBe}
	}
	return counts, nil
}

const completionDatesSQL = `
SELECT r.completed_date
FROM course_records r
JOIN employees e ON e.employee_id = r.employee_id AND e.is_active = ?
WHERE r.completed_date IS NOT NULL AND r.completed_date >= ?`

func (r *StatsRepository) CompletionDatesSince(since time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.Raw(completionDatesSQL, true, since).Scan(&dates).Error
	return dates, err
}

// gapWhere returns the per-row predicate matching one bucket of the
// aggregate counts. Keeping both in one file makes drift between counts and
// drill-down rows hard to miss.
func gapWhere(gapType string) string {
	switch gapType {
	case dashboard.GapExpired:
		return "r.expiry_date IS NOT NULL AND r.expiry_date < ?"
	case dashboard.GapToBe:
		return "r.expiry_date IS NOT NULL AND r.expiry_date >= ? AND r.expiry_date <= ?"
	default:
		return "r.completed_date IS NULL"
	}
}

func gapArgs(gapType string, today, horizonEnd time.Time) []interface{} {
	switch gapType {
	case dashboard.GapExpired:
		return []interface{}{today}
	case dashboard.GapToBe:
		return []interface{}{today, horizonEnd}
	default:
		return nil
	}
}

func (r *StatsRepository) GapEmployees(courseID int64, gapType string, today, horizonEnd time.Time, limit, offset int) ([]*dashboard.GapEmployee, int64, error) {
	base := `
FROM employees e
LEFT JOIN course_records r ON r.employee_id = e.employee_id AND r.course_id = ?
WHERE e.is_active = ? AND ` + gapWhere(gapType)

	args := append([]interface{}{courseID, true}, gapArgs(gapType, today, horizonEnd)...)

	var total int64
	if err := r.db.Raw("SELECT COUNT(*) "+base, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `
SELECT
	e.employee_id, e.full_name, e.cost_center, e.position, e.department,
	r.completed_raw, r.completed_date, r.expiry_date, r.status_label ` +
		base + `
ORDER BY e.employee_id`
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	var rows []*dashboard.GapEmployee
	if err := r.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
