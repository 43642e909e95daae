package dashboard

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/coursetrack/internal"
	courseModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/course"
	"github.com/frahmantamala/coursetrack/internal/records"
)

const (
	GapInitial = "initial"
	GapExpired = "expired"
	GapToBe    = "tobe"

	trailingMonths = 12
)

type CourseRepository interface {
	ListActive() ([]*courseModel.Course, error)
	GetByID(id int64) (*courseModel.Course, error)
}

type Service struct {
	repo     StatsRepository
	courses  CourseRepository
	cache    StatsCache
	cacheTTL time.Duration
	pageSize int
	logger   *slog.Logger

	// now is swappable in tests.
	now func() time.Time
}

func NewService(repo StatsRepository, courses CourseRepository, cache StatsCache, cacheTTL time.Duration, pageSize int, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		courses:  courses,
		cache:    cache,
		cacheTTL: cacheTTL,
		pageSize: pageSize,
		logger:   logger,
		now:      time.Now,
	}
}

func cacheKey(horizonDays int) string {
	return fmt.Sprintf("dashboard_stats_tobed_%d", horizonDays)
}

// GetStats returns the dashboard envelope for the given horizon, serving
// from cache when fresh. A miss recomputes synchronously; concurrent misses
// all recompute and the last write wins.
func (s *Service) GetStats(ctx context.Context, horizonDays int) (*Stats, error) {
	key := cacheKey(horizonDays)

	if cached, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("stats cache read failed", "error", err, "key", key)
	} else if cached != nil {
		return cached, nil
	}

	stats, err := s.compute(horizonDays)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, stats, s.cacheTTL); err != nil {
		s.logger.Warn("stats cache write failed", "error", err, "key", key)
	}
	return stats, nil
}

func (s *Service) compute(horizonDays int) (*Stats, error) {
	courses, err := s.courses.ListActive()
	if err != nil {
		s.logger.Error("stats: course catalog query failed", "error", err)
		return nil, internal.NewInternalError("could not load course catalog", err)
	}

	today := midnight(s.now())
	horizonEnd := today.AddDate(0, 0, horizonDays)

	stats := &Stats{
		CourseStats: make(map[int64]CourseStat, len(courses)),
		MonthCounts: make(map[string]int64, trailingMonths),
		HorizonDays: horizonDays,
		GeneratedAt: s.now(),
	}
	deptTotals := make(map[string]int64)

	for _, course := range courses {
		if !records.ValidCollectionName(course.CollectionName) {
			stats.Unavailable = append(stats.Unavailable, course.CourseCode)
			continue
		}

		counts, err := s.repo.CourseGapCounts(course.ID, today, horizonEnd)
		if err != nil {
			s.logger.Error("stats: course aggregate failed", "error", err, "course_id", course.ID)
			stats.Unavailable = append(stats.Unavailable, course.CourseCode)
			continue
		}

		stats.CourseStats[course.ID] = CourseStat{
			CourseCode: course.CourseCode,
			CourseName: course.CourseName,
			Initial:    counts.Initial,
			Expired:    counts.Expired,
			ToBe:       counts.ToBe,
			Total:      counts.Total(),
		}
		stats.TotalGap += counts.Total()

		ccCounts, err := s.repo.CostCenterGapCounts(course.ID, today, horizonEnd)
		if err != nil {
			s.logger.Error("stats: cost center aggregate failed", "error", err, "course_id", course.ID)
			continue
		}
		for cc, c := range ccCounts {
			deptTotals[cc] += c.Total()
		}
	}

	stats.DeptGaps = sortedDeptGaps(deptTotals)
	s.fillMonthCounts(stats, today)

	return stats, nil
}

func sortedDeptGaps(totals map[string]int64) []DeptGap {
	gaps := make([]DeptGap, 0, len(totals))
	for cc, gap := range totals {
		gaps = append(gaps, DeptGap{CostCenter: cc, Gap: gap})
	}
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Gap != gaps[j].Gap {
			return gaps[i].Gap > gaps[j].Gap
		}
		return gaps[i].CostCenter < gaps[j].CostCenter
	})
	return gaps
}

// fillMonthCounts buckets completion dates of the trailing 12 calendar
// months by YYYY-MM. Bucketing happens here, not in SQL, so the aggregate
// query stays portable.
func (s *Service) fillMonthCounts(stats *Stats, today time.Time) {
	firstMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(trailingMonths - 1), 0)

	for i := 0; i < trailingMonths; i++ {
		month := firstMonth.AddDate(0, i, 0).Format("2006-01")
		stats.Months = append(stats.Months, month)
		stats.MonthCounts[month] = 0
	}

	dates, err := s.repo.CompletionDatesSince(firstMonth)
	if err != nil {
		s.logger.Error("stats: completion date query failed", "error", err)
		return
	}
	for _, d := range dates {
		month := d.Format("2006-01")
		if _, ok := stats.MonthCounts[month]; ok {
			stats.MonthCounts[month]++
		}
	}
}

// CourseEmployees pages through one gap bucket of one course. It reuses the
// aggregate WHERE semantics so drill-down rows always sum to the cached
// counts for the same horizon.
func (s *Service) CourseEmployees(courseID int64, gapType string, horizonDays, page int) (*DrillDownResponse, error) {
	course, err := s.availableCourse(courseID)
	if err != nil {
		return nil, err
	}
	if !validGapType(gapType) {
		return nil, internal.NewValidationError("type must be one of initial, expired, tobe", internal.ErrCodeValidationFailed)
	}
	if page < 1 {
		page = 1
	}

	today := midnight(s.now())
	horizonEnd := today.AddDate(0, 0, horizonDays)

	rows, total, err := s.repo.GapEmployees(courseID, gapType, today, horizonEnd, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		s.logger.Error("drill-down query failed", "error", err, "course_id", courseID, "type", gapType)
		return nil, internal.NewInternalError("could not load employees", err)
	}

	return &DrillDownResponse{
		CourseID:   courseID,
		CourseCode: course.CourseCode,
		CourseName: course.CourseName,
		GapType:    gapType,
		Page:       page,
		PageSize:   s.pageSize,
		Total:      total,
		Employees:  rows,
	}, nil
}

// ExportCourseEmployees streams one gap bucket as CSV, unpaginated and
// uncached, with the same WHERE semantics as the drill-down.
func (s *Service) ExportCourseEmployees(courseID int64, gapType string, horizonDays int, w io.Writer) error {
	if _, err := s.availableCourse(courseID); err != nil {
		return err
	}
	if !validGapType(gapType) {
		return internal.NewValidationError("type must be one of initial, expired, tobe", internal.ErrCodeValidationFailed)
	}

	today := midnight(s.now())
	horizonEnd := today.AddDate(0, 0, horizonDays)

	rows, _, err := s.repo.GapEmployees(courseID, gapType, today, horizonEnd, 0, 0)
	if err != nil {
		s.logger.Error("drill-down export query failed", "error", err, "course_id", courseID, "type", gapType)
		return internal.NewInternalError("could not export employees", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"employee_id", "full_name", "cost_center", "position", "department", "taken_date", "expiry_date", "status"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.EmployeeID,
			row.FullName,
			row.CostCenter,
			row.Position,
			row.Department,
			row.CompletedRaw,
			formatDate(row.ExpiryDate),
			row.StatusLabel,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (s *Service) availableCourse(courseID int64) (*courseModel.Course, error) {
	course, err := s.courses.GetByID(courseID)
	if err != nil {
		return nil, internal.ErrCourseNotFound
	}
	if !course.IsActive || !records.ValidCollectionName(course.CollectionName) {
		return nil, internal.ErrCourseUnavailable
	}
	return course, nil
}

func validGapType(gapType string) bool {
	return gapType == GapInitial || gapType == GapExpired || gapType == GapToBe
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
