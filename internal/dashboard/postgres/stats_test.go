package postgres

import (
	"testing"
	"time"

	"github.com/frahmantamala/coursetrack/internal/dashboard"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestStatsRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "StatsRepository Suite")
}

type SQLiteEmployee struct {
	EmployeeID string `gorm:"column:employee_id;primaryKey"`
	FullName   string `gorm:"column:full_name"`
	CostCenter string `gorm:"column:cost_center"`
	Position   string `gorm:"column:position"`
	Department string `gorm:"column:department"`
	IsActive   bool   `gorm:"column:is_active"`
}

func (SQLiteEmployee) TableName() string { return "employees" }

type SQLiteCourseRecord struct {
	CourseID      int64      `gorm:"column:course_id;primaryKey"`
	EmployeeID    string     `gorm:"column:employee_id;primaryKey"`
	CompletedRaw  string     `gorm:"column:completed_raw"`
	CompletedDate *time.Time `gorm:"column:completed_date"`
	ExpiryDate    *time.Time `gorm:"column:expiry_date"`
	StatusLabel   string     `gorm:"column:status_label"`
}

func (SQLiteCourseRecord) TableName() string { return "course_records" }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var _ = Describe("StatsRepository", func() {
	var (
		db   *gorm.DB
		repo dashboard.StatsRepository

		today      time.Time
		horizonEnd time.Time
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.AutoMigrate(&SQLiteEmployee{}, &SQLiteCourseRecord{})).To(Succeed())

		repo = NewStatsRepository(db)

		today = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
		horizonEnd = today.AddDate(0, 0, 90)

		employees := []SQLiteEmployee{
			{EmployeeID: "E100", FullName: "Dana Putra", CostCenter: "OPS", IsActive: true},
			{EmployeeID: "E200", FullName: "Budi Santoso", CostCenter: "OPS", IsActive: true},
			{EmployeeID: "E300", FullName: "Citra Lestari", CostCenter: "ENG", IsActive: true},
			{EmployeeID: "E400", FullName: "Gone Person", CostCenter: "OPS", IsActive: false},
		}
		Expect(db.Create(&employees).Error).To(Succeed())

		records := []SQLiteCourseRecord{
			// expired: expiry before today
			{CourseID: 1, EmployeeID: "E100", CompletedDate: datePtr(2023, time.December, 1), ExpiryDate: datePtr(2025, time.December, 1)},
			// tobe: expiry inside the horizon
			{CourseID: 1, EmployeeID: "E200", CompletedDate: datePtr(2024, time.March, 1), ExpiryDate: datePtr(2026, time.March, 1)},
			// dateless record counts as initial
			{CourseID: 1, EmployeeID: "E300", CompletedRaw: "n/a"},
			// inactive employee must not count anywhere
			{CourseID: 1, EmployeeID: "E400", CompletedDate: datePtr(2023, time.January, 1), ExpiryDate: datePtr(2025, time.January, 1)},
		}
		Expect(db.Create(&records).Error).To(Succeed())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("CourseGapCounts", func() {
		It("should count initial, expired and tobe over the active roster", func() {
			counts, err := repo.CourseGapCounts(1, today, horizonEnd)

			Expect(err).NotTo(HaveOccurred())
			Expect(counts.Initial).To(Equal(int64(1)))
			Expect(counts.Expired).To(Equal(int64(1)))
			Expect(counts.ToBe).To(Equal(int64(1)))
		})

		It("should count every active employee as initial for a course with no records", func() {
			counts, err := repo.CourseGapCounts(99, today, horizonEnd)

			Expect(err).NotTo(HaveOccurred())
			Expect(counts.Initial).To(Equal(int64(3)))
			Expect(counts.Expired).To(BeZero())
			Expect(counts.ToBe).To(BeZero())
		})
	})

	Describe("CostCenterGapCounts", func() {
		It("should split the same counts by cost center", func() {
			counts, err := repo.CostCenterGapCounts(1, today, horizonEnd)

			Expect(err).NotTo(HaveOccurred())
			Expect(counts["OPS"].Expired).To(Equal(int64(1)))
			Expect(counts["OPS"].ToBe).To(Equal(int64(1)))
			Expect(counts["ENG"].Initial).To(Equal(int64(1)))
		})
	})

	Describe("GapEmployees", func() {
		It("should return rows that sum to the aggregate counts", func() {
			counts, err := repo.CourseGapCounts(1, today, horizonEnd)
			Expect(err).NotTo(HaveOccurred())

			var rowTotal int64
			for _, gapType := range []string{dashboard.GapInitial, dashboard.GapExpired, dashboard.GapToBe} {
				rows, total, err := repo.GapEmployees(1, gapType, today, horizonEnd, 50, 0)
				Expect(err).NotTo(HaveOccurred())
				Expect(int64(len(rows))).To(Equal(total))
				rowTotal += total
			}
			Expect(rowTotal).To(Equal(counts.Initial + counts.Expired + counts.ToBe))
		})

		It("should return the expired employee with record fields", func() {
			rows, total, err := repo.GapEmployees(1, dashboard.GapExpired, today, horizonEnd, 50, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(rows[0].EmployeeID).To(Equal("E100"))
			Expect(rows[0].ExpiryDate).NotTo(BeNil())
		})

		It("should paginate", func() {
			rows, total, err := repo.GapEmployees(99, dashboard.GapInitial, today, horizonEnd, 2, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(rows).To(HaveLen(2))

			rows, _, err = repo.GapEmployees(99, dashboard.GapInitial, today, horizonEnd, 2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})
	})

	Describe("CompletionDatesSince", func() {
		It("should return completion dates of active employees only", func() {
			dates, err := repo.CompletionDatesSince(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC))

			Expect(err).NotTo(HaveOccurred())
			Expect(dates).To(HaveLen(2))
		})
	})
})
