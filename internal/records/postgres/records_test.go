package postgres

import (
	"testing"
	"time"

	recordModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/record"
	"github.com/frahmantamala/coursetrack/internal/records"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRecordRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RecordRepository Suite")
}

type SQLiteCourseRecord struct {
	CourseID      int64      `gorm:"column:course_id;primaryKey"`
	EmployeeID    string     `gorm:"column:employee_id;primaryKey"`
	EmployeeName  string     `gorm:"column:employee_name"`
	CostCenter    string     `gorm:"column:cost_center"`
	Position      string     `gorm:"column:position"`
	Department    string     `gorm:"column:department"`
	CompletedRaw  string     `gorm:"column:completed_raw"`
	CompletedDate *time.Time `gorm:"column:completed_date"`
	ExpiryDate    *time.Time `gorm:"column:expiry_date"`
	StatusLabel   string     `gorm:"column:status_label"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (SQLiteCourseRecord) TableName() string {
	return "course_records"
}

var _ = Describe("RecordRepository", func() {
	var (
		db   *gorm.DB
		repo records.RepositoryAPI
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteCourseRecord{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewRecordRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Lookup", func() {
		It("should return nil without error when no record exists", func() {
			rec, err := repo.Lookup(1, "E100")

			Expect(err).NotTo(HaveOccurred())
			Expect(rec).To(BeNil())
		})
	})

	Describe("Upsert", func() {
		It("should insert a new record", func() {
			completed := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)
			expiry := completed.AddDate(0, 24, 0)

			err := repo.Upsert(&recordModel.CourseRecord{
				CourseID:      1,
				EmployeeID:    "E100",
				EmployeeName:  "Dana Putra",
				CostCenter:    "CC1",
				CompletedRaw:  "1-Sep-24",
				CompletedDate: &completed,
				ExpiryDate:    &expiry,
				StatusLabel:   "Current",
			})
			Expect(err).NotTo(HaveOccurred())

			rec, err := repo.Lookup(1, "E100")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec).NotTo(BeNil())
			Expect(rec.EmployeeName).To(Equal("Dana Putra"))
			Expect(rec.CompletedDate).NotTo(BeNil())
		})

		It("should overwrite on a repeated key so imports are idempotent", func() {
			first := &recordModel.CourseRecord{
				CourseID: 1, EmployeeID: "E100", EmployeeName: "Dana Putra",
				CompletedRaw: "1-Sep-23", StatusLabel: "Current",
			}
			Expect(repo.Upsert(first)).To(Succeed())

			second := &recordModel.CourseRecord{
				CourseID: 1, EmployeeID: "E100", EmployeeName: "Dana P. Putra",
				CompletedRaw: "2-Oct-24", StatusLabel: "Current",
			}
			Expect(repo.Upsert(second)).To(Succeed())

			rec, err := repo.Lookup(1, "E100")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.EmployeeName).To(Equal("Dana P. Putra"))
			Expect(rec.CompletedRaw).To(Equal("2-Oct-24"))

			var count int64
			Expect(db.Model(&SQLiteCourseRecord{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("should keep records of different courses apart", func() {
			Expect(repo.Upsert(&recordModel.CourseRecord{CourseID: 1, EmployeeID: "E100", StatusLabel: "Current"})).To(Succeed())
			Expect(repo.Upsert(&recordModel.CourseRecord{CourseID: 2, EmployeeID: "E100", StatusLabel: "Expired"})).To(Succeed())

			rec, err := repo.Lookup(2, "E100")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.StatusLabel).To(Equal("Expired"))
		})
	})

	Describe("ListForCourse", func() {
		It("should return the course's records ordered by employee", func() {
			Expect(repo.Upsert(&recordModel.CourseRecord{CourseID: 1, EmployeeID: "E200"})).To(Succeed())
			Expect(repo.Upsert(&recordModel.CourseRecord{CourseID: 1, EmployeeID: "E100"})).To(Succeed())
			Expect(repo.Upsert(&recordModel.CourseRecord{CourseID: 2, EmployeeID: "E300"})).To(Succeed())

			recs, err := repo.ListForCourse(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(recs).To(HaveLen(2))
			Expect(recs[0].EmployeeID).To(Equal("E100"))
			Expect(recs[1].EmployeeID).To(Equal("E200"))
		})
	})
})
