package cmd

import (
	"fmt"
	"log"
	"time"

	courseModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/course"
	employeeModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/employee"
	recordModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/record"
	recordsPostgres "github.com/frahmantamala/coursetrack/internal/records/postgres"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"course_records", "training_disputes", "courses", "employees"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedEmployees(db)
		seedCourses(db)
		seedRecords(db)

		fmt.Println("Seeding finished")
	},
}

func seedEmployees(db *gorm.DB) {
	employees := []employeeModel.Employee{
		{EmployeeID: "10001", FullName: "Dana Putra", Fleet: "Alpha", CostCenter: "OPS", Position: "Technician", Department: "Operations", IsActive: true},
		{EmployeeID: "10002", FullName: "Budi Santoso", Fleet: "Alpha", CostCenter: "OPS", Position: "Supervisor", Department: "Operations", IsActive: true},
		{EmployeeID: "10003", FullName: "Citra Lestari", Fleet: "Bravo", CostCenter: "ENG", Position: "Engineer", Department: "Engineering", IsActive: true},
		{EmployeeID: "10004", FullName: "Eka Wijaya", Fleet: "Bravo", CostCenter: "ENG", Position: "Engineer", Department: "Engineering", IsActive: true},
	}

	for _, emp := range employees {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}},
			DoNothing: true,
		}).Create(&emp).Error
		if err != nil {
			log.Fatalf("failed to seed employee %s: %v", emp.EmployeeID, err)
		}
	}
	fmt.Printf("Seeded %d employees\n", len(employees))
}

func seedCourses(db *gorm.DB) {
	fireSafety := "course_records_fire_safety"
	firstAid := "course_records_first_aid"
	security := "course_records_security_awareness"

	courses := []courseModel.Course{
		{CourseCode: "SAFETY-01", CourseName: "Fire Safety", ValidityMonths: 24, CollectionName: &fireSafety, IsActive: true},
		{CourseCode: "MED-01", CourseName: "First Aid", ValidityMonths: 12, CollectionName: &firstAid, IsActive: true},
		{CourseCode: "SEC-01", CourseName: "Security Awareness", ValidityMonths: 36, CollectionName: &security, IsActive: true},
	}

	for _, c := range courses {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_code"}},
			DoNothing: true,
		}).Create(&c).Error
		if err != nil {
			log.Fatalf("failed to seed course %s: %v", c.CourseCode, err)
		}
	}
	fmt.Printf("Seeded %d courses\n", len(courses))
}

func seedRecords(db *gorm.DB) {
	var courses []courseModel.Course
	if err := db.Order("id").Find(&courses).Error; err != nil || len(courses) == 0 {
		log.Fatalf("failed to load seeded courses: %v", err)
	}

	repo := recordsPostgres.NewRecordRepository(db)

	recent := time.Now().UTC().AddDate(0, -2, 0)
	stale := time.Now().UTC().AddDate(-3, 0, 0)

	samples := []recordModel.CourseRecord{
		{
			CourseID: courses[0].ID, EmployeeID: "10001", EmployeeName: "Dana Putra",
			CostCenter: "OPS", Position: "Technician", Department: "Operations",
			CompletedRaw:  recent.Format("2-Jan-06"),
			CompletedDate: &recent,
			StatusLabel:   "Current",
		},
		{
			CourseID: courses[0].ID, EmployeeID: "10002", EmployeeName: "Budi Santoso",
			CostCenter: "OPS", Position: "Supervisor", Department: "Operations",
			CompletedRaw:  stale.Format("2-Jan-06"),
			CompletedDate: &stale,
			StatusLabel:   "Expired",
		},
		{
			CourseID: courses[1].ID, EmployeeID: "10003", EmployeeName: "Citra Lestari",
			CostCenter: "ENG", Position: "Engineer", Department: "Engineering",
			CompletedRaw: "n/a",
			StatusLabel:  "NA",
		},
	}

	for i := range samples {
		rec := &samples[i]
		for _, c := range courses {
			if c.ID == rec.CourseID && rec.CompletedDate != nil {
				expiry := rec.CompletedDate.AddDate(0, c.ValidityMonths, 0)
				rec.ExpiryDate = &expiry
			}
		}
		if err := repo.Upsert(rec); err != nil {
			log.Fatalf("failed to seed record for %s: %v", rec.EmployeeID, err)
		}
	}
	fmt.Printf("Seeded %d course records\n", len(samples))
}
