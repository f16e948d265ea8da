package utils

import (
	"chalkboard/database"
	"chalkboard/earnings"
	courseModels "chalkboard/models/course"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeMetricsScheduler starts the nightly platform jobs: the daily
// revenue snapshot and the sale-ledger reconciliation sweep.
func InitializeMetricsScheduler() *cron.Cron {
	log.Println("[METRICS-SCHEDULER] Initializing metrics scheduler...")

	c := cron.New()

	// Run daily shortly after midnight to close out the previous day
	c.AddFunc("15 0 * * *", func() {
		db := database.Database.Db
		yesterday := now.New(time.Now().AddDate(0, 0, -1)).BeginningOfDay()

		if err := ReconcileSales(db); err != nil {
			log.Printf("[METRICS-SCHEDULER] Ledger reconciliation failed: %v", err)
		}
		if err := SnapshotDay(db, yesterday); err != nil {
			log.Printf("[METRICS-SCHEDULER] Snapshot for %s failed: %v", yesterday.Format("2006-01-02"), err)
		}
	})

	c.Start()
	log.Println("[METRICS-SCHEDULER] Metrics scheduler started - runs daily at 00:15")
	return c
}

// SnapshotDay upserts the PlatformMetric row for one calendar day from the
// Sale ledger.
func SnapshotDay(db *gorm.DB, day time.Time) error {
	dayStart := now.New(day).BeginningOfDay()
	dayEnd := dayStart.AddDate(0, 0, 1)

	var sales []courseModels.Sale
	if err := db.
		Where("sale_date >= ? AND sale_date < ? AND is_deleted = ?", dayStart.Unix(), dayEnd.Unix(), false).
		Find(&sales).Error; err != nil {
		return err
	}

	var gross float64
	perCourse := make(map[uint]float64)
	for _, s := range sales {
		gross += s.SalePrice
		perCourse[s.CourseID] += s.SalePrice
	}

	breakdown, err := json.Marshal(perCourse)
	if err != nil {
		return err
	}

	metric := courseModels.PlatformMetric{
		Day:          dayStart,
		Enrollments:  int64(len(sales)),
		GrossRevenue: gross,
		NetRevenue:   earnings.Net(gross),
		PlatformFee:  gross * earnings.PlatformFeeRate,
		Breakdown:    breakdown,
	}

	var existing courseModels.PlatformMetric
	err = db.Where("day = ?", dayStart).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(&metric).Error
	}
	if err != nil {
		return err
	}

	metric.ID = existing.ID
	return db.Save(&metric).Error
}

// ReconcileSales backfills Sale rows for paid enrollments that predate the
// transactional ledger. The sale is dated at the enrollment and priced at
// the course's current price, the best information still available.
func ReconcileSales(db *gorm.DB) error {
	type orphan struct {
		EnrollmentID   uint
		EnrollmentDate int64
		CourseID       uint
		StudentID      uint
		InstructorID   uint
		Price          float64
	}

	var orphans []orphan
	err := db.Table("enrollments").
		Select(`enrollments.id AS enrollment_id,
			enrollments.enrollment_date,
			enrollments.course_id,
			enrollments.student_id,
			courses.instructor_id,
			courses.price`).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Joins("LEFT JOIN sales ON sales.enrollment_id = enrollments.id AND sales.is_deleted = ?", false).
		Where("courses.price > 0 AND enrollments.is_deleted = ? AND sales.id IS NULL", false).
		Scan(&orphans).Error
	if err != nil {
		return err
	}

	if len(orphans) == 0 {
		return nil
	}

	log.Printf("[METRICS-SCHEDULER] Backfilling %d missing sale rows", len(orphans))

	for _, o := range orphans {
		sale := courseModels.Sale{
			Reference:    uuid.NewString(),
			StudentID:    o.StudentID,
			InstructorID: o.InstructorID,
			CourseID:     o.CourseID,
			EnrollmentID: o.EnrollmentID,
			SaleDate:     o.EnrollmentDate,
			SalePrice:    o.Price,
		}
		if err := db.Create(&sale).Error; err != nil {
			log.Printf("[METRICS-SCHEDULER] Failed to backfill sale for enrollment %d: %v", o.EnrollmentID, err)
		}
	}

	return nil
}
