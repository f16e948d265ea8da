package utils

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"chalkboard/database"
	"chalkboard/models"
	courseModels "chalkboard/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSchedulerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	return db
}

func TestSnapshotDaySumsLedger(t *testing.T) {
	db := openSchedulerDB(t)

	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	inDay := day.Add(10 * time.Hour).Unix()
	nextDay := day.AddDate(0, 0, 1).Add(time.Hour).Unix()

	sales := []courseModels.Sale{
		{Reference: "a", CourseID: 1, SaleDate: inDay, SalePrice: 100},
		{Reference: "b", CourseID: 1, SaleDate: inDay, SalePrice: 50},
		{Reference: "c", CourseID: 2, SaleDate: inDay, SalePrice: 25},
		{Reference: "d", CourseID: 2, SaleDate: nextDay, SalePrice: 999},
	}
	for i := range sales {
		require.NoError(t, db.Create(&sales[i]).Error)
	}

	require.NoError(t, SnapshotDay(db, day))

	var metric courseModels.PlatformMetric
	require.NoError(t, db.Where("day = ?", day).First(&metric).Error)
	assert.EqualValues(t, 3, metric.Enrollments)
	assert.InDelta(t, 175, metric.GrossRevenue, 1e-9)
	assert.InDelta(t, 157.5, metric.NetRevenue, 1e-9)
	assert.InDelta(t, 17.5, metric.PlatformFee, 1e-9)

	var breakdown map[string]float64
	require.NoError(t, json.Unmarshal(metric.Breakdown, &breakdown))
	assert.InDelta(t, 150, breakdown["1"], 1e-9)
	assert.InDelta(t, 25, breakdown["2"], 1e-9)
}

func TestSnapshotDayUpserts(t *testing.T) {
	db := openSchedulerDB(t)

	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.Local)
	require.NoError(t, db.Create(&courseModels.Sale{
		Reference: "a", CourseID: 1, SaleDate: day.Add(time.Hour).Unix(), SalePrice: 100,
	}).Error)

	require.NoError(t, SnapshotDay(db, day))

	// A late sale lands, the rerun replaces the snapshot in place
	require.NoError(t, db.Create(&courseModels.Sale{
		Reference: "b", CourseID: 1, SaleDate: day.Add(2 * time.Hour).Unix(), SalePrice: 60,
	}).Error)

	require.NoError(t, SnapshotDay(db, day))

	var metrics []courseModels.PlatformMetric
	require.NoError(t, db.Find(&metrics).Error)
	require.Len(t, metrics, 1)
	assert.InDelta(t, 160, metrics[0].GrossRevenue, 1e-9)
}

func TestReconcileSalesBackfillsOrphans(t *testing.T) {
	db := openSchedulerDB(t)

	instructor := models.User{FullName: "Ada Teacher", Email: "ada@example.com", Password: "x"}
	student := models.User{FullName: "Bob Student", Email: "bob@example.com", Password: "x"}
	require.NoError(t, db.Create(&instructor).Error)
	require.NoError(t, db.Create(&student).Error)

	paid := courseModels.Course{InstructorID: instructor.ID, Name: "Databases", Description: "intro", Price: 80}
	free := courseModels.Course{InstructorID: instructor.ID, Name: "Intro", Description: "free", Price: 0}
	require.NoError(t, db.Create(&paid).Error)
	require.NoError(t, db.Create(&free).Error)

	enrolledAt := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC).Unix()
	paidEnrollment := courseModels.Enrollment{
		CourseID: paid.ID, StudentID: student.ID,
		Status: courseModels.EnrollmentActive, EnrollmentDate: enrolledAt,
	}
	freeEnrollment := courseModels.Enrollment{
		CourseID: free.ID, StudentID: student.ID,
		Status: courseModels.EnrollmentActive, EnrollmentDate: enrolledAt,
	}
	require.NoError(t, db.Create(&paidEnrollment).Error)
	require.NoError(t, db.Create(&freeEnrollment).Error)

	require.NoError(t, ReconcileSales(db))

	var backfilled []courseModels.Sale
	require.NoError(t, db.Find(&backfilled).Error)
	require.Len(t, backfilled, 1, "only the paid enrollment gets a ledger row")
	assert.Equal(t, paidEnrollment.ID, backfilled[0].EnrollmentID)
	assert.Equal(t, instructor.ID, backfilled[0].InstructorID)
	assert.Equal(t, enrolledAt, backfilled[0].SaleDate)
	assert.InDelta(t, 80, backfilled[0].SalePrice, 1e-9)
	assert.NotEmpty(t, backfilled[0].Reference)

	// A second sweep is a no-op
	require.NoError(t, ReconcileSales(db))

	var count int64
	require.NoError(t, db.Model(&courseModels.Sale{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
