package earnings

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestNet(t *testing.T) {
	assert.InDelta(t, 44.991, Net(49.99), 1e-9)
	assert.InDelta(t, 90.0, Net(100), 1e-9)
	assert.Equal(t, 0.0, Net(0))
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$44.99", FormatUSD(Net(49.99)))
	assert.Equal(t, "$90.00", FormatUSD(Net(100)))
}

func TestFilterTimeframe(t *testing.T) {
	ref := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	records := []Record{
		{CourseName: "recent", SaleDate: ref.AddDate(0, 0, -2).Unix()},
		{CourseName: "last quarter", SaleDate: ref.AddDate(0, -3, 0).Unix()},
		{CourseName: "last autumn", SaleDate: ref.AddDate(0, -8, 0).Unix()},
		{CourseName: "ancient", SaleDate: ref.AddDate(-2, 0, 0).Unix()},
	}

	names := func(rs []Record) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.CourseName
		}
		return out
	}

	assert.Equal(t, []string{"recent"}, names(FilterTimeframe(records, TimeframeMonth, ref)))
	assert.Equal(t, []string{"recent", "last quarter"}, names(FilterTimeframe(records, TimeframeHalfYear, ref)))
	assert.Equal(t, []string{"recent", "last quarter", "last autumn"}, names(FilterTimeframe(records, TimeframeYear, ref)))
	assert.Len(t, FilterTimeframe(records, TimeframeAll, ref), 4)

	// The input slice must come through untouched
	assert.Len(t, records, 4)
}

func TestFilterTimeframeRepeatedCalls(t *testing.T) {
	ref := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{SaleDate: ref.AddDate(0, -3, 0).Unix()},
	}

	// Each call derives its cutoff from the same immutable reference, so
	// repeated filtering over different windows must agree with itself.
	for i := 0; i < 3; i++ {
		assert.Len(t, FilterTimeframe(records, TimeframeMonth, ref), 0)
		assert.Len(t, FilterTimeframe(records, TimeframeHalfYear, ref), 1)
	}
}

func TestGroupByDate(t *testing.T) {
	day1 := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.Local)
	day1Later := time.Date(2026, time.March, 1, 21, 30, 0, 0, time.Local)
	day2 := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.Local)

	records := []Record{
		{SaleDate: day2.Unix(), NetEarnings: 9},
		{SaleDate: day1.Unix(), NetEarnings: 45},
		{SaleDate: day1Later.Unix(), NetEarnings: 45},
	}

	got := GroupByDate(records)
	require.Len(t, got, 2)
	assert.Equal(t, "2026-03-01", got[0].Date)
	assert.InDelta(t, 90.0, got[0].TotalEarnings, 1e-9)
	assert.Equal(t, "2026-03-02", got[1].Date)
	assert.InDelta(t, 9.0, got[1].TotalEarnings, 1e-9)
}

func TestGroupByDateEmpty(t *testing.T) {
	assert.Empty(t, GroupByDate(nil))
}

func TestQuery(t *testing.T) {
	db := openTestDB(t)

	type user struct {
		ID       uint
		FullName string
		Email    string
	}
	type course struct {
		ID           uint
		InstructorID uint
		Name         string
		Price        float64
		IsDeleted    bool
	}
	type sale struct {
		ID           uint
		Reference    string
		StudentID    uint
		InstructorID uint
		CourseID     uint
		EnrollmentID uint
		SaleDate     int64
		SalePrice    float64
		IsDeleted    bool
	}

	require.NoError(t, db.Table("users").Create(&user{ID: 1, FullName: "Ada Teacher", Email: "ada@example.com"}).Error)
	require.NoError(t, db.Table("users").Create(&user{ID: 2, FullName: "Bob Student", Email: "bob@example.com"}).Error)
	require.NoError(t, db.Table("courses").Create(&course{ID: 1, InstructorID: 1, Name: "Databases", Price: 49.99}).Error)
	require.NoError(t, db.Table("sales").Create(&sale{
		ID: 1, Reference: "ref-1", StudentID: 2, InstructorID: 1, CourseID: 1,
		EnrollmentID: 1, SaleDate: time.Now().Unix(), SalePrice: 49.99,
	}).Error)

	records, err := Query(db, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Bob Student", records[0].StudentName)
	assert.Equal(t, "bob@example.com", records[0].StudentEmail)
	assert.Equal(t, "Databases", records[0].CourseName)
	assert.InDelta(t, 49.99, records[0].Price, 1e-9)
	assert.InDelta(t, 44.991, records[0].NetEarnings, 1e-6)

	// Other instructors see nothing
	records, err = Query(db, 2)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	for _, stmt := range []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, full_name TEXT, email TEXT)`,
		`CREATE TABLE courses (id INTEGER PRIMARY KEY, instructor_id INTEGER, name TEXT, price REAL, is_deleted BOOLEAN DEFAULT false)`,
		`CREATE TABLE sales (id INTEGER PRIMARY KEY, reference TEXT, student_id INTEGER, instructor_id INTEGER,
			course_id INTEGER, enrollment_id INTEGER, sale_date INTEGER, sale_price REAL, is_deleted BOOLEAN DEFAULT false)`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}
