package earnings

import (
	"fmt"
	"sort"
	"time"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// PlatformFeeRate is the flat cut the platform keeps on every sale.
const PlatformFeeRate = 0.10

// Timeframe windows for filtering earnings, matching the dashboard options.
const (
	TimeframeMonth    = "1m"
	TimeframeHalfYear = "6m"
	TimeframeYear     = "1y"
	TimeframeAll      = "all"
)

// Record is one sale as seen by the owning instructor.
type Record struct {
	SaleDate     int64   `json:"sale_date"`
	StudentName  string  `json:"student_name"`
	StudentEmail string  `json:"student_email"`
	CourseName   string  `json:"course_name"`
	Price        float64 `json:"price"`
	NetEarnings  float64 `json:"net_earnings"`
}

// DailyTotal is the per-calendar-day sum used for charting.
type DailyTotal struct {
	Date          string  `json:"date"`
	TotalEarnings float64 `json:"total_earnings"`
}

// Net returns the instructor's share of a sale price.
func Net(price float64) float64 {
	return price * (1 - PlatformFeeRate)
}

// FormatUSD renders an amount the way the dashboard does.
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// Query returns every sale recorded for courses owned by instructorID,
// newest data untrimmed; callers filter by timeframe. The Sale ledger is
// the single source of truth, so withdrawn enrollments stay counted.
func Query(db *gorm.DB, instructorID uint) ([]Record, error) {
	var records []Record
	err := db.Table("sales").
		Select(`sales.sale_date,
			users.full_name AS student_name,
			users.email AS student_email,
			courses.name AS course_name,
			sales.sale_price AS price,
			sales.sale_price * ? AS net_earnings`, 1-PlatformFeeRate).
		Joins("JOIN courses ON courses.id = sales.course_id").
		Joins("JOIN users ON users.id = sales.student_id").
		Where("sales.instructor_id = ? AND sales.is_deleted = ? AND sales.sale_price > 0", instructorID, false).
		Order("sales.sale_date asc").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FilterTimeframe keeps records on or after the window cutoff. The cutoff is
// derived fresh from the immutable reference time on every call; calendar
// month/year subtraction, not fixed-length windows.
func FilterTimeframe(records []Record, window string, ref time.Time) []Record {
	var cutoff time.Time
	switch window {
	case TimeframeMonth:
		cutoff = ref.AddDate(0, -1, 0)
	case TimeframeHalfYear:
		cutoff = ref.AddDate(0, -6, 0)
	case TimeframeYear:
		cutoff = ref.AddDate(-1, 0, 0)
	default:
		out := make([]Record, len(records))
		copy(out, records)
		return out
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.SaleDate >= cutoff.Unix() {
			out = append(out, r)
		}
	}
	return out
}

// GroupByDate buckets records by calendar day and sums net earnings,
// sorted ascending by date.
func GroupByDate(records []Record) []DailyTotal {
	totals := make(map[string]float64)
	for _, r := range records {
		day := now.New(time.Unix(r.SaleDate, 0)).BeginningOfDay().Format("2006-01-02")
		totals[day] += r.NetEarnings
	}

	out := make([]DailyTotal, 0, len(totals))
	for day, sum := range totals {
		out = append(out, DailyTotal{Date: day, TotalEarnings: sum})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
