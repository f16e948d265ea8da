package earnings

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"
)

// PlatformRecord is one sale as seen by the platform admin.
type PlatformRecord struct {
	SaleDate       int64   `json:"sale_date"`
	StudentName    string  `json:"student_name"`
	InstructorName string  `json:"instructor_name"`
	CourseName     string  `json:"course_name"`
	SalePrice      float64 `json:"sale_price"`
	PlatformFee    float64 `json:"platform_fee"`
	InstructorNet  float64 `json:"instructor_net"`
}

// WriteCSV streams instructor earnings in the fixed dashboard column order.
// Fields with embedded quotes or commas are escaped by the csv writer.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "student_name", "student_email", "course_name", "price", "net_earnings"}); err != nil {
		return err
	}

	for _, r := range records {
		email := r.StudentEmail
		if email == "" {
			email = "N/A"
		}
		row := []string{
			time.Unix(r.SaleDate, 0).Format("2006-01-02"),
			r.StudentName,
			email,
			r.CourseName,
			fmt.Sprintf("%.2f", r.Price),
			fmt.Sprintf("%.2f", r.NetEarnings),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// QueryPlatform returns every sale on the platform for the admin export.
func QueryPlatform(db *gorm.DB) ([]PlatformRecord, error) {
	var records []PlatformRecord
	err := db.Table("sales").
		Select(`sales.sale_date,
			students.full_name AS student_name,
			instructors.full_name AS instructor_name,
			courses.name AS course_name,
			sales.sale_price,
			sales.sale_price * ? AS platform_fee,
			sales.sale_price * ? AS instructor_net`, PlatformFeeRate, 1-PlatformFeeRate).
		Joins("JOIN courses ON courses.id = sales.course_id").
		Joins("JOIN users students ON students.id = sales.student_id").
		Joins("JOIN users instructors ON instructors.id = sales.instructor_id").
		Where("sales.is_deleted = ?", false).
		Order("sales.sale_date asc").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// WritePlatformCSV streams the platform-wide metrics export.
func WritePlatformCSV(w io.Writer, records []PlatformRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "student_name", "instructor_name", "course_name", "sale_price", "platform_fee", "instructor_net"}); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			time.Unix(r.SaleDate, 0).Format("2006-01-02"),
			r.StudentName,
			r.InstructorName,
			r.CourseName,
			fmt.Sprintf("%.2f", r.SalePrice),
			fmt.Sprintf("%.2f", r.PlatformFee),
			fmt.Sprintf("%.2f", r.InstructorNet),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
