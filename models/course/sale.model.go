package course

import "gorm.io/gorm"

// Sale is the durable record of a paid enrollment and the single source of
// truth for earnings. A row is written in the same transaction as its
// enrollment; withdrawing later never removes it.
type Sale struct {
	gorm.Model
	Reference    string  `json:"reference" gorm:"unique;not null"`
	StudentID    uint    `json:"student_id" gorm:"index;not null"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	CourseID     uint    `json:"course_id" gorm:"index;not null"`
	EnrollmentID uint    `json:"enrollment_id" gorm:"index;not null"`
	SaleDate     int64   `json:"sale_date"` // unix seconds
	SalePrice    float64 `json:"sale_price"`
	IsDeleted    bool    `gorm:"default:false"`
}
