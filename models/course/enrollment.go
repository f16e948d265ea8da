package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentActive    = "active"
	EnrollmentWithdrawn = "withdrawn"
	EnrollmentCompleted = "completed"
)

// Enrollment tracks a student's membership in a course. At most one active
// row may exist per (course, student); re-enrolling after a withdrawal
// creates a new row, so history is additive.
type Enrollment struct {
	gorm.Model
	CourseID       uint       `json:"course_id" gorm:"index;not null"`
	StudentID      uint       `json:"student_id" gorm:"index;not null"`
	Status         string     `json:"status" gorm:"default:'active'"` // active, withdrawn, completed
	EnrollmentDate int64      `json:"enrollment_date"`                // unix seconds
	CompletedAt    *time.Time `json:"completed_at"`
	IsDeleted      bool       `gorm:"default:false"`
}
