package course

import "gorm.io/gorm"

// Lesson is ordered within its course by Number.
type Lesson struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Number      int    `json:"number" gorm:"default:1"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}
