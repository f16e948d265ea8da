package course

import "gorm.io/gorm"

// Course is a published offering owned by exactly one instructor.
// A price of 0 denotes a free course.
type Course struct {
	gorm.Model
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Details      string  `json:"details" gorm:"type:text"`
	Price        float64 `json:"price" gorm:"default:0"` // 0 = free
	IsDeleted    bool    `gorm:"default:false"`
}
