package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account holder. There is no role column: a user acts as an
// instructor through the courses they own and as a student through their
// enrollments.
type User struct {
	gorm.Model
	FullName            string     `json:"full_name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Password            string     `json:"-" gorm:"not null"`
	LastLogin           time.Time  `json:"last_login" gorm:"default:NULL"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"-"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
