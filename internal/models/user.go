package models

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/auth"
)

// User is an account of any role. Tutors carry identity document paths.
type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Username          string     `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Password          string     `gorm:"not null" json:"-"`
	Role              auth.Role  `gorm:"size:20;not null;index" json:"role"`
	FullName          string     `gorm:"size:120;not null" json:"full_name"`
	PhoneNumber       string     `gorm:"size:20;not null" json:"phone_number"`
	Email             string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	FathersName       string     `gorm:"size:120" json:"fathers_name,omitempty"`
	LastQualification string     `gorm:"size:120" json:"last_qualification,omitempty"`
	RegisterAsParent  bool       `gorm:"default:false" json:"register_as_parent"`
	CNICFrontPath     string     `gorm:"size:255" json:"-"`
	CNICBackPath      string     `gorm:"size:255" json:"-"`
	OTP               *string    `gorm:"size:6" json:"-"`
	OTPCreatedAt      *time.Time `json:"-"`
	IsVerified        bool       `gorm:"default:false" json:"is_verified"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
