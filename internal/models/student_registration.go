package models

import (
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/leadstate"
)

// StudentRegistration is a student's tuition request (a lead).
// AcceptedByTutorID is set exactly while the status is tutor-engaged.
type StudentRegistration struct {
	ID                uint                    `gorm:"primaryKey" json:"id"`
	FullName          string                  `gorm:"size:120;not null" json:"full_name"`
	PhoneNumber       string                  `gorm:"size:20;not null" json:"phone_number"`
	Email             string                  `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Area              string                  `gorm:"size:120;not null;index" json:"area"`
	Address           string                  `gorm:"size:255" json:"address"`
	Board             string                  `gorm:"size:120;not null;index" json:"board"`
	Subjects          string                  `gorm:"size:1000;not null" json:"subjects"`
	TotalFee          int64                   `gorm:"not null" json:"total_fee"`
	IsVerified        bool                    `gorm:"default:false" json:"is_verified"`
	OTP               *string                 `gorm:"size:6" json:"-"`
	OTPCreatedAt      *time.Time              `json:"-"`
	Status            leadstate.Status        `gorm:"size:40;not null;index;default:'PENDING_ADMIN_VERIFICATION'" json:"status"`
	AcceptedByTutorID *uint                   `gorm:"index" json:"accepted_by_tutor_id,omitempty"`
	TuitionStatus     leadstate.TuitionStatus `gorm:"size:20;default:''" json:"tuition_status,omitempty"`
	TuitionEndDate    *time.Time              `json:"tuition_end_date,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`

	AcceptedByTutor *User `gorm:"foreignKey:AcceptedByTutorID" json:"accepted_by_tutor,omitempty"`
}

func (StudentRegistration) TableName() string {
	return "student_registrations"
}

const subjectSeparator = ","

// JoinSubjects stores a subject list in its comma-joined column form.
func JoinSubjects(subjects []string) string {
	return strings.Join(subjects, subjectSeparator)
}

func (r *StudentRegistration) SubjectList() []string {
	if r.Subjects == "" {
		return nil
	}
	return strings.Split(r.Subjects, subjectSeparator)
}
