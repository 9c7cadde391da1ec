package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeDeduction records an admin's fee adjustment at lead verification.
// Rows are written once and never updated.
type FeeDeduction struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LeadID         uint      `gorm:"not null;index" json:"lead_id"`
	AdminID        uint      `gorm:"not null;index" json:"admin_id"`
	OriginalFee    int64     `gorm:"not null" json:"original_fee"`
	DeductedAmount int64     `gorm:"not null" json:"deducted_amount"`
	FinalFee       int64     `gorm:"not null" json:"final_fee"`
	CreatedAt      time.Time `json:"created_at"`

	Lead  StudentRegistration `gorm:"foreignKey:LeadID" json:"-"`
	Admin User                `gorm:"foreignKey:AdminID" json:"-"`
}

func (d *FeeDeduction) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (FeeDeduction) TableName() string {
	return "fee_deductions"
}
