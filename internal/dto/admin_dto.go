package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/flash"
)

type VerifyLeadRequest struct {
	DeductedAmount int64 `json:"deducted_amount" form:"deducted_amount" validate:"gte=0"`
}

type FeeDeductionResponse struct {
	ID             string    `json:"id"`
	LeadID         uint      `json:"lead_id"`
	AdminID        uint      `json:"admin_id"`
	OriginalFee    int64     `json:"original_fee"`
	DeductedAmount int64     `json:"deducted_amount"`
	FinalFee       int64     `json:"final_fee"`
	CreatedAt      time.Time `json:"created_at"`
}

type VerifyLeadResponse struct {
	Message   string                `json:"message"`
	Lead      LeadResponse          `json:"lead"`
	Deduction *FeeDeductionResponse `json:"deduction,omitempty"`
	Messages  []flash.Message       `json:"messages"`
}

// AdminDashboardResponse groups leads by the admin action they await.
type AdminDashboardResponse struct {
	PendingVerification []LeadResponse  `json:"pending_verification"`
	PendingApproval     []LeadResponse  `json:"pending_approval"`
	Matched             []LeadResponse  `json:"matched"`
	Tutors              []UserResponse  `json:"tutors"`
	Messages            []flash.Message `json:"messages"`
}
