package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/flash"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/pricing"
)

type QuoteRequest struct {
	Area     string   `json:"area" form:"area"`
	Board    string   `json:"board" form:"board"`
	Subjects []string `json:"subjects" form:"subjects"`
}

type SubmitLeadRequest struct {
	FullName    string   `json:"full_name" form:"full_name" validate:"required,max=120"`
	PhoneNumber string   `json:"phone_number" form:"phone_number" validate:"required,max=20"`
	Email       string   `json:"email" form:"email" validate:"required,email,max=255"`
	Area        string   `json:"area" form:"area" validate:"required,max=120"`
	Address     string   `json:"address" form:"address" validate:"max=255"`
	Board       string   `json:"board" form:"board" validate:"required,max=120"`
	Subjects    []string `json:"subjects" form:"subjects"`
}

// LeadFilter narrows the tutor dashboard. Empty fields match everything.
type LeadFilter struct {
	Area    string `json:"area" form:"area" query:"area"`
	Board   string `json:"board" form:"board" query:"board"`
	Subject string `json:"subject" form:"subject" query:"subject"`
}

type LeadResponse struct {
	ID                uint       `json:"id"`
	FullName          string     `json:"full_name"`
	PhoneNumber       string     `json:"phone_number,omitempty"`
	Email             string     `json:"email,omitempty"`
	Area              string     `json:"area"`
	Address           string     `json:"address,omitempty"`
	Board             string     `json:"board"`
	Subjects          []string   `json:"subjects"`
	TotalFee          int64      `json:"total_fee"`
	IsVerified        bool       `json:"is_verified"`
	Status            string     `json:"status"`
	AcceptedByTutorID *uint      `json:"accepted_by_tutor_id,omitempty"`
	TuitionStatus     string     `json:"tuition_status,omitempty"`
	TuitionEndDate    *time.Time `json:"tuition_end_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type QuoteResponse struct {
	Quote    pricing.Quote   `json:"quote"`
	Messages []flash.Message `json:"messages"`
}

type LeadSummaryResponse struct {
	Lead     LeadResponse    `json:"lead"`
	Quote    pricing.Quote   `json:"quote"`
	Messages []flash.Message `json:"messages"`
}

type LeadListResponse struct {
	Leads    []LeadResponse  `json:"leads"`
	Filter   LeadFilter      `json:"filter"`
	Messages []flash.Message `json:"messages"`
}

type LeadActionResponse struct {
	Message  string          `json:"message"`
	Lead     LeadResponse    `json:"lead"`
	Messages []flash.Message `json:"messages"`
}

type TuitionStatusRequest struct {
	TuitionStatus string `json:"tuition_status" form:"tuition_status" validate:"required"`
	// EndDate is YYYY-MM-DD; empty means no end date.
	EndDate string `json:"end_date" form:"end_date"`
}

type IncomeResponse struct {
	Months   []pricing.MonthIncome `json:"months"`
	Total    int64                 `json:"total"`
	Messages []flash.Message       `json:"messages"`
}
