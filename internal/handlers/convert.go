package handlers

import (
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/models"
)

// leadResponse hides student contact details unless withContact is set.
func leadResponse(l *models.StudentRegistration, withContact bool) dto.LeadResponse {
	r := dto.LeadResponse{
		ID:                l.ID,
		FullName:          l.FullName,
		Area:              l.Area,
		Board:             l.Board,
		Subjects:          l.SubjectList(),
		TotalFee:          l.TotalFee,
		IsVerified:        l.IsVerified,
		Status:            string(l.Status),
		AcceptedByTutorID: l.AcceptedByTutorID,
		TuitionStatus:     string(l.TuitionStatus),
		TuitionEndDate:    l.TuitionEndDate,
		CreatedAt:         l.CreatedAt,
	}
	if r.Subjects == nil {
		r.Subjects = []string{}
	}
	if withContact {
		r.PhoneNumber = l.PhoneNumber
		r.Email = l.Email
		r.Address = l.Address
	}
	return r
}

func leadResponses(leads []models.StudentRegistration, withContact bool) []dto.LeadResponse {
	out := make([]dto.LeadResponse, 0, len(leads))
	for i := range leads {
		out = append(out, leadResponse(&leads[i], withContact))
	}
	return out
}

func userResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        string(u.Role),
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt,
	}
}

func userResponses(users []models.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i]))
	}
	return out
}

func deductionResponse(d *models.FeeDeduction) *dto.FeeDeductionResponse {
	if d == nil {
		return nil
	}
	return &dto.FeeDeductionResponse{
		ID:             d.ID.String(),
		LeadID:         d.LeadID,
		AdminID:        d.AdminID,
		OriginalFee:    d.OriginalFee,
		DeductedAmount: d.DeductedAmount,
		FinalFee:       d.FinalFee,
		CreatedAt:      d.CreatedAt,
	}
}
