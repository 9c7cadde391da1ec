package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/leadstate"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/pricing"
	"gorm.io/gorm"
)

// UpdateTuitionStatus records the outcome of a matched engagement. Marking
// it completed without an end date uses the current time.
func (s *LeadService) UpdateTuitionStatus(ctx context.Context, leadID, tutorID uint, next leadstate.TuitionStatus, endDate *time.Time) (*models.StudentRegistration, error) {
	var lead models.StudentRegistration
	if err := s.db.WithContext(ctx).First(&lead, leadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to load lead: %w", err)
	}
	if lead.Status != leadstate.TutorMatched {
		return nil, ErrLeadNotMatched
	}
	if lead.AcceptedByTutorID == nil || *lead.AcceptedByTutorID != tutorID {
		return nil, ErrNotYourLead
	}
	if !lead.TuitionStatus.CanMoveTo(next) {
		return nil, ErrTuitionStatusMove
	}

	if endDate == nil && next == leadstate.TuitionCompleted {
		now := s.now()
		endDate = &now
	}
	if endDate != nil && endDate.Before(lead.CreatedAt.Truncate(24*time.Hour)) {
		return nil, ErrInvalidEndDate
	}

	res := s.db.WithContext(ctx).Model(&models.StudentRegistration{}).
		Where("id = ? AND status = ? AND tuition_status = ?", lead.ID, leadstate.TutorMatched, lead.TuitionStatus).
		Updates(map[string]interface{}{"tuition_status": next, "tuition_end_date": endDate})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update tuition status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrTuitionStatusMove
	}
	return s.Get(ctx, leadID)
}

// TutorEngagements lists leads the tutor has accepted, awaiting approval or matched.
func (s *LeadService) TutorEngagements(ctx context.Context, tutorID uint) ([]models.StudentRegistration, error) {
	var leads []models.StudentRegistration
	if err := s.db.WithContext(ctx).Scopes(database.AcceptedBy(tutorID)).
		Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to list engagements: %w", err)
	}
	return leads, nil
}

// TutorIncome buckets the fees of the tutor's matched leads by month.
func (s *LeadService) TutorIncome(ctx context.Context, tutorID uint) (pricing.IncomeReport, error) {
	var leads []models.StudentRegistration
	if err := s.db.WithContext(ctx).
		Scopes(database.AcceptedBy(tutorID), database.WithStatus(leadstate.TutorMatched)).
		Find(&leads).Error; err != nil {
		return pricing.IncomeReport{}, fmt.Errorf("failed to load engagements: %w", err)
	}

	engagements := make([]pricing.Engagement, 0, len(leads))
	for _, l := range leads {
		engagements = append(engagements, pricing.Engagement{
			LeadID:  l.ID,
			Fee:     l.TotalFee,
			Start:   l.CreatedAt,
			EndDate: l.TuitionEndDate,
		})
	}
	return pricing.MonthlyIncome(engagements, s.now()), nil
}
