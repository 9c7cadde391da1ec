package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/leadstate"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/models"
	"gorm.io/gorm"
)

// AdminDashboard groups leads by the admin action they are waiting for.
type AdminDashboard struct {
	PendingVerification []models.StudentRegistration
	PendingApproval     []models.StudentRegistration
	Matched             []models.StudentRegistration
	Tutors              []models.User
}

func (s *LeadService) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	db := s.db.WithContext(ctx)
	var d AdminDashboard

	if err := db.Scopes(database.WithStatus(leadstate.PendingAdminVerification)).
		Order("created_at ASC").Find(&d.PendingVerification).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending leads: %w", err)
	}
	if err := db.Scopes(database.WithStatus(leadstate.PendingTutorApproval)).
		Preload("AcceptedByTutor").Order("updated_at ASC").Find(&d.PendingApproval).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending matches: %w", err)
	}
	if err := db.Scopes(database.WithStatus(leadstate.TutorMatched)).
		Preload("AcceptedByTutor").Order("updated_at DESC").Find(&d.Matched).Error; err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	if err := db.Where("role = ?", auth.RoleTutor).Order("created_at DESC").Find(&d.Tutors).Error; err != nil {
		return nil, fmt.Errorf("failed to list tutors: %w", err)
	}
	return &d, nil
}

// Verify publishes a pending lead to tutors, optionally lowering its fee.
// A FeeDeduction is recorded only when deducted > 0.
func (s *LeadService) Verify(ctx context.Context, leadID, adminID uint, deducted int64) (*models.StudentRegistration, *models.FeeDeduction, error) {
	if deducted < 0 {
		return nil, nil, ErrNegativeDeduction
	}

	var deduction *models.FeeDeduction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lead models.StudentRegistration
		if err := tx.First(&lead, leadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLeadNotFound
			}
			return fmt.Errorf("failed to load lead: %w", err)
		}
		if _, err := leadstate.Next(lead.ID, lead.Status, leadstate.EventVerify); err != nil {
			return err
		}
		if !lead.IsVerified {
			return ErrLeadUnconfirmed
		}
		if deducted > lead.TotalFee {
			return ErrDeductionExceedsFee
		}

		final := lead.TotalFee - deducted
		if err := s.transition(tx, lead.ID, leadstate.EventVerify, map[string]interface{}{
			"total_fee": final,
		}); err != nil {
			return err
		}

		if deducted > 0 {
			deduction = &models.FeeDeduction{
				LeadID:         lead.ID,
				AdminID:        adminID,
				OriginalFee:    lead.TotalFee,
				DeductedAmount: deducted,
				FinalFee:       final,
			}
			if err := tx.Create(deduction).Error; err != nil {
				return fmt.Errorf("failed to record fee deduction: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("lead verified", "lead_id", leadID, "user_id", adminID, "deducted", deducted)
	lead, err := s.Get(ctx, leadID)
	if err != nil {
		return nil, nil, err
	}
	return lead, deduction, nil
}

// RejectLead discards a lead that never reached tutors.
func (s *LeadService) RejectLead(ctx context.Context, leadID uint) (*models.StudentRegistration, error) {
	if err := s.transition(s.db.WithContext(ctx), leadID, leadstate.EventRejectLead, nil); err != nil {
		return nil, err
	}
	slog.Info("lead rejected", "lead_id", leadID)
	return s.Get(ctx, leadID)
}

// ApproveMatch confirms the tutor who accepted the lead.
func (s *LeadService) ApproveMatch(ctx context.Context, leadID uint) (*models.StudentRegistration, error) {
	if err := s.transition(s.db.WithContext(ctx), leadID, leadstate.EventApproveMatch, nil); err != nil {
		return nil, err
	}
	slog.Info("tutor match approved", "lead_id", leadID)
	return s.Get(ctx, leadID)
}

// RejectMatch returns the lead to the available pool and forgets the tutor.
func (s *LeadService) RejectMatch(ctx context.Context, leadID uint) (*models.StudentRegistration, error) {
	err := s.transition(s.db.WithContext(ctx), leadID, leadstate.EventRejectMatch, map[string]interface{}{
		"accepted_by_tutor_id": nil,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("tutor match rejected", "lead_id", leadID)
	return s.Get(ctx, leadID)
}
