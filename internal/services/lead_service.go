package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/leadstate"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/mailer"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/otp"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/pricing"
	"gorm.io/gorm"
)

type LeadService struct {
	db     *gorm.DB
	mailer mailer.Sender
	now    func() time.Time
}

func NewLeadService(db *gorm.DB, sender mailer.Sender) *LeadService {
	return &LeadService{db: db, mailer: sender, now: time.Now}
}

// Quote prices a request without persisting anything.
func (s *LeadService) Quote(area, board string, subjects []string) pricing.Quote {
	return pricing.Calculate(strings.TrimSpace(area), strings.TrimSpace(board), cleanSubjects(subjects))
}

// Submit stores a new lead and emails its OTP. If the email cannot be sent
// the lead is removed again and ErrOTPDelivery is returned.
func (s *LeadService) Submit(ctx context.Context, req *dto.SubmitLeadRequest) (*models.StudentRegistration, error) {
	subjects := cleanSubjects(req.Subjects)
	if len(subjects) == 0 {
		return nil, ErrNoSubjects
	}
	email := normalizeEmail(req.Email)

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.StudentRegistration{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check lead email: %w", err)
	}
	if count > 0 {
		return nil, ErrLeadEmailTaken
	}

	code, err := otp.Generate()
	if err != nil {
		return nil, err
	}
	issued := s.now()

	area, board := strings.TrimSpace(req.Area), strings.TrimSpace(req.Board)
	lead := models.StudentRegistration{
		FullName:     strings.TrimSpace(req.FullName),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		Email:        email,
		Area:         area,
		Address:      strings.TrimSpace(req.Address),
		Board:        board,
		Subjects:     models.JoinSubjects(subjects),
		TotalFee:     pricing.Total(area, board, subjects),
		OTP:          &code,
		OTPCreatedAt: &issued,
		Status:       leadstate.PendingAdminVerification,
	}
	if err := s.db.WithContext(ctx).Create(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLeadEmailTaken
		}
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	metrics.LeadsSubmitted.Inc()

	subject, body := mailer.OTPMessage(code)
	if err := s.mailer.Send(ctx, lead.Email, subject, body); err != nil {
		metrics.EmailFailures.Inc()
		slog.Error("lead otp email failed", "lead_id", lead.ID, "error", err)
		if derr := s.db.WithContext(context.WithoutCancel(ctx)).Delete(&models.StudentRegistration{}, lead.ID).Error; derr != nil {
			slog.Error("failed to remove unconfirmed lead", "lead_id", lead.ID, "error", derr)
		}
		return nil, ErrOTPDelivery
	}

	slog.Info("lead submitted", "lead_id", lead.ID, "total_fee", lead.TotalFee)
	return &lead, nil
}

// VerifyOTP confirms the email of a submitted lead.
func (s *LeadService) VerifyOTP(ctx context.Context, email, code string) (*models.StudentRegistration, error) {
	if err := otp.ValidateFormat(code); err != nil {
		metrics.OTPVerifications.WithLabelValues("lead", "malformed").Inc()
		return nil, err
	}

	var lead models.StudentRegistration
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.OTPVerifications.WithLabelValues("lead", "not_registered").Inc()
			return nil, otp.ErrNotRegistered
		}
		return nil, fmt.Errorf("failed to load lead: %w", err)
	}

	state := otp.State{Code: lead.OTP, IssuedAt: lead.OTPCreatedAt, Verified: lead.IsVerified}
	if err := otp.Check(state, code, s.now()); err != nil {
		metrics.OTPVerifications.WithLabelValues("lead", otpResult(err)).Inc()
		return nil, err
	}

	res := s.db.WithContext(ctx).Model(&models.StudentRegistration{}).
		Where("id = ? AND otp = ? AND is_verified = ?", lead.ID, code, false).
		Updates(map[string]interface{}{"is_verified": true, "otp": nil, "otp_created_at": nil})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to verify lead: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		metrics.OTPVerifications.WithLabelValues("lead", "mismatch").Inc()
		return nil, otp.ErrMismatch
	}

	metrics.OTPVerifications.WithLabelValues("lead", "ok").Inc()
	lead.IsVerified, lead.OTP, lead.OTPCreatedAt = true, nil, nil
	return &lead, nil
}

// ResendOTP issues a fresh code for an unconfirmed lead.
func (s *LeadService) ResendOTP(ctx context.Context, email string) error {
	var lead models.StudentRegistration
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return otp.ErrNotRegistered
		}
		return fmt.Errorf("failed to load lead: %w", err)
	}
	if lead.IsVerified {
		return otp.ErrAlreadyVerified
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&lead).
		Updates(map[string]interface{}{"otp": code, "otp_created_at": s.now()}).Error; err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	subject, body := mailer.OTPMessage(code)
	if err := s.mailer.Send(ctx, lead.Email, subject, body); err != nil {
		metrics.EmailFailures.Inc()
		slog.Error("resend lead otp email failed", "lead_id", lead.ID, "error", err)
		return ErrOTPDelivery
	}
	return nil
}

// Summary returns a lead with its fee breakdown.
func (s *LeadService) Summary(ctx context.Context, id uint) (*models.StudentRegistration, pricing.Quote, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, pricing.Quote{}, err
	}
	return lead, pricing.Calculate(lead.Area, lead.Board, lead.SubjectList()), nil
}

func (s *LeadService) Get(ctx context.Context, id uint) (*models.StudentRegistration, error) {
	var lead models.StudentRegistration
	if err := s.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to load lead: %w", err)
	}
	return &lead, nil
}

// ListAvailable returns verified leads open to tutors, newest first.
func (s *LeadService) ListAvailable(ctx context.Context, filter dto.LeadFilter) ([]models.StudentRegistration, error) {
	var leads []models.StudentRegistration
	err := s.db.WithContext(ctx).
		Scopes(
			database.WithStatus(leadstate.VerifiedAvailable),
			database.MatchingFilter(filter.Area, filter.Board, filter.Subject),
		).
		Order("created_at DESC, id DESC").
		Find(&leads).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

// Accept claims an available lead for tutorID. Exactly one of several
// concurrent calls succeeds; the others get ErrLeadAlreadyClaimed.
func (s *LeadService) Accept(ctx context.Context, leadID, tutorID uint) (*models.StudentRegistration, error) {
	err := s.transition(s.db.WithContext(ctx), leadID, leadstate.EventAccept, map[string]interface{}{
		"accepted_by_tutor_id": tutorID,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("lead accepted", "lead_id", leadID, "user_id", tutorID)
	return s.Get(ctx, leadID)
}

// transition fires event on a lead with a single UPDATE guarded by the
// event's source state.
func (s *LeadService) transition(tx *gorm.DB, leadID uint, event leadstate.Event, extra map[string]interface{}) error {
	from, ok := leadstate.Source(event)
	if !ok {
		return fmt.Errorf("unknown lead event %q", event)
	}
	to, err := leadstate.Next(leadID, from, event)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"status": to}
	for k, v := range extra {
		updates[k] = v
	}

	res := tx.Model(&models.StudentRegistration{}).
		Where("id = ? AND status = ?", leadID, from).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to %s lead %d: %w", event, leadID, res.Error)
	}
	if res.RowsAffected == 1 {
		metrics.LeadTransitions.WithLabelValues(string(event), "ok").Inc()
		return nil
	}

	var current models.StudentRegistration
	if err := tx.Select("id", "status").First(&current, leadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.LeadTransitions.WithLabelValues(string(event), "not_found").Inc()
			return ErrLeadNotFound
		}
		return fmt.Errorf("failed to load lead: %w", err)
	}
	if event == leadstate.EventAccept && leadstate.TutorEngaged(current.Status) {
		metrics.LeadTransitions.WithLabelValues(string(event), "conflict").Inc()
		return ErrLeadAlreadyClaimed
	}
	metrics.LeadTransitions.WithLabelValues(string(event), "invalid").Inc()
	return &leadstate.TransitionError{LeadID: leadID, Event: event, Current: current.Status}
}

func cleanSubjects(subjects []string) []string {
	out := make([]string, 0, len(subjects))
	seen := make(map[string]bool, len(subjects))
	for _, raw := range subjects {
		for _, part := range strings.Split(raw, ",") {
			subject := strings.TrimSpace(part)
			if subject == "" || seen[subject] {
				continue
			}
			seen[subject] = true
			out = append(out, subject)
		}
	}
	return out
}
