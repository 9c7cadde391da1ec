package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/mailer"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/otp"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	documentPrefix   = "cnic"
	emailSendTimeout = 30 * time.Second
)

// Upload is one identity document taken from a multipart form.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Documents holds the two identity images a tutor provides at signup.
type Documents struct {
	Front *Upload
	Back  *Upload
}

type AuthService struct {
	db     *gorm.DB
	mailer mailer.Sender
	store  storage.Store
	now    func() time.Time

	// pending tracks OTP emails still being sent after signup returned.
	pending sync.WaitGroup
}

func NewAuthService(db *gorm.DB, sender mailer.Sender, store storage.Store) *AuthService {
	return &AuthService{
		db:     db,
		mailer: sender,
		store:  store,
		now:    time.Now,
	}
}

// Signup creates an unverified student or tutor and emails an OTP. The
// email is sent in the background and a failure does not undo the account.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest, docs Documents) (*models.User, error) {
	role, err := auth.ParseRole(req.UserType)
	if err != nil || !role.SelfRegistrable() {
		return nil, ErrSignupRole
	}

	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := otp.Generate()
	if err != nil {
		return nil, err
	}
	issued := s.now()

	user := models.User{
		Username:         username,
		Password:         string(hash),
		Role:             role,
		FullName:         strings.TrimSpace(req.FullName),
		PhoneNumber:      strings.TrimSpace(req.PhoneNumber),
		Email:            email,
		RegisterAsParent: req.RegisterAsParent,
		OTP:              &code,
		OTPCreatedAt:     &issued,
	}

	var saved []string
	if role == auth.RoleTutor {
		user.FathersName = strings.TrimSpace(req.FathersName)
		user.LastQualification = strings.TrimSpace(req.LastQualification)

		saved, err = s.saveDocuments(ctx, docs)
		if err != nil {
			return nil, err
		}
		user.CNICFrontPath, user.CNICBackPath = saved[0], saved[1]
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		s.removeDocuments(saved)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.Signups.WithLabelValues(string(role)).Inc()
	slog.Info("user registered", "user_id", user.ID, "role", role)

	s.pending.Add(1)
	go func(to, code string, userID uint) {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), emailSendTimeout)
		defer cancel()
		if err := s.sendOTP(ctx, to, code); err != nil {
			slog.Error("signup otp email failed", "user_id", userID, "error", err)
		}
	}(user.Email, code, user.ID)

	return &user, nil
}

// Wait blocks until background OTP emails have finished.
func (s *AuthService) Wait() {
	s.pending.Wait()
}

func (s *AuthService) saveDocuments(ctx context.Context, docs Documents) ([]string, error) {
	if docs.Front == nil || docs.Back == nil || docs.Front.Filename == "" || docs.Back.Filename == "" {
		return nil, ErrMissingDocuments
	}
	for _, u := range []*Upload{docs.Front, docs.Back} {
		if err := storage.CheckUpload(u.Filename, u.Size); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, 2)
	for _, u := range []*Upload{docs.Front, docs.Back} {
		key := storage.Key(documentPrefix, u.Filename)
		if err := s.store.Save(ctx, key, u.Content, u.Size); err != nil {
			s.removeDocuments(keys)
			return nil, fmt.Errorf("failed to store document: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *AuthService) removeDocuments(keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(context.Background(), key); err != nil {
			slog.Error("failed to remove uploaded document", "key", key, "error", err)
		}
	}
}

// Login checks credentials, verification and the requested role, in that order.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, error) {
	requested, err := auth.ParseRole(req.UserType)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}
	if user.Role != requested {
		return nil, ErrRoleMismatch
	}
	return &user, nil
}

// VerifyOTP activates the account registered under email.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*models.User, error) {
	if err := otp.ValidateFormat(code); err != nil {
		metrics.OTPVerifications.WithLabelValues("account", "malformed").Inc()
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.OTPVerifications.WithLabelValues("account", "not_registered").Inc()
			return nil, otp.ErrNotRegistered
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	state := otp.State{Code: user.OTP, IssuedAt: user.OTPCreatedAt, Verified: user.IsVerified}
	if err := otp.Check(state, code, s.now()); err != nil {
		metrics.OTPVerifications.WithLabelValues("account", otpResult(err)).Inc()
		return nil, err
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND otp = ? AND is_verified = ?", user.ID, code, false).
		Updates(map[string]interface{}{"is_verified": true, "otp": nil, "otp_created_at": nil})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to verify user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// A concurrent verify or resend got there first.
		metrics.OTPVerifications.WithLabelValues("account", "mismatch").Inc()
		return nil, otp.ErrMismatch
	}

	metrics.OTPVerifications.WithLabelValues("account", "ok").Inc()
	user.IsVerified, user.OTP, user.OTPCreatedAt = true, nil, nil
	return &user, nil
}

// ResendOTP replaces the account's code and emails it. The new code stays
// stored even if the email fails, so a later resend can be retried.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return otp.ErrNotRegistered
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user.IsVerified {
		return otp.ErrAlreadyVerified
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&user).
		Updates(map[string]interface{}{"otp": code, "otp_created_at": s.now()}).Error; err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := s.sendOTP(ctx, user.Email, code); err != nil {
		slog.Error("resend otp email failed", "user_id", user.ID, "error", err)
		return ErrOTPDelivery
	}
	return nil
}

// CreateAdmin bootstraps a verified admin account. It returns created=false
// when the username already exists.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password, email string) (user *models.User, created bool, err error) {
	if username == "" || len(password) < 8 {
		return nil, false, errors.New("admin username required and password must be at least 8 characters")
	}

	var existing models.User
	err = s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}
	if email == "" {
		email = username + "@tutex.local"
	}

	admin := models.User{
		Username:    username,
		Password:    string(hash),
		Role:        auth.RoleAdmin,
		FullName:    "Administrator",
		PhoneNumber: "0000000000",
		Email:       normalizeEmail(email),
		IsVerified:  true,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create admin: %w", err)
	}
	return &admin, true, nil
}

// GetUser loads an account by id.
func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) sendOTP(ctx context.Context, to, code string) error {
	subject, body := mailer.OTPMessage(code)
	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		metrics.EmailFailures.Inc()
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func otpResult(err error) string {
	switch {
	case errors.Is(err, otp.ErrMalformed):
		return "malformed"
	case errors.Is(err, otp.ErrAlreadyVerified):
		return "already_verified"
	case errors.Is(err, otp.ErrMismatch):
		return "mismatch"
	case errors.Is(err, otp.ErrExpired):
		return "expired"
	case errors.Is(err, otp.ErrNotRegistered):
		return "not_registered"
	default:
		return "error"
	}
}
