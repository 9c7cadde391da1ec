package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/leadstate"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, username string, role auth.Role) *models.User {
	t.Helper()
	u := models.User{
		Username:    username,
		Password:    "x",
		Role:        role,
		FullName:    username,
		PhoneNumber: "03001234567",
		Email:       username + "@example.com",
		IsVerified:  true,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func leadRequest(email string, subjects ...string) *dto.SubmitLeadRequest {
	return &dto.SubmitLeadRequest{
		FullName:    "Ayesha Khan",
		PhoneNumber: "03001234567",
		Email:       email,
		Area:        "DHA",
		Address:     "Phase 6",
		Board:       "Cambridge A'Levels",
		Subjects:    subjects,
	}
}

func storedLead(t *testing.T, db *gorm.DB, id uint) models.StudentRegistration {
	t.Helper()
	var lead models.StudentRegistration
	require.NoError(t, db.First(&lead, id).Error)
	return lead
}

// confirmedLead submits a lead and confirms its email.
func confirmedLead(t *testing.T, svc *LeadService, db *gorm.DB, email string) *models.StudentRegistration {
	t.Helper()
	ctx := context.Background()
	lead, err := svc.Submit(ctx, leadRequest(email, "Mathematics - 101"))
	require.NoError(t, err)
	stored := storedLead(t, db, lead.ID)
	require.NotNil(t, stored.OTP)
	lead, err = svc.VerifyOTP(ctx, email, *stored.OTP)
	require.NoError(t, err)
	return lead
}

// availableLead returns a lead an admin has already verified.
func availableLead(t *testing.T, svc *LeadService, db *gorm.DB, email string, adminID uint) *models.StudentRegistration {
	t.Helper()
	lead := confirmedLead(t, svc, db, email)
	lead, _, err := svc.Verify(context.Background(), lead.ID, adminID, 0)
	require.NoError(t, err)
	require.Equal(t, leadstate.VerifiedAvailable, lead.Status)
	return lead
}

func newLeadService(t *testing.T) (*LeadService, *gorm.DB, *testutil.FakeMailer) {
	t.Helper()
	db := testutil.NewDB(t)
	mail := testutil.NewFakeMailer()
	return NewLeadService(db, mail), db, mail
}
