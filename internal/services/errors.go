package services

import "errors"

// Account errors
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrDuplicateAccount   = errors.New("username or email already registered")
	ErrSignupRole         = errors.New("only students and tutors can sign up")
	ErrMissingDocuments   = errors.New("tutors must upload both CNIC images")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotVerified        = errors.New("please verify your account with OTP first")
	ErrRoleMismatch       = errors.New("user type mismatch")
	ErrUserNotFound       = errors.New("user not found")
)

// Lead errors
var (
	ErrLeadNotFound        = errors.New("lead not found")
	ErrLeadAlreadyClaimed  = errors.New("lead already accepted by another tutor")
	ErrLeadEmailTaken      = errors.New("a tuition request with this email already exists")
	ErrNoSubjects          = errors.New("select at least one subject")
	ErrLeadUnconfirmed     = errors.New("student has not confirmed the request email")
	ErrNegativeDeduction   = errors.New("deducted amount cannot be negative")
	ErrDeductionExceedsFee = errors.New("deducted amount exceeds the total fee")
	ErrNotYourLead         = errors.New("lead is not assigned to you")
	ErrLeadNotMatched      = errors.New("tuition status can only be recorded for matched leads")
	ErrTuitionStatusMove   = errors.New("tuition status cannot move backwards")
	ErrInvalidEndDate      = errors.New("end date is before the request was created")
)

// ErrOTPDelivery means the verification email could not be sent.
var ErrOTPDelivery = errors.New("failed to send OTP email")
