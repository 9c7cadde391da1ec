package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/flash"
)

// SignupRequest carries the text fields of the signup form. Tutor identity
// documents arrive as multipart files cnic_front and cnic_back.
type SignupRequest struct {
	Username          string `json:"username" form:"username" validate:"required,min=3,max=80"`
	Password          string `json:"password" form:"password" validate:"required,min=8,max=72"`
	UserType          string `json:"user_type" form:"user_type" validate:"required"`
	FullName          string `json:"full_name" form:"full_name" validate:"required,max=120"`
	PhoneNumber       string `json:"phone_number" form:"phone_number" validate:"required,max=20"`
	Email             string `json:"email" form:"email" validate:"required,email,max=255"`
	FathersName       string `json:"fathers_name" form:"fathers_name" validate:"max=120"`
	LastQualification string `json:"last_qualification" form:"last_qualification" validate:"max=120"`
	RegisterAsParent  bool   `json:"register_as_parent" form:"register_as_parent"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	UserType string `json:"user_type" form:"user_type" validate:"required"`
}

// OTPRequest is shared by account and lead verification. The code length is
// checked by the OTP verifier so a malformed code gets its own message.
type OTPRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
	OTP   string `json:"otp" form:"otp"`
}

type ResendOTPRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type UserResponse struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token    string          `json:"token"`
	User     UserResponse    `json:"user"`
	NextStep string          `json:"next_step"`
	Messages []flash.Message `json:"messages"`
}

type ErrorResponse struct {
	Error    bool              `json:"error"`
	Message  string            `json:"message"`
	Fields   map[string]string `json:"fields,omitempty"`
	Messages []flash.Message   `json:"messages,omitempty"`
}

type MessageResponse struct {
	Message  string          `json:"message"`
	NextStep string          `json:"next_step,omitempty"`
	Messages []flash.Message `json:"messages"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
