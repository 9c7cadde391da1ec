package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/flash"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/leadstate"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/otp"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/storage"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

var badRequest = []error{
	auth.ErrInvalidRole,
	services.ErrSignupRole,
	services.ErrMissingDocuments,
	services.ErrNoSubjects,
	services.ErrNegativeDeduction,
	services.ErrDeductionExceedsFee,
	services.ErrInvalidEndDate,
	storage.ErrDisallowedType,
	storage.ErrTooLarge,
	otp.ErrMalformed,
	otp.ErrMismatch,
	otp.ErrExpired,
}

var conflict = []error{
	services.ErrUsernameTaken,
	services.ErrEmailTaken,
	services.ErrDuplicateAccount,
	services.ErrLeadEmailTaken,
	services.ErrLeadAlreadyClaimed,
	services.ErrLeadUnconfirmed,
	services.ErrLeadNotMatched,
	services.ErrTuitionStatusMove,
	otp.ErrAlreadyVerified,
}

var notFound = []error{
	services.ErrLeadNotFound,
	services.ErrUserNotFound,
	otp.ErrNotRegistered,
}

var forbidden = []error{
	services.ErrNotVerified,
	services.ErrRoleMismatch,
	services.ErrNotYourLead,
}

var unauthorized = []error{
	services.ErrInvalidCredentials,
	session.ErrNoSession,
	session.ErrInvalidToken,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	var verrs validation.Errors
	var terr *leadstate.TransitionError
	switch {
	case errors.As(err, &verrs), isAny(err, badRequest):
		return fiber.StatusBadRequest
	case errors.As(err, &terr), isAny(err, conflict):
		return fiber.StatusConflict
	case isAny(err, notFound):
		return fiber.StatusNotFound
	case isAny(err, forbidden):
		return fiber.StatusForbidden
	case isAny(err, unauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrOTPDelivery):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func messageFor(err error) string {
	switch {
	case isAny(err, []error{otp.ErrMalformed, otp.ErrMismatch, otp.ErrExpired, otp.ErrNotRegistered, otp.ErrAlreadyVerified}):
		return otp.Message(err)
	case errors.Is(err, services.ErrOTPDelivery):
		return "Failed to send OTP email. Please try again."
	}
	return err.Error()
}

// respondError writes err as a JSON error response. Server errors are logged
// and their details hidden.
func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	resp := dto.ErrorResponse{Error: true, Message: messageFor(err)}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		resp.Message = "Please correct the highlighted fields"
		resp.Fields = verrs
	}
	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"error", err.Error(),
		)
		if status == fiber.StatusInternalServerError {
			resp.Message = "Internal server error"
		}
	}

	flash.Add(c, flash.Danger, resp.Message)
	resp.Messages = flash.Drain(c)
	return c.Status(status).JSON(resp)
}

// bind parses the body (JSON or form) into v and validates it.
func bind(c *fiber.Ctx, v *validation.Validator, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return validation.Errors{"body": "could not be parsed"}
	}
	return v.Struct(dst)
}
