package handlers

import (
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/flash"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

// LeadHandler serves the public student request flow.
type LeadHandler struct {
	leadService   *services.LeadService
	sessions      *session.Manager
	validate      *validation.Validator
	secureCookies bool
}

func NewLeadHandler(leadService *services.LeadService, sessions *session.Manager, validate *validation.Validator, secureCookies bool) *LeadHandler {
	return &LeadHandler{
		leadService:   leadService,
		sessions:      sessions,
		validate:      validate,
		secureCookies: secureCookies,
	}
}

func (h *LeadHandler) Quote(c *fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, validation.Errors{"body": "could not be parsed"})
	}
	return c.JSON(dto.QuoteResponse{
		Quote:    h.leadService.Quote(req.Area, req.Board, req.Subjects),
		Messages: flash.Drain(c),
	})
}

func (h *LeadHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitLeadRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	lead, err := h.leadService.Submit(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	flash.Add(c, flash.Success, "Request submitted! Please check your email for the OTP.")
	return c.Status(fiber.StatusCreated).JSON(dto.LeadActionResponse{
		Message:  "Tuition request submitted",
		Lead:     leadResponse(lead, true),
		Messages: flash.Drain(c),
	})
}

// VerifyOTP confirms the request email and grants a short-lived summary cookie.
func (h *LeadHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.OTPRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	lead, err := h.leadService.VerifyOTP(c.UserContext(), req.Email, req.OTP)
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.sessions.IssueLead(lead.ID)
	if err != nil {
		return respondError(c, err)
	}
	session.SetCookie(c, session.LeadCookieName, token, h.sessions.LeadTTL(), h.secureCookies)

	flash.Add(c, flash.Success, "Email verified! Our team will review your request shortly.")
	return c.JSON(dto.MessageResponse{
		Message:  "Tuition request verified",
		NextStep: "/student/summary",
		Messages: flash.Drain(c),
	})
}

func (h *LeadHandler) ResendOTP(c *fiber.Ctx) error {
	var req dto.ResendOTPRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.leadService.ResendOTP(c.UserContext(), req.Email); err != nil {
		return respondError(c, err)
	}

	flash.Add(c, flash.Info, "A new OTP has been sent to your email.")
	return c.JSON(dto.MessageResponse{
		Message:  "OTP resent",
		NextStep: "/student/verify-otp",
		Messages: flash.Drain(c),
	})
}

func (h *LeadHandler) Summary(c *fiber.Ctx) error {
	leadID, err := h.sessions.ParseLead(c.Cookies(session.LeadCookieName))
	if err != nil {
		return respondError(c, err)
	}

	lead, quote, err := h.leadService.Summary(c.UserContext(), leadID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.LeadSummaryResponse{
		Lead:     leadResponse(lead, true),
		Quote:    quote,
		Messages: flash.Drain(c),
	})
}

// NewCalculation forgets the verified request so another can be priced.
func (h *LeadHandler) NewCalculation(c *fiber.Ctx) error {
	session.ClearCookie(c, session.LeadCookieName)
	return c.JSON(dto.MessageResponse{
		Message:  "Start a new calculation",
		NextStep: "/",
		Messages: flash.Drain(c),
	})
}
