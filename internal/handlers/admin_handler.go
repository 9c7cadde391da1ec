package handlers

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/flash"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	leadService *services.LeadService
	validate    *validation.Validator
}

func NewAdminHandler(leadService *services.LeadService, validate *validation.Validator) *AdminHandler {
	return &AdminHandler{leadService: leadService, validate: validate}
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.leadService.AdminDashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AdminDashboardResponse{
		PendingVerification: leadResponses(d.PendingVerification, true),
		PendingApproval:     leadResponses(d.PendingApproval, true),
		Matched:             leadResponses(d.Matched, true),
		Tutors:              userResponses(d.Tutors),
		Messages:            flash.Drain(c),
	})
}

// VerifyLead accepts an optional deducted_amount. An empty body means no deduction.
func (h *AdminHandler) VerifyLead(c *fiber.Ctx) error {
	p, err := session.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := leadID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.VerifyLeadRequest
	if len(c.Body()) > 0 {
		if err := bind(c, h.validate, &req); err != nil {
			return respondError(c, err)
		}
	}

	lead, deduction, err := h.leadService.Verify(c.UserContext(), id, p.UserID, req.DeductedAmount)
	if err != nil {
		return respondError(c, err)
	}

	if deduction != nil {
		flash.Add(c, flash.Success, fmt.Sprintf("Lead verified. Fee reduced by Rs. %d to Rs. %d.", deduction.DeductedAmount, deduction.FinalFee))
	} else {
		flash.Add(c, flash.Success, "Lead verified and published to tutors.")
	}
	return c.JSON(dto.VerifyLeadResponse{
		Message:   "Lead verified",
		Lead:      leadResponse(lead, true),
		Deduction: deductionResponse(deduction),
		Messages:  flash.Drain(c),
	})
}

func (h *AdminHandler) RejectLead(c *fiber.Ctx) error {
	return h.act(c, h.leadService.RejectLead, "Lead rejected")
}

func (h *AdminHandler) ApproveMatch(c *fiber.Ctx) error {
	return h.act(c, h.leadService.ApproveMatch, "Tutor match approved")
}

func (h *AdminHandler) RejectMatch(c *fiber.Ctx) error {
	return h.act(c, h.leadService.RejectMatch, "Tutor match rejected; lead is available again")
}

type leadAction func(ctx context.Context, id uint) (*models.StudentRegistration, error)

func (h *AdminHandler) act(c *fiber.Ctx, action leadAction, message string) error {
	id, err := leadID(c)
	if err != nil {
		return respondError(c, err)
	}

	lead, err := action(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	flash.Add(c, flash.Success, message+".")
	return c.JSON(dto.LeadActionResponse{
		Message:  message,
		Lead:     leadResponse(lead, true),
		Messages: flash.Drain(c),
	})
}
