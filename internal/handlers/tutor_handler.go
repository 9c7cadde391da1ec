package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/flash"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/leadstate"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

const endDateLayout = "2006-01-02"

type TutorHandler struct {
	leadService *services.LeadService
	validate    *validation.Validator
}

func NewTutorHandler(leadService *services.LeadService, validate *validation.Validator) *TutorHandler {
	return &TutorHandler{leadService: leadService, validate: validate}
}

// Dashboard lists available leads. GET reads filters from the query string,
// POST from the body.
func (h *TutorHandler) Dashboard(c *fiber.Ctx) error {
	var filter dto.LeadFilter
	var err error
	if c.Method() == fiber.MethodPost {
		err = c.BodyParser(&filter)
	} else {
		err = c.QueryParser(&filter)
	}
	if err != nil {
		return respondError(c, validation.Errors{"filter": "could not be parsed"})
	}

	leads, err := h.leadService.ListAvailable(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}

	if len(leads) == 0 {
		flash.Add(c, flash.Info, "No tuition requests match your filters.")
	}
	return c.JSON(dto.LeadListResponse{
		Leads:    leadResponses(leads, false),
		Filter:   filter,
		Messages: flash.Drain(c),
	})
}

func (h *TutorHandler) Accept(c *fiber.Ctx) error {
	p, err := session.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := leadID(c)
	if err != nil {
		return respondError(c, err)
	}

	lead, err := h.leadService.Accept(c.UserContext(), id, p.UserID)
	if err != nil {
		return respondError(c, err)
	}

	flash.Add(c, flash.Success, "Lead accepted! Awaiting admin approval.")
	return c.JSON(dto.LeadActionResponse{
		Message:  "Lead accepted",
		Lead:     leadResponse(lead, false),
		Messages: flash.Drain(c),
	})
}

func (h *TutorHandler) Engagements(c *fiber.Ctx) error {
	p, err := session.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	leads, err := h.leadService.TutorEngagements(c.UserContext(), p.UserID)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.LeadResponse, 0, len(leads))
	for i := range leads {
		// Contact details are released once the admin approves the match.
		out = append(out, leadResponse(&leads[i], leads[i].Status == leadstate.TutorMatched))
	}
	return c.JSON(fiber.Map{"leads": out, "messages": flash.Drain(c)})
}

func (h *TutorHandler) Income(c *fiber.Ctx) error {
	p, err := session.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	report, err := h.leadService.TutorIncome(c.UserContext(), p.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IncomeResponse{
		Months:   report.Months,
		Total:    report.Total,
		Messages: flash.Drain(c),
	})
}

func (h *TutorHandler) UpdateTuitionStatus(c *fiber.Ctx) error {
	p, err := session.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := leadID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.TuitionStatusRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	status, err := leadstate.ParseTuitionStatus(req.TuitionStatus)
	if err != nil {
		return respondError(c, validation.Errors{"tuition_status": "must be ongoing or completed"})
	}
	var endDate *time.Time
	if req.EndDate != "" {
		d, err := time.Parse(endDateLayout, req.EndDate)
		if err != nil {
			return respondError(c, validation.Errors{"end_date": "must be a date in YYYY-MM-DD format"})
		}
		endDate = &d
	}

	lead, err := h.leadService.UpdateTuitionStatus(c.UserContext(), id, p.UserID, status, endDate)
	if err != nil {
		return respondError(c, err)
	}

	flash.Add(c, flash.Success, "Tuition status updated.")
	return c.JSON(dto.LeadActionResponse{
		Message:  "Tuition status updated",
		Lead:     leadResponse(lead, true),
		Messages: flash.Drain(c),
	})
}

func leadID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, validation.Errors{"id": "must be a positive integer"}
	}
	return uint(id), nil
}
