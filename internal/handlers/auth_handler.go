package handlers

import (
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/flash"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService   *services.AuthService
	sessions      *session.Manager
	validate      *validation.Validator
	secureCookies bool
}

func NewAuthHandler(authService *services.AuthService, sessions *session.Manager, validate *validation.Validator, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessions:      sessions,
		validate:      validate,
		secureCookies: secureCookies,
	}
}

// Signup accepts JSON, urlencoded or multipart bodies. Tutors must send
// multipart with cnic_front and cnic_back files.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	front, closeFront, err := openUpload(c, "cnic_front")
	if err != nil {
		return respondError(c, err)
	}
	defer closeFront()
	back, closeBack, err := openUpload(c, "cnic_back")
	if err != nil {
		return respondError(c, err)
	}
	defer closeBack()

	user, err := h.authService.Signup(c.UserContext(), &req, services.Documents{Front: front, Back: back})
	if err != nil {
		return respondError(c, err)
	}

	flash.Add(c, flash.Success, "Registration successful! Please check your email for OTP.")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Registration successful",
		"user":      userResponse(user),
		"next_step": "/verify-otp",
		"messages":  flash.Drain(c),
	})
}

// openUpload returns nil when the form has no such file.
func openUpload(c *fiber.Ctx, field string) (*services.Upload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return nil, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &services.Upload{Filename: fh.Filename, Size: fh.Size, Content: f}, func() { f.Close() }, nil
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.sessions.Issue(session.Principal{UserID: user.ID, Username: user.Username, Role: user.Role})
	if err != nil {
		return respondError(c, err)
	}
	session.SetCookie(c, session.CookieName, token, h.sessions.TTL(), h.secureCookies)

	flash.Add(c, flash.Success, "Welcome back, "+user.FullName+"!")
	return c.JSON(dto.LoginResponse{
		Token:    token,
		User:     userResponse(user),
		NextStep: user.Role.Home(),
		Messages: flash.Drain(c),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session.ClearCookie(c, session.CookieName)
	flash.Add(c, flash.Info, "You have been logged out.")
	return c.JSON(dto.MessageResponse{
		Message:  "Logged out",
		NextStep: "/login",
		Messages: flash.Drain(c),
	})
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.OTPRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	if _, err := h.authService.VerifyOTP(c.UserContext(), req.Email, req.OTP); err != nil {
		return respondError(c, err)
	}

	flash.Add(c, flash.Success, "Account verified successfully. You can now log in.")
	return c.JSON(dto.MessageResponse{
		Message:  "Account verified successfully",
		NextStep: "/login",
		Messages: flash.Drain(c),
	})
}

func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req dto.ResendOTPRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.authService.ResendOTP(c.UserContext(), req.Email); err != nil {
		return respondError(c, err)
	}

	flash.Add(c, flash.Info, "A new OTP has been sent to your email.")
	return c.JSON(dto.MessageResponse{
		Message:  "OTP resent",
		NextStep: "/verify-otp",
		Messages: flash.Drain(c),
	})
}

// Me returns the logged-in account.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, err := session.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.authService.GetUser(c.UserContext(), p.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": userResponse(user), "messages": flash.Drain(c)})
}
