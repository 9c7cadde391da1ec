package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/flash"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	sessions *session.Manager,
	pagesHandler *handlers.PagesHandler,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	leadHandler *handlers.LeadHandler,
	tutorHandler *handlers.TutorHandler,
	adminHandler *handlers.AdminHandler,
) {
	app.Use(flash.Middleware())

	// Ops
	app.Get("/api/health", healthHandler.Check)
	app.Get("/metrics", metrics.Handler())

	// Static pages
	app.Get("/", pagesHandler.Home)
	app.Get("/student", pagesHandler.Home)
	app.Get("/courses", pagesHandler.Courses)
	app.Get("/how_it_works", pagesHandler.HowItWorks)
	app.Get("/contact", pagesHandler.Contact)
	app.Get("/login", pagesHandler.Login)

	general := limiter.New(limiter.Config{
		Max:               cfg.RateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	// Credential and OTP endpoints get a stricter limit
	strict := limiter.New(limiter.Config{
		Max:               cfg.AuthRateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	// Accounts
	app.Post("/login", strict, authHandler.Login)
	app.Get("/logout", authHandler.Logout)
	app.Post("/signup", strict, authHandler.Signup)
	app.Post("/verify-otp", strict, authHandler.VerifyOTP)
	app.Post("/resend-otp", strict, authHandler.ResendOTP)

	// Student requests (no account needed)
	student := app.Group("/student", general)
	student.Post("/quote", leadHandler.Quote)
	student.Post("/submit", leadHandler.Submit)
	student.Post("/verify-otp", strict, leadHandler.VerifyOTP)
	student.Post("/resend-otp", strict, leadHandler.ResendOTP)
	student.Get("/summary", leadHandler.Summary)
	student.Post("/new-calculation", leadHandler.NewCalculation)

	// Logged-in routes
	loggedIn := middleware.SessionRequired(sessions)
	can := middleware.Require

	app.Get("/account", general, loggedIn, can(auth.CapViewOwnAccount), authHandler.Me)

	app.Get("/tutor_dashboard", general, loggedIn, can(auth.CapBrowseLeads), tutorHandler.Dashboard)
	app.Post("/tutor_dashboard", general, loggedIn, can(auth.CapBrowseLeads), tutorHandler.Dashboard)
	app.Post("/accept_lead/:id", general, loggedIn, can(auth.CapAcceptLead), tutorHandler.Accept)
	app.Get("/tutor/engagements", general, loggedIn, can(auth.CapAcceptLead), tutorHandler.Engagements)
	app.Get("/tutor/income", general, loggedIn, can(auth.CapViewIncome), tutorHandler.Income)
	app.Post("/update_tuition_status/:id", general, loggedIn, can(auth.CapRecordTuition), tutorHandler.UpdateTuitionStatus)

	app.Get("/admin", general, loggedIn, can(auth.CapViewAdminPanel), adminHandler.Dashboard)
	app.Post("/verify_lead/:id", general, loggedIn, can(auth.CapVerifyLead), adminHandler.VerifyLead)
	app.Post("/reject_lead/:id", general, loggedIn, can(auth.CapVerifyLead), adminHandler.RejectLead)
	app.Post("/approve_tutor_match/:id", general, loggedIn, can(auth.CapApproveMatch), adminHandler.ApproveMatch)
	app.Post("/reject_tutor_match/:id", general, loggedIn, can(auth.CapApproveMatch), adminHandler.RejectMatch)
}
