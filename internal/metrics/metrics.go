package metrics

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Leads created through the student form
	LeadsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tutex_leads_submitted_total",
		Help: "Total number of tuition requests submitted",
	})

	// Lead state transitions by event and outcome (ok, conflict, invalid)
	LeadTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tutex_lead_transitions_total",
		Help: "Lead state machine events by outcome",
	}, []string{"event", "outcome"})

	OTPVerifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tutex_otp_verifications_total",
		Help: "OTP verification attempts by subject (account, lead) and result",
	}, []string{"subject", "result"})

	EmailFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tutex_email_failures_total",
		Help: "Outbound emails that could not be delivered",
	})

	Signups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tutex_signups_total",
		Help: "Accounts created by role",
	}, []string{"role"})
)

var once sync.Once

func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			LeadsSubmitted,
			LeadTransitions,
			OTPVerifications,
			EmailFailures,
			Signups,
		)
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
