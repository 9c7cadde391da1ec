package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCounters(t *testing.T) {
	Init()
	Init()

	LeadsSubmitted.Inc()
	LeadTransitions.WithLabelValues("accept", "ok").Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(LeadsSubmitted), 1.0)

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "tutex_leads_submitted_total")
	assert.Contains(t, string(body), `tutex_lead_transitions_total{event="accept",outcome="ok"}`)
}
