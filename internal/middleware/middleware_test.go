package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(mgr *session.Manager) *fiber.App {
	app := fiber.New()
	app.Get("/admin", SessionRequired(mgr), Require(auth.CapViewAdminPanel), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestSessionAndCapability(t *testing.T) {
	mgr := session.NewManager("secret", time.Hour, time.Minute)
	app := newApp(mgr)

	adminToken, err := mgr.Issue(session.Principal{UserID: 1, Username: "root", Role: auth.RoleAdmin})
	require.NoError(t, err)
	tutorToken, err := mgr.Issue(session.Principal{UserID: 2, Username: "t", Role: auth.RoleTutor})
	require.NoError(t, err)

	cases := []struct {
		name   string
		setup  func(r *httptestRequest)
		status int
	}{
		{"no session", func(r *httptestRequest) {}, fiber.StatusUnauthorized},
		{"garbage token", func(r *httptestRequest) { r.bearer("nope") }, fiber.StatusUnauthorized},
		{"wrong role", func(r *httptestRequest) { r.bearer(tutorToken) }, fiber.StatusForbidden},
		{"admin header", func(r *httptestRequest) { r.bearer(adminToken) }, fiber.StatusOK},
		{"admin cookie", func(r *httptestRequest) { r.cookie(adminToken) }, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := &httptestRequest{r: httptest.NewRequest("GET", "/admin", nil)}
			tc.setup(req)
			resp, err := app.Test(req.r)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestLeadTokenIsNotASession(t *testing.T) {
	mgr := session.NewManager("secret", time.Hour, time.Minute)
	app := newApp(mgr)

	leadToken, err := mgr.IssueLead(5)
	require.NoError(t, err)

	req := &httptestRequest{r: httptest.NewRequest("GET", "/admin", nil)}
	req.bearer(leadToken)
	resp, err := app.Test(req.r)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

type httptestRequest struct {
	r *http.Request
}

func (h *httptestRequest) bearer(token string) {
	h.r.Header.Set("Authorization", "Bearer "+token)
}

func (h *httptestRequest) cookie(token string) {
	h.r.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
}
