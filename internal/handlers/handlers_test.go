package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/leadstate"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/storage"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/testutil"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testServer struct {
	app      *fiber.App
	db       *gorm.DB
	mail     *testutil.FakeMailer
	store    *storage.MemoryStore
	sessions *session.Manager
	authSvc  *services.AuthService
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	mail := testutil.NewFakeMailer()
	store := storage.NewMemoryStore()
	sessions := session.NewManager("test-secret", time.Hour, 10*time.Minute)
	validate := validation.New()

	authSvc := services.NewAuthService(db, mail, store)
	leadSvc := services.NewLeadService(db, mail)
	t.Cleanup(authSvc.Wait)

	cfg := &config.Config{RateLimit: 1000, AuthRateLimit: 1000}
	app := fiber.New()
	routes.Setup(app, cfg, sessions,
		handlers.NewPagesHandler("TutEx"),
		handlers.NewHealthHandler(db),
		handlers.NewAuthHandler(authSvc, sessions, validate, false),
		handlers.NewLeadHandler(leadSvc, sessions, validate, false),
		handlers.NewTutorHandler(leadSvc, validate),
		handlers.NewAdminHandler(leadSvc, validate),
	)
	return &testServer{app: app, db: db, mail: mail, store: store, sessions: sessions, authSvc: authSvc}
}

type request struct {
	method  string
	path    string
	body    interface{}
	token   string
	cookies []*http.Cookie
}

func (s *testServer) do(t *testing.T, r request) (*http.Response, map[string]interface{}) {
	t.Helper()
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(r.method, r.path, body)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

// user inserts a verified account and returns a bearer token for it.
func (s *testServer) user(t *testing.T, username string, role auth.Role) (*models.User, string) {
	t.Helper()
	u := models.User{
		Username:    username,
		Password:    "x",
		Role:        role,
		FullName:    username,
		PhoneNumber: "03001234567",
		Email:       username + "@example.com",
		IsVerified:  true,
	}
	require.NoError(t, s.db.Create(&u).Error)
	token, err := s.sessions.Issue(session.Principal{UserID: u.ID, Username: u.Username, Role: u.Role})
	require.NoError(t, err)
	return &u, token
}

func (s *testServer) leadOTP(t *testing.T, email string) string {
	t.Helper()
	var lead models.StudentRegistration
	require.NoError(t, s.db.Where("email = ?", email).First(&lead).Error)
	require.NotNil(t, lead.OTP)
	return *lead.OTP
}

func leadBody(email string, subjects ...string) map[string]interface{} {
	return map[string]interface{}{
		"full_name":    "Ayesha Khan",
		"phone_number": "03001234567",
		"email":        email,
		"area":         "DHA",
		"address":      "Phase 6",
		"board":        "Cambridge A'Levels",
		"subjects":     subjects,
	}
}

// confirmedLead submits a lead over HTTP and confirms its OTP. It returns
// the lead id and the summary cookie.
func (s *testServer) confirmedLead(t *testing.T, email string) (uint, *http.Cookie) {
	t.Helper()
	resp, body := s.do(t, request{method: "POST", path: "/student/submit", body: leadBody(email, "Mathematics - 101", "Urdu")})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	id := uint(body["lead"].(map[string]interface{})["id"].(float64))

	resp, body = s.do(t, request{method: "POST", path: "/student/verify-otp", body: map[string]string{"email": email, "otp": s.leadOTP(t, email)}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	for _, c := range resp.Cookies() {
		if c.Name == session.LeadCookieName {
			return id, c
		}
	}
	t.Fatal("summary cookie not set")
	return 0, nil
}

func TestHealthAndPages(t *testing.T) {
	s := newServer(t)

	resp, body := s.do(t, request{method: "GET", path: "/api/health"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	for _, path := range []string{"/", "/student", "/courses", "/how_it_works", "/contact", "/login"} {
		resp, _ := s.do(t, request{method: "GET", path: path})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html", path)
	}
}

func TestQuote(t *testing.T) {
	s := newServer(t)

	resp, body := s.do(t, request{method: "POST", path: "/student/quote", body: map[string]interface{}{
		"area": "DHA", "board": "ACCA", "subjects": []string{"Audit", "Taxation"},
	}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	quote := body["quote"].(map[string]interface{})
	assert.EqualValues(t, 8000+5000+8000+5000, quote["total"])
}

func TestStudentSignupVerifyLogin(t *testing.T) {
	s := newServer(t)

	signup := map[string]interface{}{
		"username":     "ali",
		"password":     "secret123",
		"user_type":    "student",
		"full_name":    "Ali Raza",
		"phone_number": "03001234567",
		"email":        "Ali@Example.com",
	}
	resp, body := s.do(t, request{method: "POST", path: "/signup", body: signup})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	assert.Equal(t, "/verify-otp", body["next_step"])

	resp, body = s.do(t, request{method: "POST", path: "/signup", body: signup})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, body)

	login := map[string]string{"username": "ali", "password": "secret123", "user_type": "student"}
	resp, _ = s.do(t, request{method: "POST", path: "/login", body: login})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "unverified account")

	s.authSvc.Wait()
	var u models.User
	require.NoError(t, s.db.Where("username = ?", "ali").First(&u).Error)
	require.NotNil(t, u.OTP)

	resp, body = s.do(t, request{method: "POST", path: "/verify-otp", body: map[string]string{"email": "ali@example.com", "otp": "12"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["messages"])

	resp, body = s.do(t, request{method: "POST", path: "/verify-otp", body: map[string]string{"email": "ali@example.com", "otp": *u.OTP}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	resp, body = s.do(t, request{method: "POST", path: "/login", body: map[string]string{"username": "ali", "password": "secret123", "user_type": "tutor"}})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "role mismatch")

	resp, body = s.do(t, request{method: "POST", path: "/login", body: map[string]string{"username": "ali", "password": "wrong-pass", "user_type": "student"}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body = s.do(t, request{method: "POST", path: "/login", body: login})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "/student", body["next_step"])

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)

	resp, body = s.do(t, request{method: "GET", path: "/account", cookies: []*http.Cookie{sessionCookie}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "ali", body["user"].(map[string]interface{})["username"])

	// Students have no tutor or admin pages.
	resp, _ = s.do(t, request{method: "GET", path: "/tutor_dashboard", cookies: []*http.Cookie{sessionCookie}})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = s.do(t, request{method: "GET", path: "/admin", cookies: []*http.Cookie{sessionCookie}})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminSignupRefused(t *testing.T) {
	s := newServer(t)

	resp, _ := s.do(t, request{method: "POST", path: "/signup", body: map[string]interface{}{
		"username":     "boss",
		"password":     "secret123",
		"user_type":    "admin",
		"full_name":    "Boss",
		"phone_number": "0300",
		"email":        "boss@example.com",
	}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTutorSignupWithDocuments(t *testing.T) {
	s := newServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"username":           "tariq",
		"password":           "secret123",
		"user_type":          "tutor",
		"full_name":          "Tariq Mehmood",
		"phone_number":       "03001234567",
		"email":              "tariq@example.com",
		"fathers_name":       "Mehmood",
		"last_qualification": "MSc Physics",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, name := range []string{"cnic_front", "cnic_back"} {
		fw, err := w.CreateFormFile(name, name+".png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/signup", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, body := s.send(t, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	assert.Equal(t, 2, s.store.Len())

	var u models.User
	require.NoError(t, s.db.Where("username = ?", "tariq").First(&u).Error)
	assert.Equal(t, auth.RoleTutor, u.Role)
	assert.NotEmpty(t, u.CNICFrontPath)
	assert.NotEmpty(t, u.CNICBackPath)
}

func TestLeadSubmitAndSummary(t *testing.T) {
	s := newServer(t)

	resp, _ := s.do(t, request{method: "GET", path: "/student/summary"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body := s.do(t, request{method: "POST", path: "/student/submit", body: leadBody("sara@example.com")})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "no subjects")
	assert.NotEmpty(t, body["message"])

	id, cookie := s.confirmedLead(t, "sara@example.com")

	resp, body = s.do(t, request{method: "GET", path: "/student/summary", cookies: []*http.Cookie{cookie}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	lead := body["lead"].(map[string]interface{})
	assert.EqualValues(t, id, lead["id"])
	assert.Equal(t, true, lead["is_verified"])
	assert.Equal(t, string(leadstate.PendingAdminVerification), lead["status"])
	assert.EqualValues(t, 8000+5000+8000+5000, lead["total_fee"])

	resp, body = s.do(t, request{method: "POST", path: "/student/verify-otp", body: map[string]string{"email": "sara@example.com", "otp": "123456"}})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "already verified")

	resp, _ = s.do(t, request{method: "POST", path: "/student/new-calculation", cookies: []*http.Cookie{cookie}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == session.LeadCookieName {
			assert.Empty(t, c.Value)
		}
	}
}

func TestLeadSubmitMailFailure(t *testing.T) {
	s := newServer(t)
	s.mail.SetFailing(true)

	resp, _ := s.do(t, request{method: "POST", path: "/student/submit", body: leadBody("sara@example.com", "Physics")})
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var count int64
	s.db.Model(&models.StudentRegistration{}).Count(&count)
	assert.Zero(t, count)
}

func TestLeadLifecycle(t *testing.T) {
	s := newServer(t)
	_, adminToken := s.user(t, "admin", auth.RoleAdmin)
	tutor, tutorToken := s.user(t, "tutor1", auth.RoleTutor)
	_, otherToken := s.user(t, "tutor2", auth.RoleTutor)

	id, _ := s.confirmedLead(t, "sara@example.com")
	path := func(action string) string { return fmt.Sprintf("/%s/%d", action, id) }

	// Tutors cannot verify; unverified leads cannot be accepted.
	resp, _ := s.do(t, request{method: "POST", path: path("verify_lead"), token: tutorToken})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = s.do(t, request{method: "POST", path: path("accept_lead"), token: tutorToken})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, body := s.do(t, request{method: "POST", path: path("verify_lead"), token: adminToken, body: map[string]int64{"deducted_amount": 999999}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, body)

	resp, body = s.do(t, request{method: "POST", path: path("verify_lead"), token: adminToken, body: map[string]int64{"deducted_amount": 2000}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.EqualValues(t, 24000, body["lead"].(map[string]interface{})["total_fee"])
	assert.EqualValues(t, 2000, body["deduction"].(map[string]interface{})["deducted_amount"])

	resp, body = s.do(t, request{method: "GET", path: "/tutor_dashboard?area=DHA&subject=math", token: tutorToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	leads := body["leads"].([]interface{})
	require.Len(t, leads, 1)
	listed := leads[0].(map[string]interface{})
	assert.Nil(t, listed["email"], "contact hidden before match")
	assert.Nil(t, listed["phone_number"])

	resp, body = s.do(t, request{method: "POST", path: path("accept_lead"), token: tutorToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, string(leadstate.PendingTutorApproval), body["lead"].(map[string]interface{})["status"])

	resp, _ = s.do(t, request{method: "POST", path: path("accept_lead"), token: otherToken})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "already claimed")

	resp, body = s.do(t, request{method: "GET", path: "/admin", token: adminToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["pending_approval"], 1)

	resp, body = s.do(t, request{method: "POST", path: path("approve_tutor_match"), token: adminToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, string(leadstate.TutorMatched), body["lead"].(map[string]interface{})["status"])

	resp, body = s.do(t, request{method: "GET", path: "/tutor/engagements", token: tutorToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	engaged := body["leads"].([]interface{})
	require.Len(t, engaged, 1)
	assert.Equal(t, "sara@example.com", engaged[0].(map[string]interface{})["email"])

	resp, _ = s.do(t, request{method: "POST", path: path("update_tuition_status"), token: otherToken, body: map[string]string{"tuition_status": "ongoing"}})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body = s.do(t, request{method: "POST", path: path("update_tuition_status"), token: tutorToken, body: map[string]string{"tuition_status": "paused"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["fields"], "tuition_status")

	resp, body = s.do(t, request{method: "POST", path: path("update_tuition_status"), token: tutorToken, body: map[string]string{"tuition_status": "ongoing"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "ongoing", body["lead"].(map[string]interface{})["tuition_status"])

	resp, body = s.do(t, request{method: "GET", path: "/tutor/income", token: tutorToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 24000, body["total"])

	var stored models.StudentRegistration
	require.NoError(t, s.db.First(&stored, id).Error)
	require.NotNil(t, stored.AcceptedByTutorID)
	assert.Equal(t, tutor.ID, *stored.AcceptedByTutorID)
}

func TestRejectMatchReopensLead(t *testing.T) {
	s := newServer(t)
	_, adminToken := s.user(t, "admin", auth.RoleAdmin)
	_, tutorToken := s.user(t, "tutor1", auth.RoleTutor)

	id, _ := s.confirmedLead(t, "sara@example.com")
	path := func(action string) string { return fmt.Sprintf("/%s/%d", action, id) }

	resp, _ := s.do(t, request{method: "POST", path: path("verify_lead"), token: adminToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = s.do(t, request{method: "POST", path: path("accept_lead"), token: tutorToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := s.do(t, request{method: "POST", path: path("reject_tutor_match"), token: adminToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	lead := body["lead"].(map[string]interface{})
	assert.Equal(t, string(leadstate.VerifiedAvailable), lead["status"])
	assert.Nil(t, lead["accepted_by_tutor_id"])

	resp, _ = s.do(t, request{method: "POST", path: path("approve_tutor_match"), token: adminToken})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRejectLeadAndBadID(t *testing.T) {
	s := newServer(t)
	_, adminToken := s.user(t, "admin", auth.RoleAdmin)

	resp, _ := s.do(t, request{method: "POST", path: "/reject_lead/abc", token: adminToken})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp, _ = s.do(t, request{method: "POST", path: "/reject_lead/404", token: adminToken})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	id, _ := s.confirmedLead(t, "sara@example.com")
	resp, body := s.do(t, request{method: "POST", path: fmt.Sprintf("/reject_lead/%d", id), token: adminToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, string(leadstate.Rejected), body["lead"].(map[string]interface{})["status"])
}

func TestLoginWithStoredPassword(t *testing.T) {
	s := newServer(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&models.User{
		Username:   "root",
		Password:   string(hash),
		Role:       auth.RoleAdmin,
		FullName:   "Root",
		Email:      "root@example.com",
		IsVerified: true,
	}).Error)

	resp, body := s.do(t, request{method: "POST", path: "/login", body: map[string]string{"username": "root", "password": "secret123", "user_type": "admin"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "/admin", body["next_step"])

	token := body["token"].(string)
	resp, _ = s.do(t, request{method: "GET", path: "/admin", token: token})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, request{method: "GET", path: "/logout"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// loginCookie creates a verified account with a real password, logs in
// through /login and returns the session cookie it sets.
func (s *testServer) loginCookie(t *testing.T, username string, role auth.Role) *http.Cookie {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&models.User{
		Username:    username,
		Password:    string(hash),
		Role:        role,
		FullName:    username,
		PhoneNumber: "03001234567",
		Email:       username + "@example.com",
		IsVerified:  true,
	}).Error)

	resp, body := s.do(t, request{method: "POST", path: "/login", body: map[string]string{
		"username": username, "password": "secret123", "user_type": string(role),
	}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSessionCookieOnProtectedRoutes(t *testing.T) {
	s := newServer(t)
	admin := s.loginCookie(t, "admin", auth.RoleAdmin)
	tutor := s.loginCookie(t, "tutor1", auth.RoleTutor)
	other := s.loginCookie(t, "tutor2", auth.RoleTutor)
	as := func(c *http.Cookie) []*http.Cookie { return []*http.Cookie{c} }

	id, _ := s.confirmedLead(t, "sara@example.com")
	path := func(action string) string { return fmt.Sprintf("/%s/%d", action, id) }

	resp, _ := s.do(t, request{method: "GET", path: "/admin", cookies: as(tutor)})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = s.do(t, request{method: "POST", path: "/reject_lead/abc", cookies: as(admin)})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := s.do(t, request{method: "POST", path: path("verify_lead"), cookies: as(admin)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	resp, body = s.do(t, request{method: "POST", path: path("accept_lead"), cookies: as(tutor)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	resp, _ = s.do(t, request{method: "POST", path: path("accept_lead"), cookies: as(other)})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = s.do(t, request{method: "POST", path: path("update_tuition_status"), cookies: as(tutor), body: map[string]string{"tuition_status": "ongoing"}})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "match not approved yet")

	resp, _ = s.do(t, request{method: "GET", path: "/logout", cookies: as(tutor)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cleared *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	resp, _ = s.do(t, request{method: "GET", path: "/tutor/engagements", cookies: as(cleared)})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
