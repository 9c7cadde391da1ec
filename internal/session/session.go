// Package session issues and reads the signed tokens that carry a logged-in
// user and a just-verified lead between requests.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName     = "tutex_session"
	LeadCookieName = "tutex_lead"

	// ContextKey is where the JWT middleware stores the parsed token.
	ContextKey = "user"

	leadPurpose = "lead_summary"
)

var (
	ErrNoSession    = errors.New("not logged in")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Principal is the authenticated caller of one request.
type Principal struct {
	UserID   uint
	Username string
	Role     auth.Role
}

func (p Principal) Can(capability auth.Capability) bool {
	return auth.Can(p.Role, capability)
}

type Manager struct {
	secret  []byte
	ttl     time.Duration
	leadTTL time.Duration
	now     func() time.Time
}

func NewManager(secret string, ttl, leadTTL time.Duration) *Manager {
	return &Manager{
		secret:  []byte(secret),
		ttl:     ttl,
		leadTTL: leadTTL,
		now:     time.Now,
	}
}

func (m *Manager) Secret() []byte {
	return m.secret
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) LeadTTL() time.Duration {
	return m.leadTTL
}

// Issue signs a session token for p.
func (m *Manager) Issue(p Principal) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(p.UserID), 10),
		"username": p.Username,
		"role":     string(p.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a raw session token outside the middleware.
func (m *Manager) Parse(raw string) (Principal, error) {
	token, err := m.parse(raw)
	if err != nil {
		return Principal{}, err
	}
	return principalFromToken(token)
}

// IssueLead signs a short-lived token that lets the submitter view a lead summary.
func (m *Manager) IssueLead(leadID uint) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"purpose": leadPurpose,
		"lead_id": strconv.FormatUint(uint64(leadID), 10),
		"iat":     now.Unix(),
		"exp":     now.Add(m.leadTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign lead token: %w", err)
	}
	return signed, nil
}

func (m *Manager) ParseLead(raw string) (uint, error) {
	token, err := m.parse(raw)
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != leadPurpose {
		return 0, ErrInvalidToken
	}
	raw, _ = claims["lead_id"].(string)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

func (m *Manager) parse(raw string) (*jwt.Token, error) {
	if raw == "" {
		return nil, ErrNoSession
	}
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return token, nil
}

// FromContext returns the principal the JWT middleware attached to c.
func FromContext(c *fiber.Ctx) (Principal, error) {
	token, ok := c.Locals(ContextKey).(*jwt.Token)
	if !ok || token == nil {
		return Principal{}, ErrNoSession
	}
	return principalFromToken(token)
}

func principalFromToken(token *jwt.Token) (Principal, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return Principal{}, ErrInvalidToken
	}

	roleClaim, _ := claims["role"].(string)
	role, err := auth.ParseRole(roleClaim)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	return Principal{UserID: uint(id), Username: username, Role: role}, nil
}
