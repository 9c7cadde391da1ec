package session

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour, time.Minute)

	raw, err := m.Issue(Principal{UserID: 7, Username: "ali", Role: auth.RoleTutor})
	require.NoError(t, err)

	p, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), p.UserID)
	assert.Equal(t, "ali", p.Username)
	assert.Equal(t, auth.RoleTutor, p.Role)
	assert.True(t, p.Can(auth.CapAcceptLead))
	assert.False(t, p.Can(auth.CapVerifyLead))
}

func TestParseRejectsForeignSecret(t *testing.T) {
	raw, err := NewManager("one", time.Hour, time.Minute).Issue(Principal{UserID: 1, Role: auth.RoleAdmin})
	require.NoError(t, err)

	_, err = NewManager("two", time.Hour, time.Minute).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpired(t *testing.T) {
	m := NewManager("secret", time.Minute, time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }
	raw, err := m.Issue(Principal{UserID: 1, Role: auth.RoleStudent})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseEmpty(t *testing.T) {
	_, err := NewManager("secret", time.Hour, time.Minute).Parse("")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLeadToken(t *testing.T) {
	m := NewManager("secret", time.Hour, time.Minute)

	raw, err := m.IssueLead(42)
	require.NoError(t, err)
	id, err := m.ParseLead(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	// A session token is not a lead token.
	sessionRaw, err := m.Issue(Principal{UserID: 42, Role: auth.RoleStudent})
	require.NoError(t, err)
	_, err = m.ParseLead(sessionRaw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
