// Package testutil provides a migrated SQLite database and fakes for the
// service and handler tests.
package testutil

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh file-backed SQLite database with the full schema.
// A single connection serialises writes the way row locks do in Postgres.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "tutex.db") + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Mail is one message captured by FakeMailer.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// FakeMailer records sent mail and can be told to fail.
type FakeMailer struct {
	mu   sync.Mutex
	sent []Mail
	fail bool
	// Sent receives every delivered message when non-nil.
	Sent chan Mail
}

var ErrMailDown = errors.New("smtp unavailable")

func NewFakeMailer() *FakeMailer {
	return &FakeMailer{Sent: make(chan Mail, 16)}
}

func (m *FakeMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	if m.fail {
		m.mu.Unlock()
		return ErrMailDown
	}
	mail := Mail{To: to, Subject: subject, Body: body}
	m.sent = append(m.sent, mail)
	m.mu.Unlock()

	if m.Sent != nil {
		select {
		case m.Sent <- mail:
		default:
		}
	}
	return nil
}

func (m *FakeMailer) SetFailing(fail bool) {
	m.mu.Lock()
	m.fail = fail
	m.mu.Unlock()
}

func (m *FakeMailer) Messages() []Mail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Mail(nil), m.sent...)
}

// Last returns the most recent message sent to addr.
func (m *FakeMailer) Last(addr string) (Mail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].To == addr {
			return m.sent[i], true
		}
	}
	return Mail{}, false
}
