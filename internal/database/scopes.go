package database

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/leadstate"
	"gorm.io/gorm"
)

// WithStatus filters leads by lifecycle status.
func WithStatus(status leadstate.Status) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}

// AcceptedBy filters leads claimed by one tutor.
func AcceptedBy(tutorID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("accepted_by_tutor_id = ?", tutorID)
	}
}

// MatchingFilter applies the tutor dashboard filters. Area and board match
// exactly; subject matches case-insensitively anywhere in the subject list.
func MatchingFilter(area, board, subject string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if area = strings.TrimSpace(area); area != "" {
			db = db.Where("area = ?", area)
		}
		if board = strings.TrimSpace(board); board != "" {
			db = db.Where("board = ?", board)
		}
		if subject = strings.TrimSpace(subject); subject != "" {
			db = db.Where("LOWER(subjects) LIKE ?", "%"+stripWildcards(strings.ToLower(subject))+"%")
		}
		return db
	}
}

var likeWildcards = strings.NewReplacer(`%`, ``, `_`, ``)

func stripWildcards(s string) string {
	return likeWildcards.Replace(s)
}
