// Package pricing computes tuition fee quotes and tutor income.
package pricing

import "strings"

const (
	DefaultAreaFee  int64 = 2000
	DefaultBoardFee int64 = 2000

	PremiumSubjectFee  int64 = 8000
	StandardSubjectFee int64 = 5000
)

// subjectCodeSeparator splits "Mathematics - 4024" into name and course code.
const subjectCodeSeparator = " - "

var areaFees = map[string]int64{
	"DHA":             8000,
	"Gulshan-e-Iqbal": 6000,
	"PECHS":           6000,
	"Saddar":          6000,
}

var boardFees = map[string]int64{
	"Cambridge O'Levels": 5000,
	"Cambridge A'Levels": 5000,
	"ACCA":               5000,
	"ICAP":               5000,
}

var premiumSubjects = map[string]bool{
	"Mathematics": true,
	"Physics":     true,
	"Chemistry":   true,
	"Biology":     true,
	"Audit":       true,
}

type SubjectLine struct {
	Subject string `json:"subject"`
	Name    string `json:"name"`
	Fee     int64  `json:"fee"`
}

type Quote struct {
	Area     string        `json:"area"`
	Board    string        `json:"board"`
	AreaFee  int64         `json:"area_fee"`
	BoardFee int64         `json:"board_fee"`
	Base     int64         `json:"base"`
	Subjects []SubjectLine `json:"subjects"`
	Total    int64         `json:"total"`
}

func AreaFee(area string) int64 {
	if fee, ok := areaFees[area]; ok {
		return fee
	}
	return DefaultAreaFee
}

func BoardFee(board string) int64 {
	if fee, ok := boardFees[board]; ok {
		return fee
	}
	return DefaultBoardFee
}

// SubjectName strips an optional " - <code>" suffix.
func SubjectName(subject string) string {
	name, _, _ := strings.Cut(subject, subjectCodeSeparator)
	return name
}

// SubjectFee returns the per-subject fee, capped at limit.
func SubjectFee(subject string, limit int64) int64 {
	fee := StandardSubjectFee
	if premiumSubjects[SubjectName(subject)] {
		fee = PremiumSubjectFee
	}
	if fee > limit {
		fee = limit
	}
	return fee
}

// Calculate builds a full quote. Unknown areas and boards fall back to the
// defaults; an empty subject list yields the base fee only.
func Calculate(area, board string, subjects []string) Quote {
	q := Quote{
		Area:     area,
		Board:    board,
		AreaFee:  AreaFee(area),
		BoardFee: BoardFee(board),
		Subjects: make([]SubjectLine, 0, len(subjects)),
	}
	q.Base = q.AreaFee + q.BoardFee
	q.Total = q.Base

	for _, s := range subjects {
		fee := SubjectFee(s, q.Base)
		q.Subjects = append(q.Subjects, SubjectLine{Subject: s, Name: SubjectName(s), Fee: fee})
		q.Total += fee
	}
	return q
}

// Total is a shorthand for Calculate(...).Total.
func Total(area, board string, subjects []string) int64 {
	return Calculate(area, board, subjects).Total
}
