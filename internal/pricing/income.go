package pricing

import (
	"sort"
	"time"
)

// Engagement is one matched tuition as seen by the tutor's income ledger.
type Engagement struct {
	LeadID  uint
	Fee     int64
	Start   time.Time
	EndDate *time.Time
}

type MonthIncome struct {
	Month  string `json:"month"`
	Amount int64  `json:"amount"`
}

type IncomeReport struct {
	Months []MonthIncome `json:"months"`
	Total  int64         `json:"total"`
}

const monthLayout = "2006-01"

// MonthlyIncome credits each engagement's fee to every calendar month from its
// start through its end date (or now when still open), inclusive.
func MonthlyIncome(engagements []Engagement, now time.Time) IncomeReport {
	buckets := make(map[string]int64)

	for _, e := range engagements {
		end := now
		if e.EndDate != nil {
			end = *e.EndDate
		}
		start := e.Start.UTC()
		end = end.UTC()
		if end.Before(start) {
			end = start
		}

		cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
		for !cursor.After(last) {
			buckets[cursor.Format(monthLayout)] += e.Fee
			cursor = cursor.AddDate(0, 1, 0)
		}
	}

	report := IncomeReport{Months: make([]MonthIncome, 0, len(buckets))}
	for month, amount := range buckets {
		report.Months = append(report.Months, MonthIncome{Month: month, Amount: amount})
		report.Total += amount
	}
	sort.Slice(report.Months, func(i, j int) bool {
		return report.Months[i].Month < report.Months[j].Month
	})
	return report
}
