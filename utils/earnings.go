package utils

import (
	"sort"
	"time"
)

// EarningRow is one completed transaction joined with its course.
type EarningRow struct {
	TransactionID uint      `json:"transaction_id"`
	CourseID      uint      `json:"course_id"`
	CourseTitle   string    `json:"course_title"`
	UserID        uint      `json:"user_id"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

type EarningsSummary struct {
	LifetimeEarnings float64 `json:"lifetime_earnings"`
	Last30Days       float64 `json:"last_30_days"`
	Last7Days        float64 `json:"last_7_days"`
	TotalSales       int     `json:"total_sales"`
}

type DailyEarning struct {
	Date           string  `json:"date"`
	TotalEarnings  float64 `json:"total_earnings"`
	TotalSales     int     `json:"total_sales"`
	UniqueStudents int     `json:"unique_students"`
}

type CourseEarning struct {
	CourseID      uint    `json:"course_id"`
	Title         string  `json:"title"`
	Sales         int     `json:"sales"`
	TotalEarnings float64 `json:"total_earnings"`
}

type EarningsReport struct {
	Summary        EarningsSummary `json:"summary"`
	DailyEarnings  []DailyEarning  `json:"daily_earnings"`
	CourseEarnings []CourseEarning `json:"course_earnings"`
}

// SummarizeEarnings aggregates rows into the instructor's share. Day windows are counted in UTC
// calendar days back from now, so "last 30 days" includes today and the 30 days before it.
func SummarizeEarnings(rows []EarningRow, share float64, now time.Time) EarningsReport {
	today := now.UTC().Truncate(24 * time.Hour)
	cutoff30 := today.AddDate(0, 0, -30)
	cutoff7 := today.AddDate(0, 0, -7)

	report := EarningsReport{
		DailyEarnings:  []DailyEarning{},
		CourseEarnings: []CourseEarning{},
	}

	type dayBucket struct {
		DailyEarning
		students map[uint]struct{}
	}
	days := map[string]*dayBucket{}
	courses := map[uint]*CourseEarning{}

	for _, r := range rows {
		earned := r.Amount * share
		created := r.CreatedAt.UTC()

		report.Summary.LifetimeEarnings += earned
		report.Summary.TotalSales++
		if !created.Before(cutoff7) {
			report.Summary.Last7Days += earned
		}
		if !created.Before(cutoff30) {
			report.Summary.Last30Days += earned

			key := created.Format("2006-01-02")
			d, ok := days[key]
			if !ok {
				d = &dayBucket{DailyEarning: DailyEarning{Date: key}, students: map[uint]struct{}{}}
				days[key] = d
			}
			d.TotalEarnings += earned
			d.TotalSales++
			d.students[r.UserID] = struct{}{}
		}

		c, ok := courses[r.CourseID]
		if !ok {
			c = &CourseEarning{CourseID: r.CourseID, Title: r.CourseTitle}
			courses[r.CourseID] = c
		}
		c.Sales++
		c.TotalEarnings += earned
	}

	report.Summary.LifetimeEarnings = RoundMoney(report.Summary.LifetimeEarnings)
	report.Summary.Last30Days = RoundMoney(report.Summary.Last30Days)
	report.Summary.Last7Days = RoundMoney(report.Summary.Last7Days)

	for _, d := range days {
		d.UniqueStudents = len(d.students)
		d.TotalEarnings = RoundMoney(d.TotalEarnings)
		report.DailyEarnings = append(report.DailyEarnings, d.DailyEarning)
	}
	sort.Slice(report.DailyEarnings, func(i, j int) bool {
		return report.DailyEarnings[i].Date > report.DailyEarnings[j].Date
	})

	for _, c := range courses {
		c.TotalEarnings = RoundMoney(c.TotalEarnings)
		report.CourseEarnings = append(report.CourseEarnings, *c)
	}
	sort.Slice(report.CourseEarnings, func(i, j int) bool {
		a, b := report.CourseEarnings[i], report.CourseEarnings[j]
		if a.TotalEarnings != b.TotalEarnings {
			return a.TotalEarnings > b.TotalEarnings
		}
		return a.CourseID < b.CourseID
	})

	return report
}
