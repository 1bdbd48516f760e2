package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEarnings(t *testing.T) {
	now := time.Date(2025, 3, 31, 15, 0, 0, 0, time.UTC)
	rows := []EarningRow{
		{TransactionID: 1, CourseID: 1, CourseTitle: "Go", UserID: 10, Amount: 100, CreatedAt: now.Add(-time.Hour)},
		{TransactionID: 2, CourseID: 1, CourseTitle: "Go", UserID: 11, Amount: 100, CreatedAt: now.Add(-2 * time.Hour)},
		{TransactionID: 3, CourseID: 2, CourseTitle: "SQL", UserID: 10, Amount: 50, CreatedAt: now.AddDate(0, 0, -10)},
		{TransactionID: 4, CourseID: 2, CourseTitle: "SQL", UserID: 12, Amount: 50, CreatedAt: now.AddDate(0, 0, -90)},
	}

	report := SummarizeEarnings(rows, 0.8, now)

	assert.Equal(t, 240.0, report.Summary.LifetimeEarnings)
	assert.Equal(t, 200.0, report.Summary.Last30Days)
	assert.Equal(t, 160.0, report.Summary.Last7Days)
	assert.Equal(t, 4, report.Summary.TotalSales)

	require.Len(t, report.DailyEarnings, 2)
	assert.Equal(t, "2025-03-31", report.DailyEarnings[0].Date)
	assert.Equal(t, 160.0, report.DailyEarnings[0].TotalEarnings)
	assert.Equal(t, 2, report.DailyEarnings[0].TotalSales)
	assert.Equal(t, 2, report.DailyEarnings[0].UniqueStudents)
	assert.Equal(t, "2025-03-21", report.DailyEarnings[1].Date)

	require.Len(t, report.CourseEarnings, 2)
	assert.Equal(t, CourseEarning{CourseID: 1, Title: "Go", Sales: 2, TotalEarnings: 160}, report.CourseEarnings[0])
	assert.Equal(t, CourseEarning{CourseID: 2, Title: "SQL", Sales: 2, TotalEarnings: 80}, report.CourseEarnings[1])
}

func TestSummarizeEarningsEmpty(t *testing.T) {
	report := SummarizeEarnings(nil, 0.8, time.Now())
	assert.Zero(t, report.Summary.LifetimeEarnings)
	assert.NotNil(t, report.DailyEarnings)
	assert.NotNil(t, report.CourseEarnings)
}
