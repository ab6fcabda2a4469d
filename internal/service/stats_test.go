package service

import (
	"context"
	"testing"

	"github.com/kawafuchieirin/team-workspace/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	addRecord(t, s.records, "2024-12-31", "Math", 500, nil)
	addRecord(t, s.records, "2025-01-10", "English", 60, nil)
	addRecord(t, s.records, "2025-01-10", "Math", 30, nil)
	addRecord(t, s.records, "2025-01-31", "English", 65, nil)
	addRecord(t, s.records, "2025-02-01", "English", 500, nil)

	summary, err := s.stats.Summary(ctx, "u1", mustDate(t, "2025-01-01"), mustDate(t, "2025-01-31"))
	require.NoError(t, err)

	assert.Equal(t, 155, summary.TotalMinutes)
	assert.Equal(t, 3, summary.TotalRecords)
	assert.Equal(t, 2, summary.StudyDays)
	assert.Equal(t, 5.0, summary.DailyAverageMinutes)
	assert.Equal(t, 125, summary.Subjects.Get("English"))
	assert.Equal(t, 30, summary.Subjects.Get("Math"))
	assert.Equal(t, 2, summary.Subjects.Len())
}

func TestSummarySingleDay(t *testing.T) {
	s := newTestServices(t)
	addRecord(t, s.records, "2025-01-10", "English", 45, nil)

	day := mustDate(t, "2025-01-10")
	summary, err := s.stats.Summary(context.Background(), "u1", day, day)
	require.NoError(t, err)

	assert.Equal(t, 45, summary.TotalMinutes)
	assert.Equal(t, 45.0, summary.DailyAverageMinutes)
}

func TestSummaryRoundsHalfToEven(t *testing.T) {
	s := newTestServices(t)
	addRecord(t, s.records, "2025-01-02", "English", 1, nil)

	summary, err := s.stats.Summary(context.Background(), "u1", mustDate(t, "2025-01-01"), mustDate(t, "2025-01-04"))
	require.NoError(t, err)

	// 0.25 ties down to 0.2
	assert.Equal(t, 0.2, summary.DailyAverageMinutes)
}

func TestDaysInRange(t *testing.T) {
	cases := []struct {
		from, to string
		want     int
	}{
		{"2025-01-01", "2025-01-31", 31},
		{"2025-01-10", "2025-01-10", 1},
		{"2024-02-01", "2024-03-01", 30},
		{"2025-01-31", "2025-01-01", -29},
		{"0001-01-01", "9999-12-31", 3652059},
	}
	for _, tc := range cases {
		got := daysInRange(mustDate(t, tc.from), mustDate(t, tc.to))
		assert.Equal(t, tc.want, got, "%s..%s", tc.from, tc.to)
	}
}

func TestSummaryFullCalendarRange(t *testing.T) {
	s := newTestServices(t)
	addRecord(t, s.records, "2025-01-10", "English", 45, nil)

	summary, err := s.stats.Summary(context.Background(), "u1", mustDate(t, "0001-01-01"), mustDate(t, "9999-12-31"))
	require.NoError(t, err)

	assert.Equal(t, 45, summary.TotalMinutes)
	assert.Equal(t, 0.0, summary.DailyAverageMinutes)
}

func TestSummaryInvertedRange(t *testing.T) {
	s := newTestServices(t)
	addRecord(t, s.records, "2025-01-10", "English", 45, nil)

	summary, err := s.stats.Summary(context.Background(), "u1", mustDate(t, "2025-01-31"), mustDate(t, "2025-01-01"))
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalMinutes)
	assert.Equal(t, 0, summary.TotalRecords)
	assert.Equal(t, 0.0, summary.DailyAverageMinutes)
	assert.Equal(t, 0, summary.Subjects.Len())
}

func TestCalendar(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	addRecord(t, s.records, "2025-01-20", "Math", 30, nil)
	addRecord(t, s.records, "2025-01-10", "English", 60, nil)
	addRecord(t, s.records, "2025-01-20", "English", 60, nil)
	addRecord(t, s.records, "2025-01-20", "Math", 15, nil)
	addRecord(t, s.records, "2025-02-01", "English", 60, nil)

	days, err := s.stats.Calendar(ctx, "u1", 2025, 1)
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, "2025-01-10", days[0].Date)
	assert.Equal(t, 60, days[0].TotalMinutes)
	assert.Equal(t, 1, days[0].RecordCount)
	assert.Equal(t, []string{"English"}, days[0].Subjects)

	assert.Equal(t, "2025-01-20", days[1].Date)
	assert.Equal(t, 105, days[1].TotalMinutes)
	assert.Equal(t, 3, days[1].RecordCount)
	assert.Equal(t, []string{"English", "Math"}, days[1].Subjects)
}

func TestCalendarDecember(t *testing.T) {
	s := newTestServices(t)
	addRecord(t, s.records, "2024-12-31", "English", 60, nil)
	addRecord(t, s.records, "2025-01-01", "English", 60, nil)

	days, err := s.stats.Calendar(context.Background(), "u1", 2024, 12)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-12-31", days[0].Date)
}

func TestCalendarEmptyAndInvalid(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	days, err := s.stats.Calendar(ctx, "u1", 2025, 3)
	require.NoError(t, err)
	assert.Empty(t, days)
	assert.NotNil(t, days)

	_, err = s.stats.Calendar(ctx, "u1", 2025, 13)
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "month", verrs[0].Field)
}
