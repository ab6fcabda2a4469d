package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kawafuchieirin/team-workspace/internal/model"
	"github.com/kawafuchieirin/team-workspace/internal/repository"
	"github.com/kawafuchieirin/team-workspace/internal/validation"
)

type StatsService struct {
	recordRepo repository.RecordRepository
}

func NewStatsService(recordRepo repository.RecordRepository) *StatsService {
	return &StatsService{recordRepo: recordRepo}
}

// Summary aggregates records between from and to, both inclusive.
// An inverted range covers no days and yields an empty summary.
func (s *StatsService) Summary(ctx context.Context, userID string, from, to time.Time) (*model.StatsSummary, error) {
	summary := &model.StatsSummary{}

	rangeDays := daysInRange(from, to)
	if rangeDays <= 0 {
		return summary, nil
	}

	records, err := s.recordRepo.Records(ctx, userID, model.RecordFilter{
		DateFrom: from.Format(model.DateLayout),
		DateTo:   to.Format(model.DateLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load records for summary: %w", err)
	}

	days := make(map[string]struct{})
	for _, r := range records {
		summary.TotalMinutes += r.DurationMinutes
		summary.Subjects.Add(r.Subject, r.DurationMinutes)
		days[r.StudyDate] = struct{}{}
	}

	summary.TotalRecords = len(records)
	summary.StudyDays = len(days)
	summary.DailyAverageMinutes = round(float64(summary.TotalMinutes)/float64(rangeDays), 1)

	return summary, nil
}

// daysInRange counts the calendar days from from to to, both inclusive.
// It is zero or negative when to precedes from.
func daysInRange(from, to time.Time) int {
	return int((to.Unix()-from.Unix())/86400) + 1
}

// Calendar buckets one month of records per day, ascending by date.
// The month is the half-open range [first of month, first of next month).
func (s *StatsService) Calendar(ctx context.Context, userID string, year, month int) ([]model.CalendarDay, error) {
	if month < 1 || month > 12 {
		return nil, validation.Field("month", "must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return nil, validation.Field("year", "must be between 1 and 9999")
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	records, err := s.recordRepo.Records(ctx, userID, model.RecordFilter{
		DateFrom: first.Format(model.DateLayout),
		DateTo:   next.AddDate(0, 0, -1).Format(model.DateLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load records for calendar: %w", err)
	}

	type bucket struct {
		day      model.CalendarDay
		subjects map[string]struct{}
	}
	buckets := make(map[string]*bucket)
	for _, r := range records {
		b, ok := buckets[r.StudyDate]
		if !ok {
			b = &bucket{day: model.CalendarDay{Date: r.StudyDate}, subjects: make(map[string]struct{})}
			buckets[r.StudyDate] = b
		}
		b.day.TotalMinutes += r.DurationMinutes
		b.day.RecordCount++
		b.subjects[r.Subject] = struct{}{}
	}

	days := make([]model.CalendarDay, 0, len(buckets))
	for _, b := range buckets {
		subjects := make([]string, 0, len(b.subjects))
		for subject := range b.subjects {
			subjects = append(subjects, subject)
		}
		sort.Strings(subjects)
		b.day.Subjects = subjects
		days = append(days, b.day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})

	return days, nil
}
