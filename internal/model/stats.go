package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// StatsSummary aggregates the records of an inclusive date range.
type StatsSummary struct {
	TotalMinutes        int            `json:"total_minutes"`
	TotalRecords        int            `json:"total_records"`
	Subjects            SubjectMinutes `json:"subjects"`
	DailyAverageMinutes float64        `json:"daily_average_minutes"`
	StudyDays           int            `json:"study_days"`
}

// CalendarDay is one populated day of a monthly calendar.
type CalendarDay struct {
	Date         string   `json:"date"`
	TotalMinutes int      `json:"total_minutes"`
	RecordCount  int      `json:"record_count"`
	Subjects     []string `json:"subjects"`
}

// SubjectMinutes sums minutes per subject and remembers the order subjects were first seen.
// It encodes as a JSON object whose keys keep that order.
type SubjectMinutes struct {
	order   []string
	minutes map[string]int
}

func (s *SubjectMinutes) Add(subject string, minutes int) {
	if s.minutes == nil {
		s.minutes = make(map[string]int)
	}
	if _, ok := s.minutes[subject]; !ok {
		s.order = append(s.order, subject)
	}
	s.minutes[subject] += minutes
}

func (s SubjectMinutes) Get(subject string) int {
	return s.minutes[subject]
}

// Subjects returns subjects in first-seen order.
func (s SubjectMinutes) Subjects() []string {
	return append([]string(nil), s.order...)
}

func (s SubjectMinutes) Len() int {
	return len(s.order)
}

func (s SubjectMinutes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, subject := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(subject)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(s.minutes[subject]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
