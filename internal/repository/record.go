package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/kawafuchieirin/team-workspace/internal/model"
)

var (
	ErrRecordNotFound = errors.New("study record not found")
)

// RecordRepository is typed access to the study record collection, always scoped by user.
type RecordRepository interface {
	Create(ctx context.Context, record *model.StudyRecord) error
	ByID(ctx context.Context, userID, recordID string) (*model.StudyRecord, error)
	// Records lists a user's records, latest study_date first.
	// Date bounds are inclusive; the subject filter is applied after the range read.
	Records(ctx context.Context, userID string, filter model.RecordFilter) ([]*model.StudyRecord, error)
	Update(ctx context.Context, userID, recordID string, u model.RecordUpdate, now time.Time) (*model.StudyRecord, error)
	Delete(ctx context.Context, userID, recordID string) (bool, error)
}

func filterSubject(records []*model.StudyRecord, subject string) []*model.StudyRecord {
	if subject == "" {
		return records
	}
	filtered := records[:0]
	for _, r := range records {
		if r.Subject == subject {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func sortRecordsByDate(records []*model.StudyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StudyDate > records[j].StudyDate
	})
}
