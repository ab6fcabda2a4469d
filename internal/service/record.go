package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kawafuchieirin/team-workspace/internal/model"
	"github.com/kawafuchieirin/team-workspace/internal/repository"
	"github.com/kawafuchieirin/team-workspace/internal/validation"
)

// RecordInput is the body of a study record creation request.
// goal_id is stored as given; it is not checked against existing goals.
type RecordInput struct {
	StudyDate       string  `json:"study_date" validate:"required,isodate"`
	Subject         string  `json:"subject" validate:"required,max=100"`
	DurationMinutes int     `json:"duration_minutes" validate:"gt=0,lte=1440"`
	StartTime       *string `json:"start_time" validate:"omitnil,clock"`
	EndTime         *string `json:"end_time" validate:"omitnil,clock"`
	Memo            string  `json:"memo" validate:"max=1000"`
	GoalID          *string `json:"goal_id"`
}

// RecordPatch is the body of a partial record update. Nil fields are ignored.
type RecordPatch struct {
	StudyDate       *string `json:"study_date" validate:"omitnil,isodate"`
	Subject         *string `json:"subject" validate:"omitnil,min=1,max=100"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitnil,gt=0,lte=1440"`
	StartTime       *string `json:"start_time" validate:"omitnil,clock"`
	EndTime         *string `json:"end_time" validate:"omitnil,clock"`
	Memo            *string `json:"memo" validate:"omitnil,max=1000"`
	GoalID          *string `json:"goal_id"`
}

type RecordService struct {
	repo repository.RecordRepository
	now  func() time.Time
}

func NewRecordService(repo repository.RecordRepository) *RecordService {
	return &RecordService{
		repo: repo,
		now:  utcNow,
	}
}

func (s *RecordService) Create(ctx context.Context, userID string, in RecordInput) (*model.StudyRecord, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	now := s.now()
	record := &model.StudyRecord{
		RecordID:        uuid.New().String(),
		UserID:          userID,
		StudyDate:       in.StudyDate,
		Subject:         in.Subject,
		DurationMinutes: in.DurationMinutes,
		StartTime:       clockPtr(in.StartTime),
		EndTime:         clockPtr(in.EndTime),
		Memo:            in.Memo,
		GoalID:          in.GoalID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	return record, nil
}

func (s *RecordService) ByID(ctx context.Context, userID, recordID string) (*model.StudyRecord, error) {
	return s.repo.ByID(ctx, userID, recordID)
}

// Records lists records latest first. Bounds are inclusive ISO dates.
func (s *RecordService) Records(ctx context.Context, userID string, filter model.RecordFilter) ([]*model.StudyRecord, error) {
	if filter.DateFrom != "" {
		if _, err := validation.ParseDate(filter.DateFrom); err != nil {
			return nil, validation.Field("date_from", "must be a date in YYYY-MM-DD format")
		}
	}
	if filter.DateTo != "" {
		if _, err := validation.ParseDate(filter.DateTo); err != nil {
			return nil, validation.Field("date_to", "must be a date in YYYY-MM-DD format")
		}
	}
	return s.repo.Records(ctx, userID, filter)
}

// Update applies a partial update. An empty patch returns the stored record without writing.
func (s *RecordService) Update(ctx context.Context, userID, recordID string, patch RecordPatch) (*model.StudyRecord, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	// Verify ownership
	existing, err := s.repo.ByID(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	u := model.RecordUpdate{
		StudyDate:       patch.StudyDate,
		Subject:         patch.Subject,
		DurationMinutes: patch.DurationMinutes,
		StartTime:       clockPtr(patch.StartTime),
		EndTime:         clockPtr(patch.EndTime),
		Memo:            patch.Memo,
		GoalID:          patch.GoalID,
	}
	if u.IsEmpty() {
		return existing, nil
	}

	return s.repo.Update(ctx, userID, recordID, u, s.now())
}

func (s *RecordService) Delete(ctx context.Context, userID, recordID string) (bool, error) {
	return s.repo.Delete(ctx, userID, recordID)
}

// clockPtr normalizes an already validated time of day to HH:MM:SS.
func clockPtr(v *string) *string {
	if v == nil {
		return nil
	}
	normalized, err := validation.NormalizeClock(*v)
	if err != nil {
		return v
	}
	return &normalized
}
