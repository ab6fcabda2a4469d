package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/kawafuchieirin/team-workspace/internal/model"
	"github.com/kawafuchieirin/team-workspace/internal/repository"
	"github.com/kawafuchieirin/team-workspace/internal/validation"
)

// GoalInput is the body of a goal creation request.
type GoalInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=1000"`
	TargetHours float64 `json:"target_hours" validate:"gt=0"`
	TargetDate  *string `json:"target_date" validate:"omitnil,isodate"`
	Subject     string  `json:"subject" validate:"max=100"`
}

// GoalPatch is the body of a partial goal update. Nil fields are ignored.
// current_hours is derived and cannot be patched.
type GoalPatch struct {
	Title       *string  `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string  `json:"description" validate:"omitnil,max=1000"`
	TargetHours *float64 `json:"target_hours" validate:"omitnil,gt=0"`
	Status      *string  `json:"status" validate:"omitnil,oneof=active completed paused abandoned"`
	TargetDate  *string  `json:"target_date" validate:"omitnil,isodate"`
	Subject     *string  `json:"subject" validate:"omitnil,max=100"`
}

func (p GoalPatch) update() model.GoalUpdate {
	return model.GoalUpdate{
		Title:       p.Title,
		Description: p.Description,
		TargetHours: p.TargetHours,
		Status:      p.Status,
		TargetDate:  p.TargetDate,
		Subject:     p.Subject,
	}
}

type GoalService struct {
	repo       repository.GoalRepository
	recordRepo repository.RecordRepository
	now        func() time.Time
}

func NewGoalService(repo repository.GoalRepository, recordRepo repository.RecordRepository) *GoalService {
	return &GoalService{
		repo:       repo,
		recordRepo: recordRepo,
		now:        utcNow,
	}
}

func (s *GoalService) Create(ctx context.Context, userID string, in GoalInput) (*model.Goal, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	now := s.now()
	goal := &model.Goal{
		GoalID:       uuid.New().String(),
		UserID:       userID,
		Title:        in.Title,
		Description:  in.Description,
		TargetHours:  in.TargetHours,
		CurrentHours: 0,
		Status:       model.GoalStatusActive,
		TargetDate:   in.TargetDate,
		Subject:      in.Subject,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.repo.Create(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(ctx, userID, goalID)
}

// Goals lists goals newest first, optionally narrowed to one status.
func (s *GoalService) Goals(ctx context.Context, userID, status string) ([]*model.Goal, error) {
	if status != "" && !slices.Contains(model.GoalStatuses, status) {
		return nil, validation.Field("status", "must be one of: active, completed, paused, abandoned")
	}
	return s.repo.Goals(ctx, userID, status)
}

// Update applies a partial update. An empty patch returns the stored goal without writing.
func (s *GoalService) Update(ctx context.Context, userID, goalID string, patch GoalPatch) (*model.Goal, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	// Verify ownership
	existing, err := s.repo.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	u := patch.update()
	if u.IsEmpty() {
		return existing, nil
	}

	return s.repo.Update(ctx, userID, goalID, u, s.now())
}

// Delete reports whether the goal existed. Records labelled with it are left as they are.
func (s *GoalService) Delete(ctx context.Context, userID, goalID string) (bool, error) {
	return s.repo.Delete(ctx, userID, goalID)
}

// RecalculateCurrentHours rebuilds current_hours from every record of the user.
func (s *GoalService) RecalculateCurrentHours(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal, _, err := s.recalculate(ctx, userID, goalID)
	return goal, err
}

// Progress recalculates the goal and derives completion metrics.
func (s *GoalService) Progress(ctx context.Context, userID, goalID string) (*model.GoalProgress, error) {
	goal, count, err := s.recalculate(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	target := goal.TargetHours
	current := goal.CurrentHours

	percent := 0.0
	if target > 0 {
		percent = math.Min(round(current/target*100, 1), 100)
	}

	return &model.GoalProgress{
		GoalID:          goal.GoalID,
		Title:           goal.Title,
		TargetHours:     target,
		CurrentHours:    current,
		ProgressPercent: percent,
		RemainingHours:  round(math.Max(target-current, 0), 2),
		Status:          goal.Status,
		RecordsCount:    count,
	}, nil
}

// recalculate scans the whole record partition; there is no goal_id index.
func (s *GoalService) recalculate(ctx context.Context, userID, goalID string) (*model.Goal, int, error) {
	_, err := s.repo.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, 0, err
	}

	records, err := s.recordRepo.Records(ctx, userID, model.RecordFilter{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan records: %w", err)
	}

	minutes, count := 0, 0
	for _, r := range records {
		if r.BelongsTo(goalID) {
			minutes += r.DurationMinutes
			count++
		}
	}

	hours := minutesToHours(minutes)
	goal, err := s.repo.Update(ctx, userID, goalID, model.GoalUpdate{CurrentHours: &hours}, s.now())
	if err != nil {
		return nil, 0, err
	}

	return goal, count, nil
}
