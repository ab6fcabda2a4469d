package service

import (
	"context"
	"testing"
	"time"

	"github.com/kawafuchieirin/team-workspace/internal/model"
	"github.com/kawafuchieirin/team-workspace/internal/repository"
	"github.com/kawafuchieirin/team-workspace/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalCreateDefaults(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	goal, err := s.goals.Create(ctx, "u1", GoalInput{Title: "TOEIC", TargetHours: 50, TargetDate: strPtr("2025-06-30")})
	require.NoError(t, err)

	assert.NotEmpty(t, goal.GoalID)
	assert.Equal(t, "u1", goal.UserID)
	assert.Equal(t, model.GoalStatusActive, goal.Status)
	assert.Equal(t, 0.0, goal.CurrentHours)
	assert.True(t, goal.CreatedAt.Equal(goal.UpdatedAt))

	stored, err := s.goals.ByID(ctx, "u1", goal.GoalID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-30", *stored.TargetDate)
}

func TestGoalCreateValidation(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    GoalInput
		field string
	}{
		{"zero target", GoalInput{Title: "X", TargetHours: 0}, "target_hours"},
		{"negative target", GoalInput{Title: "X", TargetHours: -1}, "target_hours"},
		{"missing title", GoalInput{TargetHours: 1}, "title"},
		{"bad date", GoalInput{Title: "X", TargetHours: 1, TargetDate: strPtr("2025/01/01")}, "target_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.goals.Create(ctx, "u1", tt.in)
			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestGoalProgress(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	goal, err := s.goals.Create(ctx, "u1", GoalInput{Title: "X", TargetHours: 50})
	require.NoError(t, err)

	addRecord(t, s.records, "2025-01-10", "English", 120, &goal.GoalID)
	addRecord(t, s.records, "2025-01-11", "English", 60, &goal.GoalID)
	addRecord(t, s.records, "2025-01-12", "Math", 30, strPtr("other-goal"))
	addRecord(t, s.records, "2025-01-12", "Math", 30, nil)

	progress, err := s.goals.Progress(ctx, "u1", goal.GoalID)
	require.NoError(t, err)

	assert.Equal(t, 3.0, progress.CurrentHours)
	assert.Equal(t, 2, progress.RecordsCount)
	assert.Equal(t, 6.0, progress.ProgressPercent)
	assert.Equal(t, 47.0, progress.RemainingHours)
	assert.Equal(t, model.GoalStatusActive, progress.Status)

	// current_hours is persisted
	stored, err := s.goals.ByID(ctx, "u1", goal.GoalID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, stored.CurrentHours)
}

func TestGoalProgressClampsAtHundred(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	goal, err := s.goals.Create(ctx, "u1", GoalInput{Title: "X", TargetHours: 1})
	require.NoError(t, err)
	addRecord(t, s.records, "2025-01-10", "English", 90, &goal.GoalID)

	progress, err := s.goals.Progress(ctx, "u1", goal.GoalID)
	require.NoError(t, err)

	assert.Equal(t, 1.5, progress.CurrentHours)
	assert.Equal(t, 100.0, progress.ProgressPercent)
	assert.Equal(t, 0.0, progress.RemainingHours)
}

func TestGoalProgressRounding(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	goal, err := s.goals.Create(ctx, "u1", GoalInput{Title: "X", TargetHours: 3})
	require.NoError(t, err)
	addRecord(t, s.records, "2025-01-10", "English", 20, &goal.GoalID)

	progress, err := s.goals.Progress(ctx, "u1", goal.GoalID)
	require.NoError(t, err)

	assert.Equal(t, 0.33, progress.CurrentHours)
	assert.Equal(t, 11.0, progress.ProgressPercent)
	assert.Equal(t, 2.67, progress.RemainingHours)
}

func TestGoalProgressRoundsHalfToEven(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	goal, err := s.goals.Create(ctx, "u1", GoalInput{Title: "X", TargetHours: 4})
	require.NoError(t, err)
	addRecord(t, s.records, "2025-01-10", "English", 15, &goal.GoalID)

	progress, err := s.goals.Progress(ctx, "u1", goal.GoalID)
	require.NoError(t, err)

	// 6.25 ties down to 6.2
	assert.Equal(t, 0.25, progress.CurrentHours)
	assert.Equal(t, 6.2, progress.ProgressPercent)
	assert.Equal(t, 3.75, progress.RemainingHours)
}

func TestGoalProgressNotFound(t *testing.T) {
	s := newTestServices(t)

	_, err := s.goals.Progress(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestGoalListStatusFilter(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.goals.now = fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	first, err := s.goals.Create(ctx, "u1", GoalInput{Title: "first", TargetHours: 10})
	require.NoError(t, err)
	second, err := s.goals.Create(ctx, "u1", GoalInput{Title: "second", TargetHours: 10})
	require.NoError(t, err)
	_, err = s.goals.Create(ctx, "u2", GoalInput{Title: "someone else", TargetHours: 10})
	require.NoError(t, err)

	_, err = s.goals.Update(ctx, "u1", first.GoalID, GoalPatch{Status: strPtr(model.GoalStatusCompleted)})
	require.NoError(t, err)

	active, err := s.goals.Goals(ctx, "u1", model.GoalStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.GoalID, active[0].GoalID)

	all, err := s.goals.Goals(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.GoalID, all[0].GoalID)
	assert.Equal(t, first.GoalID, all[1].GoalID)

	_, err = s.goals.Goals(ctx, "u1", "archived")
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "status", verrs[0].Field)
}

func TestGoalUpdate(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.goals.now = fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	goal, err := s.goals.Create(ctx, "u1", GoalInput{Title: "X", TargetHours: 10, Subject: "English"})
	require.NoError(t, err)

	t.Run("partial", func(t *testing.T) {
		updated, err := s.goals.Update(ctx, "u1", goal.GoalID, GoalPatch{Title: strPtr("Y")})
		require.NoError(t, err)
		assert.Equal(t, "Y", updated.Title)
		assert.Equal(t, "English", updated.Subject)
		assert.True(t, updated.UpdatedAt.After(goal.UpdatedAt))
	})

	t.Run("empty patch returns stored goal", func(t *testing.T) {
		before, err := s.goals.ByID(ctx, "u1", goal.GoalID)
		require.NoError(t, err)

		same, err := s.goals.Update(ctx, "u1", goal.GoalID, GoalPatch{})
		require.NoError(t, err)
		assert.True(t, same.UpdatedAt.Equal(before.UpdatedAt))
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := s.goals.Update(ctx, "u1", goal.GoalID, GoalPatch{Status: strPtr("done")})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "status", verrs[0].Field)
	})

	t.Run("other user", func(t *testing.T) {
		_, err := s.goals.Update(ctx, "u2", goal.GoalID, GoalPatch{Title: strPtr("Z")})
		assert.ErrorIs(t, err, repository.ErrGoalNotFound)
	})
}

func TestGoalDeleteLeavesRecords(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	goal, err := s.goals.Create(ctx, "u1", GoalInput{Title: "X", TargetHours: 10})
	require.NoError(t, err)
	addRecord(t, s.records, "2025-01-10", "English", 60, &goal.GoalID)

	deleted, err := s.goals.Delete(ctx, "u1", goal.GoalID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.goals.Delete(ctx, "u1", goal.GoalID)
	require.NoError(t, err)
	assert.False(t, deleted)

	records, err := s.records.Records(ctx, "u1", model.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, goal.GoalID, *records[0].GoalID)
}
