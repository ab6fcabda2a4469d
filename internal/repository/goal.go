package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/kawafuchieirin/team-workspace/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

// GoalRepository is typed access to the goal collection, always scoped by user.
type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, userID, goalID string) (*model.Goal, error)
	// Goals lists a user's goals, newest first. An empty status lists all of them.
	Goals(ctx context.Context, userID, status string) ([]*model.Goal, error)
	// Update writes the provided fields and stamps updated_at with now.
	Update(ctx context.Context, userID, goalID string, u model.GoalUpdate, now time.Time) (*model.Goal, error)
	// Delete reports whether a goal existed and was removed.
	Delete(ctx context.Context, userID, goalID string) (bool, error)
}

func sortGoalsByCreated(goals []*model.Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})
}
