package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kawafuchieirin/team-workspace/internal/model"
)

type goalSQLRepository struct {
	db *sqlx.DB
}

func NewGoalSQLRepository(db *sqlx.DB) GoalRepository {
	return &goalSQLRepository{db: db}
}

func (r *goalSQLRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (goal_id, user_id, title, description, target_hours, current_hours, status, target_date, subject, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		goal.GoalID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.TargetHours,
		goal.CurrentHours,
		goal.Status,
		goal.TargetDate,
		goal.Subject,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalSQLRepository) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE goal_id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, goal, query, goalID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalSQLRepository) Goals(ctx context.Context, userID, status string) ([]*model.Goal, error) {
	goals := []*model.Goal{}

	query := `SELECT * FROM goals WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &goals, query, args...)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalSQLRepository) Update(ctx context.Context, userID, goalID string, u model.GoalUpdate, now time.Time) (*model.Goal, error) {
	goal, err := r.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	u.Apply(goal)
	goal.UpdatedAt = now

	query := `UPDATE goals
	          SET title = $1, description = $2, target_hours = $3, current_hours = $4, status = $5, target_date = $6, subject = $7, updated_at = $8
	          WHERE goal_id = $9 AND user_id = $10`

	result, err := r.db.ExecContext(ctx, query,
		goal.Title,
		goal.Description,
		goal.TargetHours,
		goal.CurrentHours,
		goal.Status,
		goal.TargetDate,
		goal.Subject,
		goal.UpdatedAt,
		goal.GoalID,
		goal.UserID,
	)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rows == 0 {
		return nil, ErrGoalNotFound
	}

	return goal, nil
}

func (r *goalSQLRepository) Delete(ctx context.Context, userID, goalID string) (bool, error) {
	query := `DELETE FROM goals WHERE goal_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, goalID, userID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
