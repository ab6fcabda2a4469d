package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kawafuchieirin/team-workspace/internal/model"
)

type recordSQLRepository struct {
	db *sqlx.DB
}

func NewRecordSQLRepository(db *sqlx.DB) RecordRepository {
	return &recordSQLRepository{db: db}
}

func (r *recordSQLRepository) Create(ctx context.Context, record *model.StudyRecord) error {
	query := `INSERT INTO study_records (record_id, user_id, study_date, subject, duration_minutes, start_time, end_time, memo, goal_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		record.RecordID,
		record.UserID,
		record.StudyDate,
		record.Subject,
		record.DurationMinutes,
		record.StartTime,
		record.EndTime,
		record.Memo,
		record.GoalID,
		record.CreatedAt,
		record.UpdatedAt,
	)

	return err
}

func (r *recordSQLRepository) ByID(ctx context.Context, userID, recordID string) (*model.StudyRecord, error) {
	record := &model.StudyRecord{}
	query := `SELECT * FROM study_records WHERE record_id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, record, query, recordID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (r *recordSQLRepository) Records(ctx context.Context, userID string, filter model.RecordFilter) ([]*model.StudyRecord, error) {
	records := []*model.StudyRecord{}

	query := `SELECT * FROM study_records WHERE user_id = $1`
	args := []any{userID}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		query += fmt.Sprintf(` AND study_date >= $%d`, len(args))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		query += fmt.Sprintf(` AND study_date <= $%d`, len(args))
	}
	query += ` ORDER BY study_date DESC`

	err := r.db.SelectContext(ctx, &records, query, args...)
	if err != nil {
		return nil, err
	}

	return filterSubject(records, filter.Subject), nil
}

func (r *recordSQLRepository) Update(ctx context.Context, userID, recordID string, u model.RecordUpdate, now time.Time) (*model.StudyRecord, error) {
	record, err := r.ByID(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	u.Apply(record)
	record.UpdatedAt = now

	query := `UPDATE study_records
	          SET study_date = $1, subject = $2, duration_minutes = $3, start_time = $4, end_time = $5, memo = $6, goal_id = $7, updated_at = $8
	          WHERE record_id = $9 AND user_id = $10`

	result, err := r.db.ExecContext(ctx, query,
		record.StudyDate,
		record.Subject,
		record.DurationMinutes,
		record.StartTime,
		record.EndTime,
		record.Memo,
		record.GoalID,
		record.UpdatedAt,
		record.RecordID,
		record.UserID,
	)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rows == 0 {
		return nil, ErrRecordNotFound
	}

	return record, nil
}

func (r *recordSQLRepository) Delete(ctx context.Context, userID, recordID string) (bool, error) {
	query := `DELETE FROM study_records WHERE record_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, recordID, userID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
