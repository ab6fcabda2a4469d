package service

import (
	"context"
	"testing"

	"github.com/kawafuchieirin/team-workspace/internal/model"
	"github.com/kawafuchieirin/team-workspace/internal/repository"
	"github.com/kawafuchieirin/team-workspace/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCreate(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	record, err := s.records.Create(ctx, "u1", RecordInput{
		StudyDate:       "2025-01-10",
		Subject:         "English",
		DurationMinutes: 45,
		StartTime:       strPtr("09:00"),
		EndTime:         strPtr("09:45:00"),
		GoalID:          strPtr("does-not-exist"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, record.RecordID)
	assert.Equal(t, "09:00:00", *record.StartTime)
	assert.Equal(t, "09:45:00", *record.EndTime)

	stored, err := s.records.ByID(ctx, "u1", record.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "does-not-exist", *stored.GoalID)
	assert.Equal(t, "09:00:00", *stored.StartTime)
}

func TestRecordCreateValidation(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	valid := RecordInput{StudyDate: "2025-01-10", Subject: "English", DurationMinutes: 30}

	tests := []struct {
		name   string
		mutate func(in *RecordInput)
		field  string
	}{
		{"zero minutes", func(in *RecordInput) { in.DurationMinutes = 0 }, "duration_minutes"},
		{"too many minutes", func(in *RecordInput) { in.DurationMinutes = 1441 }, "duration_minutes"},
		{"missing subject", func(in *RecordInput) { in.Subject = "" }, "subject"},
		{"bad date", func(in *RecordInput) { in.StudyDate = "10-01-2025" }, "study_date"},
		{"bad clock", func(in *RecordInput) { in.StartTime = strPtr("25:00") }, "start_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := s.records.Create(ctx, "u1", in)
			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestRecordList(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	addRecord(t, s.records, "2025-01-05", "Math", 30, nil)
	addRecord(t, s.records, "2025-01-10", "English", 60, nil)
	addRecord(t, s.records, "2025-01-20", "English", 90, nil)

	all, err := s.records.Records(ctx, "u1", model.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-01-20", all[0].StudyDate)
	assert.Equal(t, "2025-01-05", all[2].StudyDate)

	ranged, err := s.records.Records(ctx, "u1", model.RecordFilter{DateFrom: "2025-01-05", DateTo: "2025-01-10"})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	english, err := s.records.Records(ctx, "u1", model.RecordFilter{Subject: "English", DateFrom: "2025-01-15"})
	require.NoError(t, err)
	require.Len(t, english, 1)
	assert.Equal(t, 90, english[0].DurationMinutes)

	_, err = s.records.Records(ctx, "u1", model.RecordFilter{DateTo: "yesterday"})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "date_to", verrs[0].Field)
}

func TestRecordUpdateAndDelete(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	record, err := s.records.Create(ctx, "u1", RecordInput{StudyDate: "2025-01-10", Subject: "English", DurationMinutes: 30})
	require.NoError(t, err)

	updated, err := s.records.Update(ctx, "u1", record.RecordID, RecordPatch{
		DurationMinutes: intPtr(50),
		StartTime:       strPtr("07:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.DurationMinutes)
	assert.Equal(t, "07:30:00", *updated.StartTime)
	assert.Equal(t, "English", updated.Subject)

	same, err := s.records.Update(ctx, "u1", record.RecordID, RecordPatch{})
	require.NoError(t, err)
	assert.Equal(t, 50, same.DurationMinutes)

	_, err = s.records.Update(ctx, "u1", "missing", RecordPatch{Memo: strPtr("x")})
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)

	deleted, err := s.records.Delete(ctx, "u1", record.RecordID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.records.ByID(ctx, "u1", record.RecordID)
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}

func intPtr(i int) *int { return &i }
