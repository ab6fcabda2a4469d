package service

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/kawafuchieirin/team-workspace/internal/db"
	"github.com/kawafuchieirin/team-workspace/internal/repository"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	goals   *GoalService
	records *RecordService
	stats   *StatsService
	goalDB  repository.GoalRepository
	recDB   repository.RecordRepository
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	goalRepo := repository.NewGoalSQLRepository(database)
	recordRepo := repository.NewRecordSQLRepository(database)

	return &testServices{
		goals:   NewGoalService(goalRepo, recordRepo),
		records: NewRecordService(recordRepo),
		stats:   NewStatsService(recordRepo),
		goalDB:  goalRepo,
		recDB:   recordRepo,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func strPtr(s string) *string { return &s }

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func addRecord(t *testing.T, s *RecordService, date, subject string, minutes int, goalID *string) {
	t.Helper()
	_, err := s.Create(context.Background(), "u1", RecordInput{
		StudyDate:       date,
		Subject:         subject,
		DurationMinutes: minutes,
		GoalID:          goalID,
	})
	require.NoError(t, err)
}

// memStorage keeps archives in memory.
type memStorage struct {
	objects map[string][]byte
	types   map[string]string
}

func (m *memStorage) Save(ctx context.Context, key string, body io.Reader, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	if m.objects == nil {
		m.objects = make(map[string][]byte)
		m.types = make(map[string]string)
	}
	m.objects[key] = buf.Bytes()
	m.types[key] = contentType
	return nil
}

func (m *memStorage) PresignedURL(ctx context.Context, key string) (string, error) {
	return "https://storage.test/" + key + "?signed", nil
}
