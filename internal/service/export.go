package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kawafuchieirin/team-workspace/internal/model"
	"github.com/kawafuchieirin/team-workspace/internal/repository"
	"github.com/kawafuchieirin/team-workspace/internal/storage"
	"golang.org/x/sync/errgroup"
)

// ErrStorageUnavailable is returned by Archive when no bucket is configured.
var ErrStorageUnavailable = errors.New("export storage is not configured")

type ExportService struct {
	goalRepo   repository.GoalRepository
	recordRepo repository.RecordRepository
	storage    storage.Storage
	now        func() time.Time
}

// NewExportService builds the export service. store may be nil, which disables Archive.
func NewExportService(goalRepo repository.GoalRepository, recordRepo repository.RecordRepository, store storage.Storage) *ExportService {
	return &ExportService{
		goalRepo:   goalRepo,
		recordRepo: recordRepo,
		storage:    store,
		now:        utcNow,
	}
}

// Snapshot loads every goal and record of the user.
func (s *ExportService) Snapshot(ctx context.Context, userID string) (*model.Export, error) {
	export := &model.Export{
		ExportedAt: s.now(),
		UserID:     userID,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		goals, err := s.goalRepo.Goals(gctx, userID, "")
		if err != nil {
			return fmt.Errorf("failed to export goals: %w", err)
		}
		export.Goals = goals
		return nil
	})
	g.Go(func() error {
		records, err := s.recordRepo.Records(gctx, userID, model.RecordFilter{})
		if err != nil {
			return fmt.Errorf("failed to export records: %w", err)
		}
		export.Records = records
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if export.Goals == nil {
		export.Goals = []*model.Goal{}
	}
	if export.Records == nil {
		export.Records = []*model.StudyRecord{}
	}

	return export, nil
}

// ArchiveAvailable reports whether Archive can store snapshots.
func (s *ExportService) ArchiveAvailable() bool {
	return s.storage != nil
}

// Archive uploads a snapshot and returns its key with a presigned download URL.
func (s *ExportService) Archive(ctx context.Context, userID string) (*model.ExportArchive, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	export, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(export)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", userID, export.ExportedAt.UTC().Format("20060102T150405Z"))
	err = s.storage.Save(ctx, key, bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}

	url, err := s.storage.PresignedURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign export url: %w", err)
	}

	return &model.ExportArchive{Key: key, URL: url}, nil
}
