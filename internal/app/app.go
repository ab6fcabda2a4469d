package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/kawafuchieirin/team-workspace/internal/config"
	"github.com/kawafuchieirin/team-workspace/internal/db"
	"github.com/kawafuchieirin/team-workspace/internal/repository"
	"github.com/kawafuchieirin/team-workspace/internal/service"
	"github.com/kawafuchieirin/team-workspace/internal/storage"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB // nil when running on DynamoDB
	GoalRepo      repository.GoalRepository
	RecordRepo    repository.RecordRepository
	GoalService   *service.GoalService
	RecordService *service.RecordService
	StatsService  *service.StatsService
	ExportService *service.ExportService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Cfg: cfg}

	// Repositories
	var err error
	if cfg.UsesDynamo() {
		err = a.initDynamo(ctx)
	} else {
		err = a.initSQL()
	}
	if err != nil {
		return nil, err
	}

	// Storage (optional)
	var archiveStorage storage.Storage
	if cfg.ExportStorageEnabled() {
		s3Storage, err := storage.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		archiveStorage = s3Storage
	}

	// Services
	a.GoalService = service.NewGoalService(a.GoalRepo, a.RecordRepo)
	a.RecordService = service.NewRecordService(a.RecordRepo)
	a.StatsService = service.NewStatsService(a.RecordRepo)
	a.ExportService = service.NewExportService(a.GoalRepo, a.RecordRepo, archiveStorage)

	if !a.ExportService.ArchiveAvailable() {
		slog.Info("export archive storage disabled", "hint", "set S3_BUCKET to enable")
	}

	return a, nil
}

func (a *App) initDynamo(ctx context.Context) error {
	cfg := a.Cfg

	client, err := db.NewDynamo(ctx, db.DynamoConfig{
		Region:    cfg.DynamoRegion,
		Endpoint:  cfg.DynamoEndpoint,
		AccessKey: cfg.AWSAccessKeyID,
		SecretKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize dynamodb: %w", err)
	}

	if cfg.DynamoCreateTables {
		err = db.EnsureTables(ctx, client,
			repository.GoalTableSchema(cfg.GoalsTableName),
			repository.RecordTableSchema(cfg.RecordsTableName),
		)
		if err != nil {
			return fmt.Errorf("failed to ensure tables: %w", err)
		}
	}

	a.GoalRepo = repository.NewGoalDynamoRepository(client, cfg.GoalsTableName)
	a.RecordRepo = repository.NewRecordDynamoRepository(client, cfg.RecordsTableName)
	return nil
}

func (a *App) initSQL() error {
	database, err := db.Init(a.Cfg.StoreDriver, a.Cfg.DBConnection)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(database.DB, a.Cfg.StoreDriver)
	if err != nil {
		_ = database.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	a.DB = database
	a.GoalRepo = repository.NewGoalSQLRepository(database)
	a.RecordRepo = repository.NewRecordSQLRepository(database)
	return nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
