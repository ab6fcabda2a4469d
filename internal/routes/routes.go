package routes

import (
	"net/http"

	"github.com/kawafuchieirin/team-workspace/internal/app"
	"github.com/kawafuchieirin/team-workspace/internal/handler"
	"github.com/kawafuchieirin/team-workspace/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	cfg := app.Cfg

	// Handlers
	goal := handler.NewGoalHandler(app.GoalService)
	record := handler.NewRecordHandler(app.RecordService, app.StatsService)
	export := handler.NewExportHandler(app.ExportService)

	mux := http.NewServeMux()
	p := cfg.APIPrefix

	// Probe
	mux.HandleFunc("GET /health", handler.Health)

	// Goals
	mux.HandleFunc("GET "+p+"/goals", goal.List)
	mux.HandleFunc("GET "+p+"/goals/{$}", goal.List)
	mux.HandleFunc("POST "+p+"/goals", goal.Create)
	mux.HandleFunc("POST "+p+"/goals/{$}", goal.Create)
	mux.HandleFunc("GET "+p+"/goals/{id}", goal.Get)
	mux.HandleFunc("GET "+p+"/goals/{id}/progress", goal.Progress)
	mux.HandleFunc("PUT "+p+"/goals/{id}", goal.Update)
	mux.HandleFunc("DELETE "+p+"/goals/{id}", goal.Delete)

	// Records
	mux.HandleFunc("GET "+p+"/records", record.List)
	mux.HandleFunc("GET "+p+"/records/{$}", record.List)
	mux.HandleFunc("POST "+p+"/records", record.Create)
	mux.HandleFunc("POST "+p+"/records/{$}", record.Create)
	mux.HandleFunc("GET "+p+"/records/stats/summary", record.Summary)
	mux.HandleFunc("GET "+p+"/records/stats/calendar", record.Calendar)
	mux.HandleFunc("GET "+p+"/records/{id}", record.Get)
	mux.HandleFunc("PUT "+p+"/records/{id}", record.Update)
	mux.HandleFunc("DELETE "+p+"/records/{id}", record.Delete)

	// Export
	mux.HandleFunc("GET "+p+"/export", export.Download)
	mux.HandleFunc("POST "+p+"/export/archive", export.Archive)

	return middleware.Chain(mux,
		middleware.Recover,
		middleware.RequestLogging,
		middleware.CORS(cfg.CORSOrigins),
		middleware.Identity(cfg.DefaultUserID),
		middleware.Language(cfg.DefaultLanguage),
		middleware.RateLimitWrites(cfg.RateLimitWrites, cfg.RateLimitWindow),
	)
}
