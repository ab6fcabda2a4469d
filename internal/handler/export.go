package handler

import (
	"fmt"
	"net/http"

	"github.com/kawafuchieirin/team-workspace/internal/ctxkeys"
	"github.com/kawafuchieirin/team-workspace/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Download returns the user's full snapshot as a JSON attachment.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	export, err := h.exportService.Snapshot(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "failed to export", "user_id", userID)
		return
	}

	filename := fmt.Sprintf("study-tracker-%s.json", export.ExportedAt.Format("20060102"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, export)
}

// Archive stores a snapshot in object storage and returns a download link.
func (h *ExportHandler) Archive(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	archive, err := h.exportService.Archive(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "failed to archive export", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusCreated, archive)
}
