package handler

import (
	"net/http"

	"github.com/kawafuchieirin/team-workspace/internal/ctxkeys"
	"github.com/kawafuchieirin/team-workspace/internal/model"
	"github.com/kawafuchieirin/team-workspace/internal/service"
	"github.com/kawafuchieirin/team-workspace/internal/validation"
)

type RecordHandler struct {
	recordService *service.RecordService
	statsService  *service.StatsService
}

func NewRecordHandler(recordService *service.RecordService, statsService *service.StatsService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
		statsService:  statsService,
	}
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	q := r.URL.Query()

	records, err := h.recordService.Records(r.Context(), userID, model.RecordFilter{
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
		Subject:  q.Get("subject"),
	})
	if err != nil {
		writeError(w, r, err, "failed to list records", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var in service.RecordInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err, "invalid record body")
		return
	}

	record, err := h.recordService.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err, "failed to create record", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	recordID := r.PathValue("id")

	record, err := h.recordService.ByID(r.Context(), userID, recordID)
	if err != nil {
		writeError(w, r, err, "failed to get record", "user_id", userID, "record_id", recordID)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	recordID := r.PathValue("id")

	var patch service.RecordPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err, "invalid record body")
		return
	}

	record, err := h.recordService.Update(r.Context(), userID, recordID, patch)
	if err != nil {
		writeError(w, r, err, "failed to update record", "user_id", userID, "record_id", recordID)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	recordID := r.PathValue("id")

	deleted, err := h.recordService.Delete(r.Context(), userID, recordID)
	if err != nil {
		writeError(w, r, err, "failed to delete record", "user_id", userID, "record_id", recordID)
		return
	}
	if !deleted {
		writeDetail(w, http.StatusNotFound, localize(r.Context(), msgRecordNotFound))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary aggregates an inclusive date range. Both bounds are required.
func (h *RecordHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	q := r.URL.Query()

	var errs validation.Errors
	from, err := validation.ParseDate(q.Get("date_from"))
	if err != nil {
		errs = append(errs, dateParamError("date_from", q.Get("date_from"))...)
	}
	to, err := validation.ParseDate(q.Get("date_to"))
	if err != nil {
		errs = append(errs, dateParamError("date_to", q.Get("date_to"))...)
	}
	if len(errs) > 0 {
		writeError(w, r, errs, "invalid summary range")
		return
	}

	summary, err := h.statsService.Summary(r.Context(), userID, from, to)
	if err != nil {
		writeError(w, r, err, "failed to build summary", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *RecordHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, r, err, "invalid calendar year")
		return
	}
	month, err := queryInt(r, "month")
	if err != nil {
		writeError(w, r, err, "invalid calendar month")
		return
	}

	days, err := h.statsService.Calendar(r.Context(), userID, year, month)
	if err != nil {
		writeError(w, r, err, "failed to build calendar", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, days)
}

func dateParamError(name, raw string) validation.Errors {
	if raw == "" {
		return validation.Field(name, "field is required")
	}
	return validation.Field(name, "must be a date in YYYY-MM-DD format")
}
