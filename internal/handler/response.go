package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kawafuchieirin/team-workspace/internal/repository"
	"github.com/kawafuchieirin/team-workspace/internal/service"
	"github.com/kawafuchieirin/team-workspace/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Detail any `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeError maps service errors onto HTTP responses.
// Anything unrecognized is logged and reported as a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string, attrs ...any) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		writeDetail(w, http.StatusUnprocessableEntity, verrs)
	case errors.Is(err, repository.ErrGoalNotFound):
		writeDetail(w, http.StatusNotFound, localize(r.Context(), msgGoalNotFound))
	case errors.Is(err, repository.ErrRecordNotFound):
		writeDetail(w, http.StatusNotFound, localize(r.Context(), msgRecordNotFound))
	case errors.Is(err, service.ErrStorageUnavailable):
		writeDetail(w, http.StatusServiceUnavailable, localize(r.Context(), msgStorageUnavailable))
	default:
		slog.ErrorContext(r.Context(), msg, append([]any{"error", err}, attrs...)...)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a JSON body into dst. Malformed input becomes a validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return validation.Field(typeErr.Field, "must be of type "+typeErr.Type.String())
	case errors.As(err, &maxErr):
		return validation.Field("body", "must not exceed "+strconv.FormatInt(maxErr.Limit, 10)+" bytes")
	case errors.Is(err, io.EOF):
		return validation.Field("body", "field is required")
	default:
		return validation.Field("body", "must be valid JSON")
	}
}

// queryInt parses an integer query parameter. Missing parameters are reported as required.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, validation.Field(name, "field is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validation.Field(name, "must be an integer")
	}
	return v, nil
}
