package handler

import (
	"net/http"

	"github.com/kawafuchieirin/team-workspace/internal/ctxkeys"
	"github.com/kawafuchieirin/team-workspace/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.Goals(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err, "failed to list goals", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var in service.GoalInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err, "invalid goal body")
		return
	}

	goal, err := h.goalService.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err, "failed to create goal", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(r.Context(), userID, goalID)
	if err != nil {
		writeError(w, r, err, "failed to get goal", "user_id", userID, "goal_id", goalID)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	progress, err := h.goalService.Progress(r.Context(), userID, goalID)
	if err != nil {
		writeError(w, r, err, "failed to compute goal progress", "user_id", userID, "goal_id", goalID)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	var patch service.GoalPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err, "invalid goal body")
		return
	}

	goal, err := h.goalService.Update(r.Context(), userID, goalID, patch)
	if err != nil {
		writeError(w, r, err, "failed to update goal", "user_id", userID, "goal_id", goalID)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	deleted, err := h.goalService.Delete(r.Context(), userID, goalID)
	if err != nil {
		writeError(w, r, err, "failed to delete goal", "user_id", userID, "goal_id", goalID)
		return
	}
	if !deleted {
		writeDetail(w, http.StatusNotFound, localize(r.Context(), msgGoalNotFound))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
