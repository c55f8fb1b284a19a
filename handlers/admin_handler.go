package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"propositosAPI/internal/workers"
	"propositosAPI/middleware"
	"propositosAPI/services"
)

type AdminHandler struct {
	userService *services.UserService
	resetWorker *workers.WeeklyResetWorker
}

func NewAdminHandler(userService *services.UserService, resetWorker *workers.WeeklyResetWorker) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		resetWorker: resetWorker,
	}
}

func (h *AdminHandler) requireAdmin(ctx context.Context, w http.ResponseWriter) bool {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return false
	}

	isAdmin, err := h.userService.IsAdmin(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return false
	}
	if !isAdmin {
		respondWithError(w, http.StatusForbidden, "Admin role required")
		return false
	}
	return true
}

// ListUsers pages through all profiles for the admin console.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	profiles, err := h.userService.ListProfiles(ctx, limit, offset)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, profiles)
}

// ResetWeeklyPoints triggers the weekly points reset outside its schedule.
func (h *AdminHandler) ResetWeeklyPoints(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	h.resetWorker.ResetWeeklyPoints()

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Weekly points reset triggered"})
}
