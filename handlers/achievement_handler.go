package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"propositosAPI/internal/achievement"
	"propositosAPI/middleware"
	"propositosAPI/services"
)

type AchievementHandler struct {
	achievementService *services.AchievementService
	goalService        *services.GoalService
}

func NewAchievementHandler(achievementService *services.AchievementService, goalService *services.GoalService) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
		goalService:        goalService,
	}
}

func (h *AchievementHandler) CreateAchievement(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req achievement.CreateAchievementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Achievement name is required")
		return
	}

	a, err := h.achievementService.Create(ctx, userID, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// A brand-new achievement may already be satisfied by current stats.
	if live, statsErr := h.goalService.GetLiveStats(ctx, userID); statsErr == nil {
		h.achievementService.Sync(ctx, userID, live)
		if refreshed, getErr := h.achievementService.GetByID(ctx, userID, a.ID); getErr == nil {
			a = refreshed
		}
	}

	respondWithJSON(w, http.StatusCreated, a)
}

func (h *AchievementHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	achievements, err := h.achievementService.List(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, achievements)
}

func (h *AchievementHandler) DeleteAchievement(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	achievementID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid achievement id")
		return
	}

	if err := h.achievementService.Delete(ctx, userID, achievementID); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Achievement deleted successfully"})
}

func (h *AchievementHandler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.achievementService.Templates())
}

func (h *AchievementHandler) SyncAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	live, err := h.goalService.GetLiveStats(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.achievementService.Sync(ctx, userID, live); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	achievements, err := h.achievementService.List(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, achievements)
}
