package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/montyapp/monty-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GetGoal returns the current savings-goal snapshot.
func (h *GoalHandler) GetGoal(c echo.Context) error {
	goal, err := h.goalService.Snapshot(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute goal")
		return NewInternalError(c, "Failed to compute goal")
	}
	return c.JSON(http.StatusOK, goal)
}
