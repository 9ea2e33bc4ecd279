package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forgelabs/forge-backend/internal/services"
)

type GoalHandler struct{}

func NewGoalHandler() *GoalHandler {
	return &GoalHandler{}
}

// POST /api/v2/goal/suggest
// { prompt }
// Advisory only. The suggestion never locks a goal or touches a session.
func (h *GoalHandler) Suggest(c *gin.Context) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	RespondOK(c, services.SuggestGoal(body.Prompt))
}
