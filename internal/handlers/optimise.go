package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
	"github.com/forgelabs/forge-backend/internal/services"
)

type OptimiseHandler struct {
	log       *logger.Logger
	registry  services.SessionRegistry
	intakeSvc services.IntakeService
	assembler services.AssemblerService
}

func NewOptimiseHandler(log *logger.Logger, registry services.SessionRegistry, intakeSvc services.IntakeService, assembler services.AssemblerService) *OptimiseHandler {
	return &OptimiseHandler{
		log:       log.With("handler", "OptimiseHandler"),
		registry:  registry,
		intakeSvc: intakeSvc,
		assembler: assembler,
	}
}

type sealedOptimiseRequest struct {
	Goal      string `json:"package_goal"`
	Prompt    string `json:"prompt"`
	GraphJSON string `json:"graph_json,omitempty"`

	services.RunOptions
}

// POST /api/v2/optimise
// One-shot sealed run: the whole intake arrives in a single body and the
// backing session is ephemeral.
func (h *OptimiseHandler) OptimiseSealed(c *gin.Context) {
	var req sealedOptimiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	entry := h.registry.Create()
	defer h.registry.Delete(entry.Session.ID)
	entry.Session.AllowNSFW = req.Profile.AllowNSFW

	if f := h.intakeSvc.SetGoal(entry.Session, req.Goal); f != nil {
		RespondFault(c, f)
		return
	}
	if f := h.intakeSvc.SetField(entry.Session, intake.FieldPromptString, req.Prompt); f != nil {
		RespondFault(c, f)
		return
	}
	if req.GraphJSON != "" {
		if f := h.intakeSvc.SetField(entry.Session, intake.FieldGraphJSON, req.GraphJSON); f != nil {
			RespondFault(c, f)
			return
		}
	}

	pkg, f := h.assembler.Run(entry, req.RunOptions)
	if f != nil {
		RespondFault(c, f)
		return
	}
	RespondOK(c, gin.H{"outcome": "success", "result": pkg})
}
