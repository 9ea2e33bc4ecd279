package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/forgelabs/forge-backend/internal/domain"
	"github.com/forgelabs/forge-backend/internal/services"
)

type ManifestHandler struct {
	safetySvc services.SafetyService
}

func NewManifestHandler(safetySvc services.SafetyService) *ManifestHandler {
	return &ManifestHandler{safetySvc: safetySvc}
}

// GET /api/v2/manifest
// Capability discovery for clients and SDK generation.
func (h *ManifestHandler) GetManifest(c *gin.Context) {
	goals := map[string]gin.H{}
	for _, g := range domain.Goals() {
		goals[string(g)] = gin.H{
			"required_fields": g.RequiredFields(),
			"video":           g.Video(),
			"graph_oriented":  g.GraphOriented(),
		}
	}
	RespondOK(c, gin.H{
		"service":         "forge-backend",
		"goals":           goals,
		"node_vocabulary": domain.NodeVocabulary(),
		"resource_statuses": []domain.ResourceStatus{
			domain.ResourceVerified,
			domain.ResourceStale,
			domain.ResourceRestricted,
		},
		"blocked_categories": h.safetySvc.BlockedCategories(),
		"defaults": gin.H{
			"default_goal":   domain.GoalT2I,
			"default_prompt": "a blacksmith forging a glowing sword in a fiery workshop, cinematic lighting",
		},
	})
}
