package services

import (
	"fmt"

	"github.com/forgelabs/forge-backend/internal/domain/forgepkg"
	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/domain/prompt"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
)

// DiagnosticsService explains each resolved parameter in one line. The
// output backs the package's "rationale" menu.
type DiagnosticsService interface {
	Explain(cfg forgepkg.GenerationConfig, style prompt.StyleScores, resourceCount int) map[string]string
}

type diagnosticsService struct {
	log *logger.Logger
}

func NewDiagnosticsService(baseLog *logger.Logger) DiagnosticsService {
	return &diagnosticsService{log: baseLog.With("service", "DiagnosticsService")}
}

func (s *diagnosticsService) Explain(cfg forgepkg.GenerationConfig, style prompt.StyleScores, resourceCount int) map[string]string {
	diag := map[string]string{
		"cfg_reason":        fmt.Sprintf("CFG %.1f tuned for %s balance", cfg.CFGScale, cfg.Goal),
		"sampler_choice":    fmt.Sprintf("%s chosen for stability and quality", cfg.Sampler),
		"resolution_reason": fmt.Sprintf("%s optimal for the %s workflow", cfg.Resolution, cfg.Goal),
		"denoise_reason":    fmt.Sprintf("Denoise %.2f preserves detail while allowing creativity", cfg.Denoise),
		"steps_reason":      stepsReason(cfg.Steps),
	}
	if dominant, score := style.Dominant(); dominant != "" && score > 0.3 {
		diag["style_influence"] = fmt.Sprintf("Detected %s style influencing parameters", dominant)
	}
	if resourceCount > 0 {
		diag["resources_used"] = fmt.Sprintf("Using %d tracked resources", resourceCount)
	}
	if cfg.Goal.Video() {
		diag["fps_reason"] = fmt.Sprintf("%dfps for natural motion", cfg.FPS)
	}
	if cfg.Goal == intake.GoalI2I {
		diag["transform_strength"] = fmt.Sprintf("Denoise %.2f controls transformation intensity", cfg.Denoise)
	}
	return diag
}

func stepsReason(steps int) string {
	switch {
	case steps < 20:
		return fmt.Sprintf("%d steps = fast, less detail", steps)
	case steps < 40:
		return fmt.Sprintf("%d steps = balanced quality", steps)
	default:
		return fmt.Sprintf("%d steps = high quality, slower", steps)
	}
}
