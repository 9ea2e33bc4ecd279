package services

import (
	"fmt"
	"strings"

	"github.com/forgelabs/forge-backend/internal/domain/forgepkg"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
)

// CaptionService derives a deterministic caption from the scrubbed prompt.
// No model is consulted; the caption is template-driven so two runs over
// the same input produce the same text.
type CaptionService interface {
	Caption(sanitized string, userCaption string, cfg forgepkg.GenerationConfig) string
}

type captionService struct {
	log *logger.Logger
}

func NewCaptionService(baseLog *logger.Logger) CaptionService {
	return &captionService{log: baseLog.With("service", "CaptionService")}
}

const captionMaxSubject = 80

func (s *captionService) Caption(sanitized, userCaption string, cfg forgepkg.GenerationConfig) string {
	if strings.TrimSpace(userCaption) != "" {
		return strings.TrimSpace(userCaption)
	}
	subject := sanitized
	if idx := strings.Index(subject, ","); idx > 0 {
		subject = subject[:idx]
	}
	subject = strings.TrimSpace(subject)
	if len(subject) > captionMaxSubject {
		subject = strings.TrimSpace(subject[:captionMaxSubject])
	}
	if subject == "" {
		return ""
	}
	if cfg.Goal.Video() {
		return fmt.Sprintf("%s - AI-animated at %dfps", subject, cfg.FPS)
	}
	return fmt.Sprintf("%s - Crafted with %s at %d steps", subject, cfg.Sampler, cfg.Steps)
}
