package services

import (
	"regexp"
	"strings"

	"github.com/forgelabs/forge-backend/internal/domain/fault"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
	"github.com/forgelabs/forge-backend/internal/vocab"
)

// SafetyService is the token scrubber: a deterministic, total, idempotent
// sanitizer over any input string.
type SafetyService interface {
	// Scrub applies, in order: the unconditional block list, the
	// auto-clean replacement list, the NSFW gate, and separator
	// normalization. On a block the returned fault still carries the
	// auto-cleaned rewrite for caller inspection.
	Scrub(text string, allowNSFW bool) (string, *fault.Fault)

	// BlockedCategories lists the unconditional block categories.
	BlockedCategories() []string
}

type safetyService struct {
	log *logger.Logger
	voc *vocab.Vocabulary
}

func NewSafetyService(baseLog *logger.Logger, voc *vocab.Vocabulary) SafetyService {
	return &safetyService{
		log: baseLog.With("service", "SafetyService"),
		voc: voc,
	}
}

const nsfwCategory = "nsfw_not_permitted"

func (s *safetyService) Scrub(text string, allowNSFW bool) (string, *fault.Fault) {
	trimmed := strings.TrimSpace(text)

	// The auto-cleaned rewrite is computed up front so a block can still
	// hand it back to the caller.
	cleaned := normalizeSeparators(s.autoClean(trimmed))

	for _, bc := range s.voc.Blocked {
		if bc.Pattern.MatchString(trimmed) {
			s.log.Warn("blocked content detected", "category", bc.Category)
			return "", fault.ComplianceBlock(bc.Category,
				"unconditionally disallowed content matched", cleaned)
		}
	}

	if !allowNSFW && s.voc.NSFW != nil && s.voc.NSFW.MatchString(trimmed) {
		s.log.Warn("nsfw content rejected under current policy")
		return "", fault.ComplianceBlock(nsfwCategory,
			"explicit content is not permitted in the current mode", cleaned)
	}

	return cleaned, nil
}

func (s *safetyService) autoClean(text string) string {
	for _, r := range s.voc.AutoClean {
		text = r.Pattern.ReplaceAllString(text, r.Replace)
	}
	return text
}

func (s *safetyService) BlockedCategories() []string {
	out := make([]string, 0, len(s.voc.Blocked)+1)
	for _, bc := range s.voc.Blocked {
		out = append(out, bc.Category)
	}
	out = append(out, nsfwCategory)
	return out
}

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	commaRunRe     = regexp.MustCompile(`,(\s*,)+`)
	periodRunRe    = regexp.MustCompile(`\.(\s*\.)+`)
	commaSpacingRe = regexp.MustCompile(`\s*,\s*`)
)

// normalizeSeparators collapses repeated separators and trims edges.
// It is idempotent by construction.
func normalizeSeparators(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = commaRunRe.ReplaceAllString(text, ",")
	text = periodRunRe.ReplaceAllString(text, ".")
	text = commaSpacingRe.ReplaceAllString(text, ", ")
	text = strings.Trim(text, " ,")
	return strings.TrimSpace(text)
}
