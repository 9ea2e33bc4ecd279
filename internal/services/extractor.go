package services

import (
	"strings"

	"github.com/forgelabs/forge-backend/internal/domain/prompt"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
	"github.com/forgelabs/forge-backend/internal/vocab"
)

// ExtractorService decomposes sanitized text into typed fragments and
// scores the style families. Classification is keyword-driven; no model
// is consulted.
type ExtractorService interface {
	// Extract splits on commas, tags each span via the ordered pattern
	// groups (first match wins, unmatched spans default to subject), and
	// resolves conflicting lighting/camera duplicates last-write-wins.
	Extract(sanitized string) []prompt.Fragment

	// AnalyzeStyle returns the normalized style-keyword histogram.
	AnalyzeStyle(sanitized string) prompt.StyleScores
}

type extractorService struct {
	log *logger.Logger
	voc *vocab.Vocabulary
}

func NewExtractorService(baseLog *logger.Logger, voc *vocab.Vocabulary) ExtractorService {
	return &extractorService{
		log: baseLog.With("service", "ExtractorService"),
		voc: voc,
	}
}

func (s *extractorService) Extract(sanitized string) []prompt.Fragment {
	var frags []prompt.Fragment
	for _, span := range splitSpans(sanitized) {
		frags = append(frags, prompt.Fragment{
			Text: span,
			Tag:  s.classify(span),
		})
	}
	return resolveConflicts(frags)
}

func (s *extractorService) classify(span string) prompt.Tag {
	for _, tp := range s.voc.TagPatterns {
		if tp.Pattern.MatchString(span) {
			return prompt.Tag(tp.Tag)
		}
	}
	return prompt.TagSubject
}

func (s *extractorService) AnalyzeStyle(sanitized string) prompt.StyleScores {
	lower := strings.ToLower(sanitized)
	scores := prompt.StyleScores{}
	total := 0
	for family, keywords := range s.voc.StyleKeywords {
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		scores[family] = float64(hits)
		total += hits
	}
	if total > 0 {
		for family := range scores {
			scores[family] = scores[family] / float64(total)
		}
	}
	return scores
}

// splitSpans breaks the prompt into comma-separated spans. A prompt with
// no commas is one span.
func splitSpans(text string) []string {
	var spans []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			spans = append(spans, part)
		}
	}
	return spans
}

// resolveConflicts applies the duplicate policy: lighting and camera are
// single-slot tags, so a later descriptor replaces an earlier one
// (last-write-wins in input order). Exact duplicate spans collapse to
// their first occurrence regardless of tag.
func resolveConflicts(frags []prompt.Fragment) []prompt.Fragment {
	seen := map[string]bool{}
	lastSlot := map[prompt.Tag]int{}
	out := frags[:0]
	for _, f := range frags {
		key := strings.ToLower(f.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		if f.Tag == prompt.TagLighting || f.Tag == prompt.TagCamera {
			if idx, ok := lastSlot[f.Tag]; ok {
				out[idx] = f
				continue
			}
			lastSlot[f.Tag] = len(out)
		}
		out = append(out, f)
	}
	return out
}
