package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/forgelabs/forge-backend/internal/domain/fault"
	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/domain/prompt"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
	"github.com/forgelabs/forge-backend/internal/vocab"
)

// ComposerService assembles the positive prompt from tagged fragments in
// canonical group order and derives the paired negative prompt.
type ComposerService interface {
	// Compose renders the positive prompt (explicit weights in the fixed
	// ((term:w)) notation) and the negative baseline for the detected
	// style and goal. Zero fragments fail with EmptyComposition.
	Compose(frags []prompt.Fragment, weights prompt.Weights, style string, goal intake.Goal, negativeOverrides []string) (string, string, *fault.Fault)
}

type composerService struct {
	log *logger.Logger
	voc *vocab.Vocabulary
}

func NewComposerService(baseLog *logger.Logger, voc *vocab.Vocabulary) ComposerService {
	return &composerService{
		log: baseLog.With("service", "ComposerService"),
		voc: voc,
	}
}

func (s *composerService) Compose(frags []prompt.Fragment, weights prompt.Weights, style string, goal intake.Goal, negativeOverrides []string) (string, string, *fault.Fault) {
	if len(frags) == 0 {
		return "", "", fault.EmptyComposition("no usable fragments after scrubbing and extraction")
	}

	positive := s.composePositive(frags, weights)
	negative := s.composeNegative(style, goal, negativeOverrides)
	return positive, negative, nil
}

func (s *composerService) composePositive(frags []prompt.Fragment, weights prompt.Weights) string {
	grouped := map[prompt.Tag][]string{}
	for _, f := range frags {
		grouped[f.Tag] = append(grouped[f.Tag], s.renderTerm(f.Text, weights))
	}

	var parts []string
	for _, tag := range prompt.CanonicalOrder() {
		parts = append(parts, grouped[tag]...)
	}
	return strings.Join(parts, ", ")
}

// renderTerm applies the fixed weight notation to a term carrying an
// explicit weight; other terms render plain. Weight lookup is
// case-insensitive on the whole span.
func (s *composerService) renderTerm(text string, weights prompt.Weights) string {
	if w, ok := weights[strings.ToLower(text)]; ok && w > 0 {
		return fmt.Sprintf("((%s:%s))", text, strconv.FormatFloat(w, 'g', -1, 64))
	}
	return text
}

// composeNegative builds the baseline negative set for the style/goal,
// then removes any term an explicit positive override names. Without an
// override a baseline term and a contradicting positive may coexist.
func (s *composerService) composeNegative(style string, goal intake.Goal, overrides []string) string {
	removed := map[string]bool{}
	for _, o := range overrides {
		removed[strings.ToLower(strings.TrimSpace(o))] = true
	}

	var terms []string
	appendTerms := func(src []string) {
		for _, t := range src {
			if !removed[strings.ToLower(t)] {
				terms = append(terms, t)
			}
		}
	}

	appendTerms(s.voc.NegativeBaseline)
	if style != "" {
		appendTerms(s.voc.NegativeByStyle[style])
	}
	if goal.Video() {
		appendTerms(s.voc.NegativeVideo)
	}
	if len(terms) == 0 {
		// Overrides may not empty the negative prompt entirely.
		terms = append(terms, s.voc.NegativeBaseline...)
	}
	return strings.Join(terms, ", ")
}
