package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forgelabs/forge-backend/internal/domain/fault"
	"github.com/forgelabs/forge-backend/internal/domain/forgepkg"
	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/domain/prompt"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
	"github.com/forgelabs/forge-backend/internal/vocab"
)

// RunOptions is everything one pipeline run may carry beyond the session
// itself. All of it is per-run; nothing here outlives the run.
type RunOptions struct {
	Resources []ResourceUpdate       `json:"resources,omitempty"`
	Overrides map[string]interface{} `json:"overrides,omitempty"`
	Weights   prompt.Weights         `json:"weights,omitempty"`
	Profile   Profile                `json:"profile,omitempty"`
	Caption   string                 `json:"caption,omitempty"`
}

// AssemblerService runs the full pipeline against a gated session and
// emits the Finalized Package. Stages run in fixed order and the first
// fault aborts the run; a fault run emits nothing and bumps no version.
type AssemblerService interface {
	Run(entry *SessionEntry, opts RunOptions) (*forgepkg.FinalizedPackage, *fault.Fault)
}

type assemblerService struct {
	log         *logger.Logger
	voc         *vocab.Vocabulary
	intake      IntakeService
	safety      SafetyService
	extractor   ExtractorService
	composer    ComposerService
	settings    SettingsService
	patch       PatchService
	captions    CaptionService
	diagnostics DiagnosticsService
	checkpoints CheckpointService
}

func NewAssemblerService(
	baseLog *logger.Logger,
	voc *vocab.Vocabulary,
	intakeSvc IntakeService,
	safety SafetyService,
	extractor ExtractorService,
	composer ComposerService,
	settings SettingsService,
	patch PatchService,
	captions CaptionService,
	diagnostics DiagnosticsService,
	checkpoints CheckpointService,
) AssemblerService {
	return &assemblerService{
		log:         baseLog.With("service", "AssemblerService"),
		voc:         voc,
		intake:      intakeSvc,
		safety:      safety,
		extractor:   extractor,
		composer:    composer,
		settings:    settings,
		patch:       patch,
		captions:    captions,
		diagnostics: diagnostics,
		checkpoints: checkpoints,
	}
}

func (s *assemblerService) Run(entry *SessionEntry, opts RunOptions) (*forgepkg.FinalizedPackage, *fault.Fault) {
	sess := entry.Session
	profile := opts.Profile.Normalize()

	if f := s.intake.Gate(sess); f != nil {
		return nil, f
	}

	allowNSFW := sess.AllowNSFW || profile.AllowNSFW

	sanitized, f := s.safety.Scrub(sess.Fields[intake.FieldPromptString], allowNSFW)
	if f != nil {
		s.log.Info("run blocked at scrub", "session_id", sess.ID, "category", f.Category)
		return nil, f
	}

	frags := s.extractor.Extract(sanitized)
	style := s.extractor.AnalyzeStyle(sanitized)
	dominant, _ := style.Dominant()

	weights := s.effectiveWeights(opts.Weights, profile)
	positive, negative, f := s.composer.Compose(frags, weights, dominant, sess.Goal, profile.NegativeOverrides)
	if f != nil {
		return nil, f
	}

	entry.Ledger.Align(opts.Resources)

	cfg, f := s.settings.Resolve(sess.Goal, opts.Overrides, dominant, profile)
	if f != nil {
		return nil, f
	}

	patch := s.patch.Generate(cfg)

	summaries, f := entry.Ledger.Audit()
	if f != nil {
		return nil, f
	}

	nsfwPolicy := "deny"
	if allowNSFW {
		nsfwPolicy = "allow"
	}

	pkg := &forgepkg.FinalizedPackage{
		ID:             "forge_pkg_" + uuid.NewString()[:8],
		PackageVersion: forgepkg.Version(sess.PackageSeq),
		Goal:           sess.Goal,
		Positive:       positive,
		Negative:       negative,
		Config:         cfg,
		WorkflowPatch:  patch,
		Safety: forgepkg.Safety{
			Status:            "cleaned",
			NSFWPolicy:        nsfwPolicy,
			BlockedCategories: s.safety.BlockedCategories(),
			Resources:         summaries,
		},
		Menus:                 menusFor(sess.Goal),
		Caption:               s.captions.Caption(sanitized, opts.Caption, cfg),
		StyleAnalysis:         style,
		Diagnostics:           s.diagnostics.Explain(cfg, style, len(summaries)),
		CheckpointSuggestions: CheckpointNames(s.checkpoints.Suggest(sess.Goal, profile.PreferredCheckpoint)),
		Metadata: forgepkg.Metadata{
			PromptLength:   len(positive),
			NegativeLength: len(negative),
			WordCount:      len(strings.Fields(positive)),
			ResourceCount:  len(summaries),
		},
		CreatedAt: time.Now().UTC(),
	}
	sess.PackageSeq++

	s.log.Info("package assembled",
		"session_id", sess.ID,
		"package_id", pkg.ID,
		"version", pkg.PackageVersion,
		"goal", sess.Goal,
	)
	return pkg, nil
}

// effectiveWeights layers the built-in keyword table (only when the
// profile opts in), the profile's custom weights, and the run's explicit
// weights, later layers winning.
func (s *assemblerService) effectiveWeights(explicit prompt.Weights, profile Profile) prompt.Weights {
	out := prompt.Weights{}
	if profile.AutoWeight {
		for term, w := range s.voc.KeywordWeights {
			out[term] = w
		}
	}
	for term, w := range profile.CustomWeights {
		out[term] = w
	}
	for term, w := range explicit {
		out[term] = w
	}
	return out
}

// menusFor returns the goal-aware follow-up menu list.
func menusFor(goal intake.Goal) []string {
	menus := []string{
		"variants", "prompt", "negatives", "config", "workflow",
		"safety", "version", "rationale", "discard", "help",
	}
	if goal.GraphOriented() {
		menus = append(menus, "denoise")
	}
	if goal.Video() {
		menus = append(menus, "frames", "motion")
	}
	return menus
}
