package services

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/forgelabs/forge-backend/internal/domain/fault"
	"github.com/forgelabs/forge-backend/internal/domain/forgepkg"
	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
)

// SettingsService resolves a locked goal plus optional overrides into a
// complete generation config. Everything is table-driven; an override key
// outside the goal schema is rejected, never silently accepted.
type SettingsService interface {
	Resolve(goal intake.Goal, overrides map[string]interface{}, style string, profile Profile) (forgepkg.GenerationConfig, *fault.Fault)

	// Defaults exposes the untouched per-goal default record.
	Defaults(goal intake.Goal) forgepkg.GenerationConfig
}

type settingsService struct {
	log *logger.Logger
}

func NewSettingsService(baseLog *logger.Logger) SettingsService {
	return &settingsService{log: baseLog.With("service", "SettingsService")}
}

const (
	samplerDPMpp2M  = "DPM++ 2M Karras"
	schedulerKarras = "Karras"

	checkpointBase    = "forge-base-v1.safetensors"
	checkpointAnimate = "forge-animate-v1.safetensors"
)

func goalDefaults(goal intake.Goal) forgepkg.GenerationConfig {
	switch goal {
	case intake.GoalT2I:
		return forgepkg.GenerationConfig{
			Goal: goal, Checkpoint: checkpointBase,
			Sampler: samplerDPMpp2M, Scheduler: schedulerKarras,
			Steps: 28, CFGScale: 7.5, Resolution: "832x1216",
			Denoise: 0.25, BatchSize: 1, ClipSkip: 2,
		}
	case intake.GoalI2I:
		return forgepkg.GenerationConfig{
			Goal: goal, Checkpoint: checkpointBase,
			Sampler: samplerDPMpp2M, Scheduler: schedulerKarras,
			Steps: 30, CFGScale: 7.0, Resolution: "match_input",
			Denoise: 0.65, BatchSize: 1, ClipSkip: 2,
		}
	case intake.GoalT2V:
		return forgepkg.GenerationConfig{
			Goal: goal, Checkpoint: checkpointAnimate,
			Sampler: samplerDPMpp2M, Scheduler: schedulerKarras,
			Steps: 35, CFGScale: 8.5, Resolution: "768x768",
			Denoise: 0.25, BatchSize: 1, ClipSkip: 2,
			FPS: 24, MotionBucket: 127, Augmentation: 0.1,
		}
	case intake.GoalI2V:
		return forgepkg.GenerationConfig{
			Goal: goal, Checkpoint: checkpointAnimate,
			Sampler: samplerDPMpp2M, Scheduler: schedulerKarras,
			Steps: 40, CFGScale: 8.0, Resolution: "768x768",
			Denoise: 0.35, BatchSize: 1, ClipSkip: 2,
			FPS: 20, MotionBucket: 127, Augmentation: 0.1,
		}
	}
	// Callers go through the intake machine, so an unknown goal here is a
	// programming error.
	panic(fmt.Sprintf("settings: no default table for goal %q", goal))
}

// commonOverrideKeys are recognized for every goal.
var commonOverrideKeys = []string{
	"checkpoint", "sampler", "scheduler", "steps", "cfg_scale",
	"resolution", "denoise", "batch_size", "clip_skip", "seed",
}

// imageOverrideKeys / videoOverrideKeys extend the schema per goal family.
var imageOverrideKeys = []string{"hires", "refiner"}
var videoOverrideKeys = []string{"fps", "motion_bucket", "augmentation_level"}

func overrideSchema(goal intake.Goal) map[string]bool {
	schema := map[string]bool{}
	for _, k := range commonOverrideKeys {
		schema[k] = true
	}
	extra := imageOverrideKeys
	if goal.Video() {
		extra = videoOverrideKeys
	}
	for _, k := range extra {
		schema[k] = true
	}
	return schema
}

// styleAdjustments nudge cfg/steps toward the dominant detected style.
var styleAdjustments = map[string]struct {
	cfg   float64
	steps int
}{
	"realistic": {cfg: -0.5, steps: 5},
	"anime":     {cfg: 0.3, steps: -2},
	"cyberpunk": {cfg: 0.7, steps: 3},
	"fantasy":   {cfg: 0.4, steps: 2},
}

func (s *settingsService) Defaults(goal intake.Goal) forgepkg.GenerationConfig {
	return goalDefaults(goal)
}

func (s *settingsService) Resolve(goal intake.Goal, overrides map[string]interface{}, style string, profile Profile) (forgepkg.GenerationConfig, *fault.Fault) {
	cfg := goalDefaults(goal)

	applyProfile(&cfg, profile)

	if adj, ok := styleAdjustments[style]; ok {
		cfg.CFGScale += adj.cfg
		cfg.Steps += adj.steps
	}

	schema := overrideSchema(goal)
	seedOverridden := false
	for key, val := range overrides {
		key = strings.ToLower(strings.TrimSpace(key))
		if !schema[key] {
			return forgepkg.GenerationConfig{}, fault.UnknownParameter(key)
		}
		if key == "seed" {
			seedOverridden = true
		}
		if f := applyOverride(&cfg, key, val); f != nil {
			return forgepkg.GenerationConfig{}, f
		}
	}

	if !seedOverridden {
		// One bounded pseudo-random seed per run, recorded in the output.
		// Reproducibility means the package names the seed it used, not
		// that seeds repeat across runs.
		cfg.Seed = rand.Int63n(2_147_483_646) + 1
	}

	clamp(&cfg)
	s.log.Debug("resolved settings", "goal", goal, "seed", cfg.Seed, "style", style)
	return cfg, nil
}

func applyProfile(cfg *forgepkg.GenerationConfig, profile Profile) {
	if profile.PreferredCheckpoint != "" {
		cfg.Checkpoint = profile.PreferredCheckpoint
	}
	if profile.PreferredSampler != "" {
		cfg.Sampler = profile.PreferredSampler
	}
	switch profile.Verbosity {
	case VerbosityVerbose:
		cfg.Steps += 8
	case VerbosityCompact:
		cfg.Steps -= 5
	}
}

func applyOverride(cfg *forgepkg.GenerationConfig, key string, val interface{}) *fault.Fault {
	badType := func(want string) *fault.Fault {
		return fault.New(fault.KindUnknownParameter,
			fmt.Sprintf("override %q must be a %s", key, want))
	}
	switch key {
	case "checkpoint", "sampler", "scheduler", "resolution":
		s, ok := val.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return badType("non-empty string")
		}
		switch key {
		case "checkpoint":
			cfg.Checkpoint = s
		case "sampler":
			cfg.Sampler = s
		case "scheduler":
			cfg.Scheduler = s
		case "resolution":
			cfg.Resolution = s
		}
	case "steps", "batch_size", "clip_skip", "fps", "motion_bucket", "seed":
		n, ok := asInt(val)
		if !ok {
			return badType("number")
		}
		switch key {
		case "steps":
			cfg.Steps = int(n)
		case "batch_size":
			cfg.BatchSize = int(n)
		case "clip_skip":
			cfg.ClipSkip = int(n)
		case "fps":
			cfg.FPS = int(n)
		case "motion_bucket":
			cfg.MotionBucket = int(n)
		case "seed":
			cfg.Seed = n
		}
	case "cfg_scale", "denoise", "augmentation_level":
		f, ok := asFloat(val)
		if !ok {
			return badType("number")
		}
		switch key {
		case "cfg_scale":
			cfg.CFGScale = f
		case "denoise":
			cfg.Denoise = f
		case "augmentation_level":
			cfg.Augmentation = f
		}
	case "hires":
		b, ok := val.(bool)
		if !ok {
			return badType("boolean")
		}
		cfg.Hires = b
	case "refiner":
		b, ok := val.(bool)
		if !ok {
			return badType("boolean")
		}
		cfg.Refiner = b
	}
	return nil
}

// asInt accepts JSON numbers (float64) and native ints.
func asInt(val interface{}) (int64, bool) {
	switch n := val.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asFloat(val interface{}) (float64, bool) {
	switch n := val.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func clamp(cfg *forgepkg.GenerationConfig) {
	cfg.Steps = clampInt(cfg.Steps, 10, 100)
	cfg.CFGScale = clampFloat(cfg.CFGScale, 1.0, 20.0)
	cfg.Denoise = clampFloat(cfg.Denoise, 0.0, 1.0)
	cfg.BatchSize = clampInt(cfg.BatchSize, 1, 8)
	cfg.ClipSkip = clampInt(cfg.ClipSkip, 1, 4)
	if cfg.Goal.Video() {
		cfg.FPS = clampInt(cfg.FPS, 1, 60)
		cfg.MotionBucket = clampInt(cfg.MotionBucket, 1, 255)
		cfg.Augmentation = clampFloat(cfg.Augmentation, 0.0, 1.0)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
