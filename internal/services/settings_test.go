package services

import (
	"math"
	"testing"

	"github.com/forgelabs/forge-backend/internal/domain/fault"
	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
)

func TestGoalDefaultTables(t *testing.T) {
	svc := NewSettingsService(logger.NewNop())

	cases := []struct {
		goal       intake.Goal
		steps      int
		cfg        float64
		resolution string
		denoise    float64
		fps        int
	}{
		{intake.GoalT2I, 28, 7.5, "832x1216", 0.25, 0},
		{intake.GoalI2I, 30, 7.0, "match_input", 0.65, 0},
		{intake.GoalT2V, 35, 8.5, "768x768", 0.25, 24},
		{intake.GoalI2V, 40, 8.0, "768x768", 0.35, 20},
	}
	for _, tc := range cases {
		t.Run(string(tc.goal), func(t *testing.T) {
			cfg := svc.Defaults(tc.goal)
			if cfg.Steps != tc.steps {
				t.Fatalf("steps: expected %d, got %d", tc.steps, cfg.Steps)
			}
			if cfg.CFGScale != tc.cfg {
				t.Fatalf("cfg: expected %f, got %f", tc.cfg, cfg.CFGScale)
			}
			if cfg.Resolution != tc.resolution {
				t.Fatalf("resolution: expected %q, got %q", tc.resolution, cfg.Resolution)
			}
			if cfg.Denoise != tc.denoise {
				t.Fatalf("denoise: expected %f, got %f", tc.denoise, cfg.Denoise)
			}
			if cfg.FPS != tc.fps {
				t.Fatalf("fps: expected %d, got %d", tc.fps, cfg.FPS)
			}
			if cfg.Sampler != "DPM++ 2M Karras" {
				t.Fatalf("unexpected sampler %q", cfg.Sampler)
			}
			if cfg.BatchSize != 1 {
				t.Fatalf("unexpected batch size %d", cfg.BatchSize)
			}
		})
	}
}

func TestResolveUnknownParameter(t *testing.T) {
	svc := NewSettingsService(logger.NewNop())

	_, f := svc.Resolve(intake.GoalT2I, map[string]interface{}{"warp_factor": 9}, "", Profile{})
	if f == nil || f.Kind != fault.KindUnknownParameter {
		t.Fatalf("expected unknown_parameter, got %v", f)
	}
	if f.Parameter != "warp_factor" {
		t.Fatalf("expected offending key named, got %q", f.Parameter)
	}
}

func TestResolveVideoKeysRejectedForImageGoals(t *testing.T) {
	svc := NewSettingsService(logger.NewNop())

	_, f := svc.Resolve(intake.GoalT2I, map[string]interface{}{"fps": 30}, "", Profile{})
	if f == nil || f.Kind != fault.KindUnknownParameter {
		t.Fatalf("fps on an image goal must be rejected, got %v", f)
	}

	if _, f := svc.Resolve(intake.GoalT2V, map[string]interface{}{"fps": 30}, "", Profile{}); f != nil {
		t.Fatalf("fps on a video goal must be accepted, got %v", f)
	}
}

func TestResolveSeedBehaviour(t *testing.T) {
	svc := NewSettingsService(logger.NewNop())

	cfg, f := svc.Resolve(intake.GoalT2I, map[string]interface{}{"seed": 42}, "", Profile{})
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if cfg.Seed != 42 {
		t.Fatalf("explicit seed must be honored, got %d", cfg.Seed)
	}

	for i := 0; i < 50; i++ {
		cfg, f := svc.Resolve(intake.GoalT2I, nil, "", Profile{})
		if f != nil {
			t.Fatalf("unexpected fault: %v", f)
		}
		if cfg.Seed < 1 || cfg.Seed > 2_147_483_646 {
			t.Fatalf("seed out of bounds: %d", cfg.Seed)
		}
	}
}

func TestResolveClampsOverrides(t *testing.T) {
	svc := NewSettingsService(logger.NewNop())

	cfg, f := svc.Resolve(intake.GoalI2I, map[string]interface{}{
		"steps":      500,
		"cfg_scale":  0.1,
		"denoise":    2.5,
		"batch_size": 99,
		"clip_skip":  0,
	}, "", Profile{})
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if cfg.Steps != 100 {
		t.Fatalf("steps not clamped: %d", cfg.Steps)
	}
	if cfg.CFGScale != 1.0 {
		t.Fatalf("cfg not clamped: %f", cfg.CFGScale)
	}
	if cfg.Denoise != 1.0 {
		t.Fatalf("denoise not clamped: %f", cfg.Denoise)
	}
	if cfg.BatchSize != 8 {
		t.Fatalf("batch not clamped: %d", cfg.BatchSize)
	}
	if cfg.ClipSkip != 1 {
		t.Fatalf("clip_skip not clamped: %d", cfg.ClipSkip)
	}
}

func TestResolveStyleAdjustment(t *testing.T) {
	svc := NewSettingsService(logger.NewNop())

	cfg, f := svc.Resolve(intake.GoalT2I, nil, "cyberpunk", Profile{})
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if math.Abs(cfg.CFGScale-8.2) > 1e-9 {
		t.Fatalf("expected cfg 8.2 after cyberpunk adjustment, got %f", cfg.CFGScale)
	}
	if cfg.Steps != 31 {
		t.Fatalf("expected 31 steps after cyberpunk adjustment, got %d", cfg.Steps)
	}
}

func TestResolveProfileAdaptation(t *testing.T) {
	svc := NewSettingsService(logger.NewNop())

	profile := Profile{
		PreferredCheckpoint: "custom-forge.safetensors",
		PreferredSampler:    "Euler a",
		Verbosity:           VerbosityVerbose,
	}
	cfg, f := svc.Resolve(intake.GoalT2I, nil, "", profile.Normalize())
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if cfg.Checkpoint != "custom-forge.safetensors" {
		t.Fatalf("preferred checkpoint ignored: %q", cfg.Checkpoint)
	}
	if cfg.Sampler != "Euler a" {
		t.Fatalf("preferred sampler ignored: %q", cfg.Sampler)
	}
	if cfg.Steps != 36 {
		t.Fatalf("verbose profile should add steps, got %d", cfg.Steps)
	}
}

func TestResolveOverrideTypeChecks(t *testing.T) {
	svc := NewSettingsService(logger.NewNop())

	cases := []struct {
		name string
		key  string
		val  interface{}
	}{
		{"string for steps", "steps", "thirty"},
		{"number for sampler", "sampler", 7},
		{"string for hires", "hires", "yes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, f := svc.Resolve(intake.GoalT2I, map[string]interface{}{tc.key: tc.val}, "", Profile{})
			if f == nil || f.Kind != fault.KindUnknownParameter {
				t.Fatalf("expected type rejection, got %v", f)
			}
		})
	}
}
