package services

import (
	"strconv"
	"strings"

	"github.com/forgelabs/forge-backend/internal/domain/forgepkg"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
)

// PatchService maps a resolved config to the minimal ordered graph patch.
// The mapping is deterministic: identical configs produce identical op
// lists.
type PatchService interface {
	Generate(cfg forgepkg.GenerationConfig) []forgepkg.PatchOp
}

type patchService struct {
	log *logger.Logger
}

func NewPatchService(baseLog *logger.Logger) PatchService {
	return &patchService{log: baseLog.With("service", "PatchService")}
}

func (s *patchService) Generate(cfg forgepkg.GenerationConfig) []forgepkg.PatchOp {
	var ops []forgepkg.PatchOp

	ops = append(ops, forgepkg.PatchOp{
		Op:   "set",
		Node: forgepkg.NodeKSampler,
		Params: map[string]interface{}{
			"sampler_name": cfg.Sampler,
			"scheduler":    cfg.Scheduler,
			"steps":        cfg.Steps,
			"cfg":          cfg.CFGScale,
			"seed":         cfg.Seed,
			"denoise":      cfg.Denoise,
			"batch_size":   cfg.BatchSize,
			"clip_skip":    cfg.ClipSkip,
		},
	})

	if width, height, ok := parseResolution(cfg.Resolution); ok {
		ops = append(ops, forgepkg.PatchOp{
			Op:   "set",
			Node: forgepkg.NodeEmptyLatentImage,
			Params: map[string]interface{}{
				"width":  width,
				"height": height,
			},
		})
	}

	if cfg.Goal.Video() {
		ops = append(ops, forgepkg.PatchOp{
			Op:   "set",
			Node: forgepkg.NodeVideoConditioning,
			Params: map[string]interface{}{
				"fps":                cfg.FPS,
				"motion_bucket_id":   cfg.MotionBucket,
				"augmentation_level": cfg.Augmentation,
			},
		})
	}

	if cfg.Hires {
		ops = append(ops, forgepkg.PatchOp{
			Op:   "add",
			Node: forgepkg.NodeUpscaleModelLoader,
			Params: map[string]interface{}{
				"model_name": "4x-UltraSharp.pth",
			},
			Connect: &forgepkg.Connection{
				From: forgepkg.NodeKSampler + ".LATENT",
				To:   forgepkg.NodeUpscaleModelLoader + ".samples",
			},
		})
	}

	if cfg.Refiner {
		ops = append(ops, forgepkg.PatchOp{
			Op:   "add",
			Node: forgepkg.NodeRefinerSampler,
			Params: map[string]interface{}{
				"steps":   cfg.Steps / 2,
				"cfg":     cfg.CFGScale,
				"denoise": 0.3,
			},
			Connect: &forgepkg.Connection{
				From: forgepkg.NodeKSampler + ".LATENT",
				To:   forgepkg.NodeRefinerSampler + ".latent_image",
			},
		})
	}

	return ops
}

// parseResolution splits "832x1216" into width/height. The "match_input"
// sentinel (and anything unparseable) skips the latent-size op.
func parseResolution(res string) (int, int, bool) {
	if res == "" || res == "match_input" {
		return 0, 0, false
	}
	parts := strings.SplitN(strings.ToLower(res), "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}
