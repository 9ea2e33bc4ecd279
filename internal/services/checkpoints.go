package services

import (
	"sort"

	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
)

// Checkpoint describes one suggestable model checkpoint.
type Checkpoint struct {
	Name           string   `json:"name"`
	Source         string   `json:"source"`
	Type           string   `json:"type"`
	RecommendedFor []string `json:"recommended_for"`
	Resolution     string   `json:"resolution"`
	DefaultCFG     float64  `json:"default_cfg"`
	DefaultSteps   int      `json:"default_steps"`
	Priority       int      `json:"priority"`
}

// CheckpointService ranks the built-in checkpoint catalog for a goal and
// resolves per-checkpoint defaults.
type CheckpointService interface {
	Suggest(goal intake.Goal, preferred string) []Checkpoint
	Config(name string) Checkpoint
}

type checkpointService struct {
	log *logger.Logger
}

func NewCheckpointService(baseLog *logger.Logger) CheckpointService {
	return &checkpointService{log: baseLog.With("service", "CheckpointService")}
}

func catalog() []Checkpoint {
	return []Checkpoint{
		{
			Name:           "forge-base-v1.safetensors",
			Source:         "forge",
			Type:           "base",
			RecommendedFor: []string{"general", "balanced", "t2i"},
			Resolution:     "832x1216",
			DefaultCFG:     7.5,
			DefaultSteps:   28,
			Priority:       1,
		},
		{
			Name:           "forge-animate-v1.safetensors",
			Source:         "forge",
			Type:           "video",
			RecommendedFor: []string{"video", "animation", "t2v", "i2v"},
			Resolution:     "768x768",
			DefaultCFG:     8.5,
			DefaultSteps:   35,
			Priority:       1,
		},
		{
			Name:           "forge-upscale-v1.safetensors",
			Source:         "forge",
			Type:           "upscale",
			RecommendedFor: []string{"upscaling", "detail-enhancement"},
			Resolution:     "1024x1024",
			DefaultCFG:     6.0,
			DefaultSteps:   20,
			Priority:       1,
		},
	}
}

// Suggest orders the catalog by priority, then goal relevance, then name.
// A preferred checkpoint that exists in the catalog is moved to the front.
func (s *checkpointService) Suggest(goal intake.Goal, preferred string) []Checkpoint {
	cps := catalog()

	if preferred != "" {
		for i := range cps {
			if cps[i].Name == preferred {
				cps[i].Priority = 0
				ordered := []Checkpoint{cps[i]}
				for j := range cps {
					if j != i {
						ordered = append(ordered, cps[j])
					}
				}
				return ordered
			}
		}
	}

	sort.SliceStable(cps, func(i, j int) bool {
		if cps[i].Priority != cps[j].Priority {
			return cps[i].Priority < cps[j].Priority
		}
		ri, rj := recommends(cps[i], goal), recommends(cps[j], goal)
		if ri != rj {
			return ri
		}
		return cps[i].Name < cps[j].Name
	})
	return cps
}

// Config resolves per-checkpoint defaults, falling back to a base profile
// for names outside the catalog.
func (s *checkpointService) Config(name string) Checkpoint {
	for _, cp := range catalog() {
		if cp.Name == name {
			return cp
		}
	}
	s.log.Warn("unknown checkpoint, using base defaults", "checkpoint", name)
	return Checkpoint{
		Name:           name,
		Source:         "local",
		Type:           "base",
		RecommendedFor: []string{"general"},
		Resolution:     "832x1216",
		DefaultCFG:     7.5,
		DefaultSteps:   28,
		Priority:       2,
	}
}

func recommends(cp Checkpoint, goal intake.Goal) bool {
	for _, r := range cp.RecommendedFor {
		if r == string(goal) {
			return true
		}
	}
	return false
}

// CheckpointNames projects a ranked suggestion list to names only.
func CheckpointNames(cps []Checkpoint) []string {
	names := make([]string, 0, len(cps))
	for _, cp := range cps {
		names = append(names, cp.Name)
	}
	return names
}
