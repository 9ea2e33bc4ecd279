// Package forgepkg defines the finalized package produced by the pipeline,
// the generation config record, and the graph-patch wire format shared with
// the target workflow tool.
package forgepkg

import (
	"fmt"
	"time"

	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/domain/prompt"
	"github.com/forgelabs/forge-backend/internal/domain/resource"
)

// Fixed node-name vocabulary shared with the target graph tool.
const (
	NodeCheckpointLoader    = "CheckpointLoaderSimple"
	NodeVAELoader           = "VAELoader"
	NodeTextEncodePositive  = "CLIPTextEncodePositive"
	NodeTextEncodeNegative  = "CLIPTextEncodeNegative"
	NodeKSampler            = "KSampler"
	NodeEmptyLatentImage    = "EmptyLatentImage"
	NodeUpscaleModelLoader  = "UpscaleModelLoader"
	NodeRefinerSampler      = "RefinerSampler"
	NodeControlNet          = "ControlNet"
	NodeConditioningAdapter = "ConditioningAdapter"
	NodeVideoConditioning   = "VideoLinearCFGGuidance"
)

// NodeVocabulary lists every node name the patch generator may emit.
func NodeVocabulary() []string {
	return []string{
		NodeCheckpointLoader,
		NodeVAELoader,
		NodeTextEncodePositive,
		NodeTextEncodeNegative,
		NodeKSampler,
		NodeEmptyLatentImage,
		NodeUpscaleModelLoader,
		NodeRefinerSampler,
		NodeControlNet,
		NodeConditioningAdapter,
		NodeVideoConditioning,
	}
}

// GenerationConfig is the fully resolved, goal-typed parameter record.
// Video-only fields are zero for image goals and omitted on the wire.
type GenerationConfig struct {
	Goal       intake.Goal `json:"goal"`
	Checkpoint string      `json:"checkpoint"`
	Sampler    string      `json:"sampler"`
	Scheduler  string      `json:"scheduler"`
	Steps      int         `json:"steps"`
	CFGScale   float64     `json:"cfg_scale"`
	Resolution string      `json:"resolution"`
	Denoise    float64     `json:"denoise"`
	BatchSize  int         `json:"batch_size"`
	ClipSkip   int         `json:"clip_skip"`
	Seed       int64       `json:"seed"`

	// Video extensions.
	FPS          int     `json:"fps,omitempty"`
	MotionBucket int     `json:"motion_bucket,omitempty"`
	Augmentation float64 `json:"augmentation_level,omitempty"`

	// Image extensions: request an upscale / refiner stage in the patch.
	Hires   bool `json:"hires,omitempty"`
	Refiner bool `json:"refiner,omitempty"`
}

// Connection wires an existing node's named output to a new node's input,
// rendered "Node.output" / "Node.input".
type Connection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// PatchOp is one minimal graph-patch operation. Ordering is significant:
// ops apply in list order and a "set" on a node must not precede the "add"
// that introduces it.
type PatchOp struct {
	Op      string                 `json:"op"` // "set" or "add"
	Node    string                 `json:"node"`
	Params  map[string]interface{} `json:"params"`
	Connect *Connection            `json:"connect,omitempty"`
}

// ResourceSummary is the per-resource slice of the safety record.
type ResourceSummary struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Type   resource.Type   `json:"type"`
	Status resource.Status `json:"status"`
}

// Safety is the package safety record.
type Safety struct {
	Status            string            `json:"status"`
	NSFWPolicy        string            `json:"nsfw_policy"`
	BlockedCategories []string          `json:"blocked_categories"`
	Resources         []ResourceSummary `json:"resources"`
}

// Metadata carries the original service's package bookkeeping.
type Metadata struct {
	PromptLength   int `json:"prompt_length"`
	NegativeLength int `json:"negative_length"`
	WordCount      int `json:"word_count"`
	ResourceCount  int `json:"resource_count"`
}

// FinalizedPackage is the immutable output of one successful pipeline run.
// Subsequent runs supersede it with an incremented PackageVersion; nothing
// mutates an emitted package.
type FinalizedPackage struct {
	ID             string      `json:"id"`
	PackageVersion string      `json:"package_version"`
	Goal           intake.Goal `json:"goal"`

	Positive string           `json:"positive"`
	Negative string           `json:"negative"`
	Config   GenerationConfig `json:"config"`

	WorkflowPatch []PatchOp `json:"workflow_patch"`
	Safety        Safety    `json:"safety"`
	Menus         []string  `json:"menus"`

	Caption               string             `json:"caption,omitempty"`
	StyleAnalysis         prompt.StyleScores `json:"style_analysis,omitempty"`
	Diagnostics           map[string]string  `json:"diagnostics,omitempty"`
	CheckpointSuggestions []string           `json:"checkpoint_suggestions,omitempty"`
	Metadata              Metadata           `json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

// Version renders the monotonic per-session package version, starting at
// "v1.0" for seq 0.
func Version(seq int) string {
	return fmt.Sprintf("v1.%d", seq)
}
