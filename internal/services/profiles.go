package services

import "strings"

// Verbosity levels recognized in a request profile.
const (
	VerbosityCompact = "compact"
	VerbosityNormal  = "normal"
	VerbosityVerbose = "verbose"
)

// Profile is the per-request preference record. It lives only for the
// request that carries it; profiles are never persisted across sessions.
type Profile struct {
	Verbosity           string             `json:"verbosity,omitempty"`
	PreferredCheckpoint string             `json:"preferred_checkpoint,omitempty"`
	PreferredSampler    string             `json:"preferred_sampler,omitempty"`
	CustomWeights       map[string]float64 `json:"custom_weights,omitempty"`

	// AutoWeight merges the built-in keyword-weight table under the
	// request's explicit weights.
	AutoWeight bool `json:"auto_weight,omitempty"`

	// NegativeOverrides names baseline negative terms an explicit positive
	// attribute contradicts; only named terms are removed.
	NegativeOverrides []string `json:"negative_overrides,omitempty"`

	AllowNSFW bool `json:"allow_nsfw,omitempty"`
}

// Normalize fills defaults and canonicalizes the verbosity token.
func (p Profile) Normalize() Profile {
	switch strings.ToLower(strings.TrimSpace(p.Verbosity)) {
	case VerbosityCompact:
		p.Verbosity = VerbosityCompact
	case VerbosityVerbose:
		p.Verbosity = VerbosityVerbose
	default:
		p.Verbosity = VerbosityNormal
	}
	return p
}
