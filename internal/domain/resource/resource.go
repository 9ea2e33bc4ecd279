// Package resource models the named external assets referenced by a
// request (checkpoints, LoRAs, VAEs, embeddings) and their verification
// status.
package resource

import (
	"time"

	"github.com/google/uuid"
)

// Status is the three-value verification vocabulary, serialized as-is.
type Status string

const (
	StatusVerified   Status = "Verified"
	StatusStale      Status = "Stale"
	StatusRestricted Status = "Restricted"
)

// Type classifies a resource from its name; detection is best-effort.
type Type string

const (
	TypeCheckpoint Type = "checkpoint"
	TypeLoRA       Type = "lora"
	TypeVAE        Type = "vae"
	TypeEmbedding  Type = "embedding"
	TypeUnknown    Type = "unknown"
)

// Ref is one tracked resource reference. Created when first referenced,
// mutated only by the ledger, discarded with the session.
type Ref struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   Type   `json:"type"`
	Status Status `json:"status"`

	SHA256  string `json:"sha256,omitempty"`
	License string `json:"license,omitempty"`

	ValidatedAt time.Time `json:"validated_at"`
}

// NewRef creates a reference in the Stale default state.
func NewRef(name string, typ Type) *Ref {
	return &Ref{
		ID:          "res_" + uuid.New().String()[:8],
		Name:        name,
		Type:        typ,
		Status:      StatusStale,
		ValidatedAt: time.Now().UTC(),
	}
}

// Verifiable reports whether the Stale→Verified transition rule is met:
// both sha256 and license present.
func (r *Ref) Verifiable() bool {
	return r.SHA256 != "" && r.License != ""
}
