package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/forgelabs/forge-backend/internal/domain/fault"
	"github.com/forgelabs/forge-backend/internal/domain/forgepkg"
	"github.com/forgelabs/forge-backend/internal/domain/resource"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
	"github.com/forgelabs/forge-backend/internal/vocab"
)

// ResourceUpdate is one requested resource in a pipeline run: a name plus
// optional verification fields.
type ResourceUpdate struct {
	Name    string `json:"name"`
	SHA256  string `json:"sha256,omitempty"`
	License string `json:"license,omitempty"`
}

// ResourceLedger tracks the verification status of every asset a session
// references. One ledger per session; it lives and dies with the session
// and is never shared across concurrent runs.
type ResourceLedger struct {
	log   *logger.Logger
	voc   *vocab.Vocabulary
	refs  map[string]*resource.Ref
	order []string
}

func NewResourceLedger(baseLog *logger.Logger, voc *vocab.Vocabulary) *ResourceLedger {
	return &ResourceLedger{
		log:  baseLog.With("service", "ResourceLedger"),
		voc:  voc,
		refs: map[string]*resource.Ref{},
	}
}

// Align creates a reference per new name (defaulting to Stale, or
// Restricted on an explicit policy match) and applies updates to existing
// entries. Stale→Verified happens only when one update carries both
// sha256 and license; there is no other transition path.
func (l *ResourceLedger) Align(updates []ResourceUpdate) []*resource.Ref {
	for _, upd := range updates {
		name := strings.TrimSpace(upd.Name)
		if name == "" {
			continue
		}
		ref, ok := l.refs[name]
		if !ok {
			ref = resource.NewRef(name, detectType(name))
			if l.restricted(name) {
				ref.Status = resource.StatusRestricted
			}
			l.refs[name] = ref
			l.order = append(l.order, name)
		}

		if upd.SHA256 != "" {
			ref.SHA256 = upd.SHA256
		}
		if upd.License != "" {
			ref.License = upd.License
		}
		if ref.Status == resource.StatusStale && upd.SHA256 != "" && upd.License != "" {
			ref.Status = resource.StatusVerified
			l.log.Debug("resource verified", "name", name)
		}
		ref.ValidatedAt = time.Now().UTC()
	}
	return l.Snapshot()
}

// Audit recomputes every status against the policy and transition rules
// and produces the safety resource summary. Any Restricted entry fails
// the run before a package is emitted.
func (l *ResourceLedger) Audit() ([]forgepkg.ResourceSummary, *fault.Fault) {
	var summaries []forgepkg.ResourceSummary
	var restricted []string
	for _, name := range l.order {
		ref := l.refs[name]
		if l.restricted(name) {
			ref.Status = resource.StatusRestricted
		} else if ref.Status == resource.StatusVerified && !ref.Verifiable() {
			// A Verified entry without both fields violates the invariant;
			// demote rather than emit an inconsistent summary.
			ref.Status = resource.StatusStale
		}
		if ref.Status == resource.StatusRestricted {
			restricted = append(restricted, name)
		}
		summaries = append(summaries, forgepkg.ResourceSummary{
			ID:     ref.ID,
			Name:   ref.Name,
			Type:   ref.Type,
			Status: ref.Status,
		})
	}
	if len(restricted) > 0 {
		l.log.Warn("restricted resources referenced", "names", restricted)
		return summaries, fault.RestrictedResource(restricted)
	}
	return summaries, nil
}

// Snapshot returns the tracked references in first-referenced order.
func (l *ResourceLedger) Snapshot() []*resource.Ref {
	out := make([]*resource.Ref, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.refs[name])
	}
	return out
}

func (l *ResourceLedger) restricted(name string) bool {
	return l.voc.RestrictedResources != nil && l.voc.RestrictedResources.MatchString(name)
}

var typePatterns = []struct {
	typ resource.Type
	re  *regexp.Regexp
}{
	{resource.TypeLoRA, regexp.MustCompile(`(?i)lora|lycoris`)},
	{resource.TypeVAE, regexp.MustCompile(`(?i)\bvae\b|\.vae\.`)},
	{resource.TypeEmbedding, regexp.MustCompile(`(?i)embedding|textual[-_\s]?inversion|\.pt$`)},
	{resource.TypeCheckpoint, regexp.MustCompile(`(?i)\.(safetensors|ckpt|pth)$|model|checkpoint`)},
}

func detectType(name string) resource.Type {
	for _, tp := range typePatterns {
		if tp.re.MatchString(name) {
			return tp.typ
		}
	}
	return resource.TypeUnknown
}
