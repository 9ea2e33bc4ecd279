package services

import (
	"testing"

	"github.com/forgelabs/forge-backend/internal/domain/fault"
	"github.com/forgelabs/forge-backend/internal/domain/resource"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
)

func TestLedgerNewReferencesDefaultStale(t *testing.T) {
	l := NewResourceLedger(logger.NewNop(), testVocab(t))

	refs := l.Align([]ResourceUpdate{{Name: "style-lora.safetensors"}})
	if len(refs) != 1 {
		t.Fatalf("expected one ref, got %d", len(refs))
	}
	if refs[0].Status != resource.StatusStale {
		t.Fatalf("new ref must default to Stale, got %s", refs[0].Status)
	}
	if refs[0].ID == "" {
		t.Fatal("ref must get an id on creation")
	}
}

func TestLedgerTypeDetection(t *testing.T) {
	l := NewResourceLedger(logger.NewNop(), testVocab(t))

	cases := []struct {
		name string
		want resource.Type
	}{
		{"style-lora.safetensors", resource.TypeLoRA},
		{"anything.vae.pt", resource.TypeVAE},
		{"bad-hands-embedding.pt", resource.TypeEmbedding},
		{"dreamshaper.ckpt", resource.TypeCheckpoint},
		{"notes.txt", resource.TypeUnknown},
	}
	var updates []ResourceUpdate
	for _, tc := range cases {
		updates = append(updates, ResourceUpdate{Name: tc.name})
	}
	refs := l.Align(updates)
	for i, tc := range cases {
		if refs[i].Type != tc.want {
			t.Fatalf("%s: expected type %s, got %s", tc.name, tc.want, refs[i].Type)
		}
	}
}

func TestLedgerStaleToVerifiedNeedsBothFieldsAtOnce(t *testing.T) {
	l := NewResourceLedger(logger.NewNop(), testVocab(t))

	name := "dreamshaper.safetensors"
	l.Align([]ResourceUpdate{{Name: name, SHA256: "abc123"}})
	refs := l.Align([]ResourceUpdate{{Name: name, License: "creativeml-openrail-m"}})
	if refs[0].Status != resource.StatusStale {
		t.Fatalf("piecemeal updates must not verify, got %s", refs[0].Status)
	}

	refs = l.Align([]ResourceUpdate{{Name: name, SHA256: "abc123", License: "creativeml-openrail-m"}})
	if refs[0].Status != resource.StatusVerified {
		t.Fatalf("full update must verify, got %s", refs[0].Status)
	}
}

func TestLedgerRestrictedPolicyMatch(t *testing.T) {
	l := NewResourceLedger(logger.NewNop(), testVocab(t))

	refs := l.Align([]ResourceUpdate{{Name: "nsfw-dream.safetensors"}})
	if refs[0].Status != resource.StatusRestricted {
		t.Fatalf("policy match must restrict, got %s", refs[0].Status)
	}

	_, f := l.Audit()
	if f == nil || f.Kind != fault.KindRestrictedResource {
		t.Fatalf("expected restricted_resource fault, got %v", f)
	}
	if len(f.Resources) != 1 || f.Resources[0] != "nsfw-dream.safetensors" {
		t.Fatalf("fault must name the offending asset, got %v", f.Resources)
	}
}

func TestLedgerAuditDemotesInconsistentVerified(t *testing.T) {
	l := NewResourceLedger(logger.NewNop(), testVocab(t))

	name := "dreamshaper.safetensors"
	l.Align([]ResourceUpdate{{Name: name, SHA256: "abc", License: "mit"}})
	// Simulate a ref that lost a verification field.
	l.refs[name].License = ""

	summaries, f := l.Audit()
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if summaries[0].Status != resource.StatusStale {
		t.Fatalf("inconsistent Verified ref must demote to Stale, got %s", summaries[0].Status)
	}
}

func TestLedgerAuditCleanRun(t *testing.T) {
	l := NewResourceLedger(logger.NewNop(), testVocab(t))

	l.Align([]ResourceUpdate{
		{Name: "style-lora.safetensors"},
		{Name: "dreamshaper.safetensors", SHA256: "abc", License: "mit"},
	})
	summaries, f := l.Audit()
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Status != resource.StatusStale || summaries[1].Status != resource.StatusVerified {
		t.Fatalf("unexpected statuses: %v", summaries)
	}
}
