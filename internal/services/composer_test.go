package services

import (
	"strings"
	"testing"

	"github.com/forgelabs/forge-backend/internal/domain/fault"
	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/domain/prompt"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
)

func TestComposeEmptyFragments(t *testing.T) {
	svc := NewComposerService(logger.NewNop(), testVocab(t))

	_, _, f := svc.Compose(nil, nil, "", intake.GoalT2I, nil)
	if f == nil || f.Kind != fault.KindEmptyComposition {
		t.Fatalf("expected empty_composition, got %v", f)
	}
}

func TestComposeCanonicalGroupOrder(t *testing.T) {
	svc := NewComposerService(logger.NewNop(), testVocab(t))

	frags := []prompt.Fragment{
		{Text: "masterpiece", Tag: prompt.TagMeta},
		{Text: "anime", Tag: prompt.TagStyle},
		{Text: "a blacksmith", Tag: prompt.TagSubject},
		{Text: "cinematic lighting", Tag: prompt.TagLighting},
		{Text: "glowing", Tag: prompt.TagAttribute},
		{Text: "portrait", Tag: prompt.TagCamera},
	}
	positive, negative, f := svc.Compose(frags, nil, "", intake.GoalT2I, nil)
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	want := "a blacksmith, glowing, anime, portrait, cinematic lighting, masterpiece"
	if positive != want {
		t.Fatalf("expected %q, got %q", want, positive)
	}
	if negative == "" {
		t.Fatal("negative prompt must be non-empty")
	}
}

func TestComposeWeightNotation(t *testing.T) {
	svc := NewComposerService(logger.NewNop(), testVocab(t))

	frags := []prompt.Fragment{
		{Text: "Masterpiece", Tag: prompt.TagMeta},
		{Text: "a dragon", Tag: prompt.TagSubject},
	}
	weights := prompt.Weights{"masterpiece": 1.6}
	positive, _, f := svc.Compose(frags, weights, "", intake.GoalT2I, nil)
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if !strings.Contains(positive, "((Masterpiece:1.6))") {
		t.Fatalf("expected weight notation in %q", positive)
	}
	if !strings.Contains(positive, "a dragon") {
		t.Fatalf("unweighted term must render plain in %q", positive)
	}
}

func TestComposeWeightRendersExactValue(t *testing.T) {
	svc := NewComposerService(logger.NewNop(), testVocab(t))

	frags := []prompt.Fragment{
		{Text: "neon", Tag: prompt.TagAttribute},
		{Text: "cinematic", Tag: prompt.TagStyle},
		{Text: "a city", Tag: prompt.TagSubject},
	}
	weights := prompt.Weights{"neon": 1.35, "cinematic": 12.5}
	positive, _, f := svc.Compose(frags, weights, "", intake.GoalT2I, nil)
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	for _, want := range []string{"((neon:1.35))", "((cinematic:12.5))"} {
		if !strings.Contains(positive, want) {
			t.Fatalf("expected %q rendered verbatim in %q", want, positive)
		}
	}
}

func TestComposeNegativeBaseline(t *testing.T) {
	svc := NewComposerService(logger.NewNop(), testVocab(t))

	frags := []prompt.Fragment{{Text: "a castle", Tag: prompt.TagSubject}}
	_, negative, f := svc.Compose(frags, nil, "", intake.GoalT2I, nil)
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	for _, term := range []string{"blurry", "low quality", "watermark"} {
		if !strings.Contains(negative, term) {
			t.Fatalf("baseline term %q missing from %q", term, negative)
		}
	}
}

func TestComposeNegativeStyleAndVideoExtras(t *testing.T) {
	svc := NewComposerService(logger.NewNop(), testVocab(t))
	frags := []prompt.Fragment{{Text: "a mech", Tag: prompt.TagSubject}}

	_, negative, f := svc.Compose(frags, nil, "anime", intake.GoalT2I, nil)
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if !strings.Contains(negative, "photorealistic") {
		t.Fatalf("anime negative extras missing from %q", negative)
	}

	_, negative, f = svc.Compose(frags, nil, "", intake.GoalT2V, nil)
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	for _, term := range []string{"flickering", "temporal artifacts"} {
		if !strings.Contains(negative, term) {
			t.Fatalf("video negative term %q missing from %q", term, negative)
		}
	}
}

func TestComposeNegativeOverrideRemovesOnlyNamedTerms(t *testing.T) {
	svc := NewComposerService(logger.NewNop(), testVocab(t))
	frags := []prompt.Fragment{{Text: "motion blur study", Tag: prompt.TagSubject}}

	_, negative, f := svc.Compose(frags, nil, "", intake.GoalT2I, []string{"blurry"})
	if f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if strings.Contains(negative, "blurry") {
		t.Fatalf("overridden term still present in %q", negative)
	}
	if !strings.Contains(negative, "watermark") {
		t.Fatalf("unrelated baseline term removed from %q", negative)
	}
}
