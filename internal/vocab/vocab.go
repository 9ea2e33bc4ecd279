// Package vocab holds the authoritative scrub, extraction, and composition
// vocabularies. The tables ship embedded as YAML; a deploy can override
// them via FORGE_VOCAB_YAML, and malformed files fall back to the built-in
// defaults so the pipeline always has a usable vocabulary.
package vocab

import (
	"embed"
	"fmt"
	"os"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

const vocabEnv = "FORGE_VOCAB_YAML"

//go:embed forge_vocab.yaml
var vocabFS embed.FS

// BlockedCategory is one unconditionally blocked content category.
type BlockedCategory struct {
	Category string   `yaml:"category"`
	Patterns []string `yaml:"patterns"`
}

// Replacement rewrites a youth-coded token to its adult-framing phrase.
type Replacement struct {
	Match   string `yaml:"match"`
	Replace string `yaml:"replace"`
}

// TagPattern assigns a fragment tag to spans matching any of its keywords.
// Groups are tested in order; first match wins.
type TagPattern struct {
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

// Spec is the YAML shape of the vocabulary file.
type Spec struct {
	Version int `yaml:"version"`

	Blocked   []BlockedCategory `yaml:"blocked"`
	AutoClean []Replacement     `yaml:"auto_clean"`
	NSFW      []string          `yaml:"nsfw"`

	TagPatterns   []TagPattern        `yaml:"tag_patterns"`
	StyleKeywords map[string][]string `yaml:"style_keywords"`

	KeywordWeights map[string]float64 `yaml:"keyword_weights"`

	NegativeBaseline []string            `yaml:"negative_baseline"`
	NegativeByStyle  map[string][]string `yaml:"negative_by_style"`
	NegativeVideo    []string            `yaml:"negative_video"`

	RestrictedResources []string `yaml:"restricted_resources"`
}

// Vocabulary is the compiled form used by the pipeline stages.
type Vocabulary struct {
	Blocked []CompiledCategory

	AutoClean []CompiledReplacement

	NSFW *regexp.Regexp

	TagPatterns   []CompiledTagPattern
	StyleKeywords map[string][]string

	KeywordWeights map[string]float64

	NegativeBaseline []string
	NegativeByStyle  map[string][]string
	NegativeVideo    []string

	RestrictedResources *regexp.Regexp
}

type CompiledCategory struct {
	Category string
	Pattern  *regexp.Regexp
}

type CompiledReplacement struct {
	Pattern *regexp.Regexp
	Replace string
}

type CompiledTagPattern struct {
	Tag     string
	Pattern *regexp.Regexp
}

var (
	loadOnce sync.Once
	loaded   *Vocabulary
	loadErr  error
)

// Load returns the process-wide compiled vocabulary. A malformed override
// or embedded file is reported once via the returned error while the
// defaults remain in effect.
func Load() (*Vocabulary, error) {
	loadOnce.Do(func() {
		spec, err := readSpec()
		if err != nil {
			loaded = mustCompile(defaultSpec())
			loadErr = err
			return
		}
		v, err := compile(spec)
		if err != nil {
			loaded = mustCompile(defaultSpec())
			loadErr = err
			return
		}
		loaded = v
	})
	return loaded, loadErr
}

func readSpec() (*Spec, error) {
	var raw []byte
	if path := os.Getenv(vocabEnv); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("vocab override %s: %w", path, err)
		}
		raw = b
	} else {
		b, err := vocabFS.ReadFile("forge_vocab.yaml")
		if err != nil {
			return nil, fmt.Errorf("embedded vocab: %w", err)
		}
		raw = b
	}
	var spec Spec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("vocab yaml: %w", err)
	}
	if len(spec.Blocked) == 0 {
		return nil, fmt.Errorf("vocab yaml: no blocked categories")
	}
	return &spec, nil
}

func compile(spec *Spec) (*Vocabulary, error) {
	v := &Vocabulary{
		StyleKeywords:    spec.StyleKeywords,
		KeywordWeights:   spec.KeywordWeights,
		NegativeBaseline: spec.NegativeBaseline,
		NegativeByStyle:  spec.NegativeByStyle,
		NegativeVideo:    spec.NegativeVideo,
	}
	for _, bc := range spec.Blocked {
		re, err := compileAny(bc.Patterns)
		if err != nil {
			return nil, fmt.Errorf("blocked %q: %w", bc.Category, err)
		}
		v.Blocked = append(v.Blocked, CompiledCategory{Category: bc.Category, Pattern: re})
	}
	for _, r := range spec.AutoClean {
		re, err := regexp.Compile(`(?i)\b` + r.Match + `\b`)
		if err != nil {
			return nil, fmt.Errorf("auto_clean %q: %w", r.Match, err)
		}
		v.AutoClean = append(v.AutoClean, CompiledReplacement{Pattern: re, Replace: r.Replace})
	}
	if len(spec.NSFW) > 0 {
		re, err := compileAny(spec.NSFW)
		if err != nil {
			return nil, fmt.Errorf("nsfw: %w", err)
		}
		v.NSFW = re
	}
	for _, tp := range spec.TagPatterns {
		re, err := compileAny(tp.Keywords)
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", tp.Tag, err)
		}
		v.TagPatterns = append(v.TagPatterns, CompiledTagPattern{Tag: tp.Tag, Pattern: re})
	}
	if len(spec.RestrictedResources) > 0 {
		re, err := compileAny(spec.RestrictedResources)
		if err != nil {
			return nil, fmt.Errorf("restricted_resources: %w", err)
		}
		v.RestrictedResources = re
	}
	return v, nil
}

// compileAny joins pattern alternatives into one case-insensitive,
// word-bounded regexp.
func compileAny(patterns []string) (*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("empty pattern list")
	}
	joined := ""
	for i, p := range patterns {
		if i > 0 {
			joined += "|"
		}
		joined += "(?:" + p + ")"
	}
	return regexp.Compile(`(?i)\b(?:` + joined + `)\b`)
}

// mustCompile is only used against the built-in defaults, which are a
// programming invariant: a malformed default table is fatal.
func mustCompile(spec *Spec) *Vocabulary {
	v, err := compile(spec)
	if err != nil {
		panic(fmt.Sprintf("vocab: built-in defaults invalid: %v", err))
	}
	return v
}
