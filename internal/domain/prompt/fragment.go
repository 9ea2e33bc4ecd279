// Package prompt holds the typed fragment model produced by the semantic
// extractor and consumed by the prompt composer.
package prompt

// Tag classifies one extracted span.
type Tag string

const (
	TagSubject   Tag = "subject"
	TagAttribute Tag = "attribute"
	TagStyle     Tag = "style"
	TagCamera    Tag = "camera"
	TagLighting  Tag = "lighting"
	TagMeta      Tag = "meta"
)

// CanonicalOrder is the fixed composition order of fragment groups.
func CanonicalOrder() []Tag {
	return []Tag{TagSubject, TagAttribute, TagStyle, TagCamera, TagLighting, TagMeta}
}

// Fragment is one typed span of the sanitized prompt, in input order.
type Fragment struct {
	Text string `json:"text"`
	Tag  Tag    `json:"tag"`
}

// Weights maps a term to its explicit numeric multiplier. Terms without an
// entry are rendered unweighted.
type Weights map[string]float64

// StyleScores is the normalized keyword histogram over the recognized
// style families (realistic, anime, cyberpunk, fantasy, painting, scifi).
type StyleScores map[string]float64

// Dominant returns the highest-scoring style, or "" when all scores are
// zero. Ties resolve to the lexicographically smallest name so the result
// is deterministic.
func (s StyleScores) Dominant() (string, float64) {
	best, bestScore := "", 0.0
	for name, score := range s {
		if score > bestScore || (score == bestScore && score > 0 && name < best) {
			best, bestScore = name, score
		}
	}
	if bestScore == 0 {
		return "", 0
	}
	return best, bestScore
}
