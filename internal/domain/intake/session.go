// Package intake holds the session model for one intake conversation:
// the goal lock, the collected fields, and the derived machine state.
package intake

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Goal is the enumerated package type. It determines the required field
// set and the default generation parameters.
type Goal string

const (
	GoalT2I Goal = "t2i"
	GoalI2I Goal = "i2i"
	GoalT2V Goal = "t2v"
	GoalI2V Goal = "i2v"
)

// Goals lists the valid goal tokens in their documented order.
func Goals() []Goal {
	return []Goal{GoalT2I, GoalI2I, GoalT2V, GoalI2V}
}

func ParseGoal(s string) (Goal, bool) {
	g := Goal(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case GoalT2I, GoalI2I, GoalT2V, GoalI2V:
		return g, true
	}
	return "", false
}

// Video reports whether the goal produces frames rather than a still.
func (g Goal) Video() bool {
	return g == GoalT2V || g == GoalI2V
}

// GraphOriented reports whether the goal starts from an existing
// node-graph description instead of text alone.
func (g Goal) GraphOriented() bool {
	return g == GoalI2I || g == GoalI2V
}

// Well-known session field names.
const (
	FieldPromptString = "prompt_string"
	FieldGraphJSON    = "graph_json"
)

// State is the derived intake machine state.
type State string

const (
	StateAwaitingGoal           State = "awaiting_goal"
	StateGoalLocked             State = "goal_locked"
	StateAwaitingRequiredFields State = "awaiting_required_fields"
	StateReady                  State = "ready"
)

// Session is one intake conversation. It is exclusively owned by the
// logical conversation it belongs to and is never persisted.
type Session struct {
	ID         uuid.UUID         `json:"id"`
	Goal       Goal              `json:"goal,omitempty"`
	GoalLocked bool              `json:"goal_locked"`
	Fields     map[string]string `json:"fields"`

	// AllowNSFW is sourced from the request profile and gates the
	// conditional NSFW scrub rule. Unconditional blocks ignore it.
	AllowNSFW bool `json:"allow_nsfw"`

	// PackageSeq drives the monotonic package_version ("v1.0", "v1.1", ...).
	PackageSeq int       `json:"package_seq"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewSession() *Session {
	return &Session{
		ID:        uuid.New(),
		Fields:    map[string]string{},
		CreatedAt: time.Now().UTC(),
	}
}

// RequiredFields returns the goal-dependent required field set. Graph
// goals need both the graph description and prompt text.
func (g Goal) RequiredFields() []string {
	if g.GraphOriented() {
		return []string{FieldPromptString, FieldGraphJSON}
	}
	return []string{FieldPromptString}
}

// MissingFields derives the unsatisfied required fields. It is computed,
// never stored.
func (s *Session) MissingFields() []string {
	if s.Goal == "" {
		return []string{"goal"}
	}
	var missing []string
	for _, name := range s.Goal.RequiredFields() {
		if !s.fieldSatisfied(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func (s *Session) fieldSatisfied(name string) bool {
	val, ok := s.Fields[name]
	if !ok {
		return false
	}
	switch name {
	case FieldPromptString:
		return strings.TrimSpace(val) != ""
	case FieldGraphJSON:
		return parseableGraph(val)
	}
	return strings.TrimSpace(val) != ""
}

// parseableGraph accepts any structurally valid JSON object.
func parseableGraph(val string) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal([]byte(val), &obj) == nil
}

// State derives the current machine state from the session content.
func (s *Session) State() State {
	if s.Goal == "" {
		return StateAwaitingGoal
	}
	if len(s.MissingFields()) == 0 {
		return StateReady
	}
	if len(s.Fields) == 0 {
		return StateGoalLocked
	}
	return StateAwaitingRequiredFields
}
