package services

import (
	"fmt"
	"strings"

	"github.com/forgelabs/forge-backend/internal/domain/fault"
	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
)

// IntakeService owns every session state transition. The pipeline never
// runs against a session this service has not gated as Ready, and the
// machine never infers a goal from content.
type IntakeService interface {
	SetGoal(sess *intake.Session, rawGoal string) *fault.Fault
	SetField(sess *intake.Session, name, value string) *fault.Fault
	Unlock(sess *intake.Session, target string) *fault.Fault
	Gate(sess *intake.Session) *fault.Fault
}

type intakeService struct {
	log *logger.Logger
}

func NewIntakeService(baseLog *logger.Logger) IntakeService {
	return &intakeService{log: baseLog.With("service", "IntakeService")}
}

// SetGoal locks the session to a goal. Re-setting the same goal is a
// no-op; changing a locked goal requires an unlock first.
func (s *intakeService) SetGoal(sess *intake.Session, rawGoal string) *fault.Fault {
	goal, ok := intake.ParseGoal(rawGoal)
	if !ok {
		return fault.InvalidGoal(fmt.Sprintf("unknown goal %q, expected one of t2i, i2i, t2v, i2v", rawGoal))
	}
	if sess.GoalLocked {
		if sess.Goal == goal {
			return nil
		}
		return fault.InvalidGoal(fmt.Sprintf("goal already locked to %q, unlock before changing it", sess.Goal))
	}
	sess.Goal = goal
	sess.GoalLocked = true
	s.log.Debug("goal locked", "session_id", sess.ID, "goal", goal)
	return nil
}

// SetField stores one intake field. Readiness is derived, not stored, so
// callers read Session.State after this returns.
func (s *intakeService) SetField(sess *intake.Session, name, value string) *fault.Fault {
	name = strings.TrimSpace(name)
	if name == "" {
		return fault.New(fault.KindIntakeIncomplete, "field name must be non-empty")
	}
	if name == "goal" {
		return fault.InvalidGoal("the goal is set via set_goal, not as a field")
	}
	sess.Fields[name] = value
	s.log.Debug("field set", "session_id", sess.ID, "field", name, "state", sess.State())
	return nil
}

// Unlock clears the named field, or everything for "all". Clearing "goal"
// also releases the goal lock.
func (s *intakeService) Unlock(sess *intake.Session, target string) *fault.Fault {
	target = strings.TrimSpace(strings.ToLower(target))
	switch target {
	case "":
		return fault.New(fault.KindUnknownParameter, "unlock target must be a field name, \"goal\" or \"all\"")
	case "all":
		sess.Goal = ""
		sess.GoalLocked = false
		sess.Fields = map[string]string{}
	case "goal":
		sess.Goal = ""
		sess.GoalLocked = false
	default:
		delete(sess.Fields, target)
	}
	s.log.Debug("unlocked", "session_id", sess.ID, "target", target, "state", sess.State())
	return nil
}

// Gate admits a session to the pipeline only in the Ready state.
func (s *intakeService) Gate(sess *intake.Session) *fault.Fault {
	if missing := sess.MissingFields(); len(missing) > 0 {
		return fault.IntakeIncomplete(missing)
	}
	return nil
}

// GoalSuggestion is an advisory inference sold strictly as a hint. It is
// surfaced at the transport layer and never mutates a session.
type GoalSuggestion struct {
	Goal           intake.Goal `json:"inferred_goal"`
	Confidence     float64     `json:"confidence"`
	Recommendation string      `json:"recommendation"`
}

// SuggestGoal scans the prompt for goal-revealing keywords.
func SuggestGoal(prompt string) GoalSuggestion {
	p := strings.ToLower(prompt)
	for _, kw := range []string{"video", "animation", "frames", "moving", "motion"} {
		if strings.Contains(p, kw) {
			return GoalSuggestion{Goal: intake.GoalT2V, Confidence: 0.9, Recommendation: "Use t2v for best results"}
		}
	}
	for _, kw := range []string{"transform", "restyle", "based on this image", "img2img"} {
		if strings.Contains(p, kw) {
			return GoalSuggestion{Goal: intake.GoalI2I, Confidence: 0.8, Recommendation: "Use i2i to rework an existing image"}
		}
	}
	return GoalSuggestion{Goal: intake.GoalT2I, Confidence: 0.7, Recommendation: "Default to t2i"}
}
