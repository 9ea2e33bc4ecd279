package services

import (
	"testing"

	"github.com/forgelabs/forge-backend/internal/domain/fault"
	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
)

func TestSetGoalValidTokens(t *testing.T) {
	svc := NewIntakeService(logger.NewNop())

	for _, goal := range []string{"t2i", "i2i", "t2v", "i2v", " T2I "} {
		t.Run(goal, func(t *testing.T) {
			sess := intake.NewSession()
			if f := svc.SetGoal(sess, goal); f != nil {
				t.Fatalf("unexpected fault: %v", f)
			}
			if !sess.GoalLocked {
				t.Fatal("goal must lock on first set")
			}
			if sess.State() != intake.StateGoalLocked {
				t.Fatalf("expected goal_locked, got %s", sess.State())
			}
		})
	}
}

func TestSetGoalRejectsUnknownToken(t *testing.T) {
	svc := NewIntakeService(logger.NewNop())
	sess := intake.NewSession()

	f := svc.SetGoal(sess, "t2x")
	if f == nil || f.Kind != fault.KindInvalidGoal {
		t.Fatalf("expected invalid_goal, got %v", f)
	}
	if sess.GoalLocked {
		t.Fatal("invalid goal must not lock the session")
	}
}

func TestSetGoalLockSemantics(t *testing.T) {
	svc := NewIntakeService(logger.NewNop())
	sess := intake.NewSession()

	if f := svc.SetGoal(sess, "t2i"); f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	// Same goal while locked is a no-op.
	if f := svc.SetGoal(sess, "t2i"); f != nil {
		t.Fatalf("re-setting the locked goal must be a no-op, got %v", f)
	}
	// Different goal while locked fails.
	if f := svc.SetGoal(sess, "t2v"); f == nil || f.Kind != fault.KindInvalidGoal {
		t.Fatalf("expected invalid_goal for locked change, got %v", f)
	}
	// Unlocking the goal permits the change.
	if f := svc.Unlock(sess, "goal"); f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if f := svc.SetGoal(sess, "t2v"); f != nil {
		t.Fatalf("goal change after unlock must succeed, got %v", f)
	}
	if sess.Goal != intake.GoalT2V {
		t.Fatalf("expected t2v, got %s", sess.Goal)
	}
}

func TestReadinessPromptGoals(t *testing.T) {
	svc := NewIntakeService(logger.NewNop())
	sess := intake.NewSession()

	svc.SetGoal(sess, "t2i")
	svc.SetField(sess, intake.FieldPromptString, "   ")
	if sess.State() != intake.StateAwaitingRequiredFields {
		t.Fatalf("blank prompt must not satisfy, got %s", sess.State())
	}

	svc.SetField(sess, intake.FieldPromptString, "a fox in the snow")
	if sess.State() != intake.StateReady {
		t.Fatalf("expected ready, got %s", sess.State())
	}
}

func TestReadinessGraphGoals(t *testing.T) {
	svc := NewIntakeService(logger.NewNop())
	sess := intake.NewSession()

	svc.SetGoal(sess, "i2i")
	svc.SetField(sess, intake.FieldPromptString, "repaint as watercolor")
	if sess.State() != intake.StateAwaitingRequiredFields {
		t.Fatalf("graph goal needs graph_json, got %s", sess.State())
	}

	svc.SetField(sess, intake.FieldGraphJSON, "not json at all")
	if sess.State() != intake.StateAwaitingRequiredFields {
		t.Fatalf("malformed graph must not satisfy, got %s", sess.State())
	}

	svc.SetField(sess, intake.FieldGraphJSON, `{"nodes": {"1": {"class_type": "KSampler"}}}`)
	if sess.State() != intake.StateReady {
		t.Fatalf("expected ready, got %s", sess.State())
	}
}

func TestUnlockClearsFieldsAndGoal(t *testing.T) {
	svc := NewIntakeService(logger.NewNop())
	sess := intake.NewSession()

	svc.SetGoal(sess, "t2i")
	svc.SetField(sess, intake.FieldPromptString, "a fox")

	if f := svc.Unlock(sess, intake.FieldPromptString); f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if sess.State() != intake.StateAwaitingRequiredFields {
		t.Fatalf("expected awaiting_required_fields, got %s", sess.State())
	}

	svc.SetField(sess, intake.FieldPromptString, "a fox")
	if f := svc.Unlock(sess, "all"); f != nil {
		t.Fatalf("unexpected fault: %v", f)
	}
	if sess.State() != intake.StateAwaitingGoal {
		t.Fatalf("unlock all must reset to awaiting_goal, got %s", sess.State())
	}
	if len(sess.Fields) != 0 {
		t.Fatalf("unlock all must clear fields, got %v", sess.Fields)
	}
}

func TestGateReportsExactMissingSet(t *testing.T) {
	svc := NewIntakeService(logger.NewNop())
	sess := intake.NewSession()

	f := svc.Gate(sess)
	if f == nil || f.Kind != fault.KindIntakeIncomplete {
		t.Fatalf("expected intake_incomplete, got %v", f)
	}
	if len(f.MissingFields) != 1 || f.MissingFields[0] != "goal" {
		t.Fatalf("expected missing goal, got %v", f.MissingFields)
	}

	svc.SetGoal(sess, "i2v")
	f = svc.Gate(sess)
	if f == nil {
		t.Fatal("expected intake_incomplete")
	}
	want := map[string]bool{intake.FieldPromptString: true, intake.FieldGraphJSON: true}
	if len(f.MissingFields) != 2 || !want[f.MissingFields[0]] || !want[f.MissingFields[1]] {
		t.Fatalf("expected both required fields, got %v", f.MissingFields)
	}

	svc.SetField(sess, intake.FieldPromptString, "a drifting boat")
	svc.SetField(sess, intake.FieldGraphJSON, `{}`)
	if f := svc.Gate(sess); f != nil {
		t.Fatalf("ready session must pass the gate, got %v", f)
	}
}

func TestSetFieldRejectsGoalAlias(t *testing.T) {
	svc := NewIntakeService(logger.NewNop())
	sess := intake.NewSession()

	if f := svc.SetField(sess, "goal", "t2i"); f == nil || f.Kind != fault.KindInvalidGoal {
		t.Fatalf("goal must not be settable as a field, got %v", f)
	}
}

func TestSuggestGoal(t *testing.T) {
	cases := []struct {
		prompt string
		want   intake.Goal
	}{
		{"a drone video over mountains", intake.GoalT2V},
		{"smooth camera motion through a forest", intake.GoalT2V},
		{"transform this into a watercolor", intake.GoalI2I},
		{"a fox in the snow", intake.GoalT2I},
	}
	for _, tc := range cases {
		t.Run(tc.prompt, func(t *testing.T) {
			got := SuggestGoal(tc.prompt)
			if got.Goal != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got.Goal)
			}
			if got.Confidence <= 0 || got.Confidence > 1 {
				t.Fatalf("confidence out of range: %f", got.Confidence)
			}
		})
	}
}
