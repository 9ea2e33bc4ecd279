package domain

import (
	"github.com/forgelabs/forge-backend/internal/domain/fault"
	"github.com/forgelabs/forge-backend/internal/domain/forgepkg"
	"github.com/forgelabs/forge-backend/internal/domain/intake"
	"github.com/forgelabs/forge-backend/internal/domain/prompt"
	"github.com/forgelabs/forge-backend/internal/domain/resource"
)

type Goal = intake.Goal
type Session = intake.Session
type IntakeState = intake.State

const (
	GoalT2I = intake.GoalT2I
	GoalI2I = intake.GoalI2I
	GoalT2V = intake.GoalT2V
	GoalI2V = intake.GoalI2V

	FieldPromptString = intake.FieldPromptString
	FieldGraphJSON    = intake.FieldGraphJSON
)

// Goals and NodeVocabulary re-export the fixed enumerations for callers
// that only need the facade.
var (
	Goals          = intake.Goals
	NodeVocabulary = forgepkg.NodeVocabulary
)

type Fragment = prompt.Fragment
type FragmentTag = prompt.Tag
type Weights = prompt.Weights
type StyleScores = prompt.StyleScores

type ResourceRef = resource.Ref
type ResourceStatus = resource.Status

const (
	ResourceVerified   = resource.StatusVerified
	ResourceStale      = resource.StatusStale
	ResourceRestricted = resource.StatusRestricted
)

type GenerationConfig = forgepkg.GenerationConfig
type PatchOp = forgepkg.PatchOp
type FinalizedPackage = forgepkg.FinalizedPackage
type Safety = forgepkg.Safety

type Fault = fault.Fault
type FaultKind = fault.Kind
