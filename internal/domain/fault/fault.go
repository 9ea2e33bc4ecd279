// Package fault defines the structured failure taxonomy of the intake and
// optimization pipeline. Every expected failure is returned as a *Fault;
// the core never panics for caller mistakes.
package fault

import (
	"fmt"
	"strings"
)

type Kind string

const (
	// KindIntakeIncomplete means required session fields are missing.
	KindIntakeIncomplete Kind = "intake_incomplete"
	// KindInvalidGoal means the goal token is outside the enumerated set,
	// or conflicts with an already locked goal.
	KindInvalidGoal Kind = "invalid_goal"
	// KindComplianceBlock means unconditionally disallowed content matched.
	// Never auto-bypassed; recoverable only via edited input.
	KindComplianceBlock Kind = "compliance_block"
	// KindEmptyComposition means no usable fragments survived scrubbing
	// and extraction.
	KindEmptyComposition Kind = "empty_composition"
	// KindUnknownParameter means an override key is not in the goal schema.
	KindUnknownParameter Kind = "unknown_parameter"
	// KindRestrictedResource means a policy-restricted asset was referenced.
	KindRestrictedResource Kind = "restricted_resource"
)

// Fault is a structured pipeline failure: a kind, a human-readable detail,
// and whatever partial output is useful to the caller.
type Fault struct {
	Kind   Kind   `json:"kind"`
	Detail string `json:"detail"`

	// Category names the matched policy category for compliance blocks.
	Category string `json:"category,omitempty"`
	// CleanedText carries the auto-cleaned rewrite when the scrubber could
	// rewrite the input even though the run did not proceed.
	CleanedText string `json:"cleaned_text,omitempty"`
	// MissingFields is the exact missing set for intake failures.
	MissingFields []string `json:"missing_fields,omitempty"`
	// Parameter names the offending override key.
	Parameter string `json:"parameter,omitempty"`
	// Resources names the offending assets for resource failures.
	Resources []string `json:"resources,omitempty"`
}

func (f *Fault) Error() string {
	if f == nil {
		return ""
	}
	if f.Detail != "" {
		return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
	}
	return string(f.Kind)
}

func New(kind Kind, detail string) *Fault {
	return &Fault{Kind: kind, Detail: detail}
}

func IntakeIncomplete(missing []string) *Fault {
	return &Fault{
		Kind:          KindIntakeIncomplete,
		Detail:        fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
		MissingFields: missing,
	}
}

func InvalidGoal(detail string) *Fault {
	return &Fault{Kind: KindInvalidGoal, Detail: detail}
}

func ComplianceBlock(category, detail, cleaned string) *Fault {
	return &Fault{Kind: KindComplianceBlock, Detail: detail, Category: category, CleanedText: cleaned}
}

func EmptyComposition(detail string) *Fault {
	return &Fault{Kind: KindEmptyComposition, Detail: detail}
}

func UnknownParameter(key string) *Fault {
	return &Fault{
		Kind:      KindUnknownParameter,
		Detail:    fmt.Sprintf("override key %q is not in the goal schema", key),
		Parameter: key,
	}
}

func RestrictedResource(names []string) *Fault {
	return &Fault{
		Kind:      KindRestrictedResource,
		Detail:    fmt.Sprintf("policy-restricted resources referenced: %s", strings.Join(names, ", ")),
		Resources: names,
	}
}

// IsKind reports whether err is a *Fault of the given kind.
func IsKind(err error, kind Kind) bool {
	f, ok := err.(*Fault)
	return ok && f.Kind == kind
}
