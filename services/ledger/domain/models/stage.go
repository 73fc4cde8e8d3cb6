package models

import "fmt"

// Stage is one position in the fixed linear custody sequence.
// Stages are totally ordered and only ever advance one step at a time.
type Stage int

const (
	StageRegistered Stage = iota
	StageInTransit
	StageAvailableForSale
	StageDelivered
)

var stageNames = map[Stage]string{
	StageRegistered:       "Registered",
	StageInTransit:        "InTransit",
	StageAvailableForSale: "AvailableForSale",
	StageDelivered:        "Delivered",
}

// String returns the stable presentation tag for the stage.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Valid reports whether s is one of the defined stages.
func (s Stage) Valid() bool {
	_, ok := stageNames[s]
	return ok
}

// Next returns the stage one step forward in the sequence.
// ok is false for the terminal StageDelivered.
func (s Stage) Next() (Stage, bool) {
	if !s.Valid() || s == StageDelivered {
		return s, false
	}
	return s + 1, true
}

// Action returns the ActionKind recorded for the transition INTO this stage.
func (s Stage) Action() ActionKind {
	switch s {
	case StageInTransit:
		return ActionAdvancedToTransit
	case StageAvailableForSale:
		return ActionAdvancedToSale
	case StageDelivered:
		return ActionDelivered
	default:
		return ActionRegistered
	}
}

// ParseStage converts a presentation tag back to a Stage.
func ParseStage(s string) (Stage, error) {
	for stage, name := range stageNames {
		if name == s {
			return stage, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", s)
}

// ActionKind is the closed set of audit-trail action tags. The string values
// are stable, order-preserving identifiers exposed verbatim to external UIs;
// renaming one is a breaking change for every consumer.
type ActionKind string

const (
	ActionRegistered        ActionKind = "Registered"
	ActionAdvancedToTransit ActionKind = "AdvancedToTransit"
	ActionAdvancedToSale    ActionKind = "AdvancedToSale"
	ActionDelivered         ActionKind = "Delivered"
)

// Valid reports whether a is one of the defined action kinds.
func (a ActionKind) Valid() bool {
	switch a {
	case ActionRegistered, ActionAdvancedToTransit, ActionAdvancedToSale, ActionDelivered:
		return true
	}
	return false
}
