package status

import "github.com/fourwinds/battlecore/core"

// Event is the closed sum type of status-originated side effects
// (spec.md §4.8, §9: "Replace the Any-typed retaliation dicts ... with a
// closed sum type"). Statuses never mutate HP/MP directly; they emit Events,
// which a resolver later folds into exactly one ActionResult.
type Event interface {
	isStatusEvent()
}

// DamageTickEvent represents one end-of-turn DoT or HoT tick. Amount > 0
// heals, Amount < 0 damages.
type DamageTickEvent struct {
	Target          core.CombatantID
	Amount          int
	Kind            string // e.g. "burn", "regen" — disambiguates for FX/filtering
	DamageType      core.DamageType
	Element         core.Element
	SourceStatusID  core.StatusID
	SourceCombatant *core.CombatantID
}

func (DamageTickEvent) isStatusEvent() {}

// ApplyStatusEvent requests that Status be attached to Target.
type ApplyStatusEvent struct {
	Target          core.CombatantID
	Status          Effect
	SourceCombatant *core.CombatantID
	Reason          string
}

func (ApplyStatusEvent) isStatusEvent() {}

// RemoveStatusEvent requests that every instance of StatusID on Target be
// removed.
type RemoveStatusEvent struct {
	Target   core.CombatantID
	StatusID core.StatusID
	Reason   string
}

func (RemoveStatusEvent) isStatusEvent() {}

// RetaliationEvent represents a reflex triggered by the owner taking
// damage: damage dealt back to the attacker, and/or a status to apply to
// them.
type RetaliationEvent struct {
	Attacker       core.CombatantID
	Amount         int
	Kind           string
	DamageType     core.DamageType
	Element        core.Element
	SourceStatusID core.StatusID
	Owner          *core.CombatantID
	StatusToApply  Effect
}

func (RetaliationEvent) isStatusEvent() {}
