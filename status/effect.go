// Package status implements the status-effect stack (spec.md §4.7, §4.8):
// stat modifiers, damage-over-time, shields, retaliations, and buff/debuff
// lifecycles, each running through strictly ordered hooks.
//
// Grounded on github.com/KirkDiggler/rpg-toolkit/mechanics/conditions
// (Condition/Manager: the apply/remove/lifecycle shape) and
// mechanics/effects (tracker.go's ordered hook running), adapted to the
// concrete hook set the Python original's StatusEffect base class defines
// (engine/battle/status/effects.py) rather than the toolkit's more generic,
// JSON-persisted Condition interface — battle-local statuses never need to
// survive a save/load boundary (spec.md §1: the save ledger is out of
// scope), so ToJSON/IsDirty/MarkClean are dropped.
package status

import (
	"github.com/google/uuid"

	"github.com/fourwinds/battlecore/core"
)

// FXKind classifies a status for router payloads and UI icons, mirroring
// the original's get_status_fx_meta helper.
type FXKind string

// FX kinds a status can report.
const (
	FXBuff   FXKind = "buff"
	FXDebuff FXKind = "debuff"
	FXDoT    FXKind = "dot"
	FXHoT    FXKind = "hot"
)

// StatModifiers is the aggregated multiplier/additive view the damage model
// reads to compute effective stats (spec.md §4.4, §4.7). Multipliers start
// at 1.0, additives at 0.0.
type StatModifiers struct {
	AtkMult, DefMult, MagMult, MresMult, SpdMult float64
	AtkAdd, DefAdd, MagAdd, MresAdd, SpdAdd       float64
}

// NeutralStatModifiers returns the identity aggregate: no status changes any
// stat.
func NeutralStatModifiers() StatModifiers {
	return StatModifiers{AtkMult: 1, DefMult: 1, MagMult: 1, MresMult: 1, SpdMult: 1}
}

// apply applies a modifier pair to a base stat value.
func (m StatModifiers) apply(base, mult, add float64) float64 {
	return base*mult + add
}

// Effective returns the five effective stats for base values in declaration
// order {atk, def, mag, mres, spd}.
func (m StatModifiers) Effective(atk, def, mag, mres, spd float64) (eAtk, eDef, eMag, eMres, eSpd float64) {
	return m.apply(atk, m.AtkMult, m.AtkAdd),
		m.apply(def, m.DefMult, m.DefAdd),
		m.apply(mag, m.MagMult, m.MagAdd),
		m.apply(mres, m.MresMult, m.MresAdd),
		m.apply(spd, m.SpdMult, m.SpdAdd)
}

// Context carries the ambient information status hooks need beyond their
// own owner and stored fields: who is inflicting damage right now (for
// retaliations), who originally applied the status (for attribution), and
// where to send debug output.
type Context struct {
	// Attacker is set only while an incoming-damage pipeline is running; nil
	// otherwise (e.g. during on_turn_end).
	Attacker *core.CombatantID
	// Source is who applied this status in the first place, if known.
	Source *core.CombatantID
	// Roll returns the next uniform value in [0,1), for hooks (like
	// ElementalShield's retaliation chance) that need to roll against a
	// probability. Nil is treated as "always succeeds" by callers that
	// check it, matching a 1.0 default chance.
	Roll func() float64
}

// Effect is a single active status instance on one combatant. Concrete
// status kinds embed Base and override only the hooks they need; Base
// supplies no-op defaults for the rest, matching the Python original's
// StatusEffect base class where every hook has a pass-through body.
type Effect interface {
	// InstanceID distinguishes two stacks of the same StatusID from each
	// other in a manager's slice.
	InstanceID() string
	ID() core.StatusID
	Name() string
	Tags() map[string]bool
	Dispellable() bool
	Stackable() bool
	// MaxStacks returns 0 for "no cap", or N>0 to cap concurrent instances
	// of this StatusID at N (spec.md §3, invariant 5).
	MaxStacks() int
	Kind() FXKind
	Element() core.Element

	DurationTurns() int
	SetDurationTurns(int)
	SkipNextDecrement() bool
	SetSkipNextDecrement(bool)

	// OnApply fires once when the status is first attached.
	OnApply(owner core.CombatantID, ctx *Context)
	// OnExpire fires once when the status is removed, by expiry, dispel, or
	// eviction (stacking cap, non-stackable replacement, elemental-shield
	// exclusivity).
	OnExpire(owner core.CombatantID, ctx *Context)
	// OnTurnStart fires once per owner turn, before they act.
	OnTurnStart(owner core.CombatantID, ctx *Context)
	// OnTurnEnd fires once per owner turn, after they act, and may return
	// StatusEvents (DoT/HoT ticks) for the caller to translate into an
	// ActionResult.
	OnTurnEnd(owner core.CombatantID, ctx *Context) []Event
	// OnBeforeOwnerTakesDamage runs in the owner-side incoming-damage
	// pipeline (spec.md §4.4). It may reduce/modify amount, grant bonus
	// healing, and emit retaliation events.
	OnBeforeOwnerTakesDamage(owner core.CombatantID, amount int, element core.Element, damageType core.DamageType, ctx *Context) (newAmount int, bonusHeal int, events []Event)
	// ModifyStatModifiers adjusts the running StatModifiers aggregate
	// in-place (spec.md §4.7).
	ModifyStatModifiers(mods *StatModifiers)
}

// Base implements Effect's bookkeeping fields and no-op hook defaults.
// Concrete statuses embed Base by value and override the hooks relevant to
// their behavior.
type Base struct {
	instanceID  string
	id          core.StatusID
	name        string
	duration    int
	dispellable bool
	stackable   bool
	maxStacks   int
	tags        map[string]bool
	kind        FXKind
	element     core.Element
	skipDecr    bool
}

// NewBase constructs a Base with a freshly minted instance id. tags may be
// nil (treated as empty).
func NewBase(id core.StatusID, name string, duration int, dispellable, stackable bool, maxStacks int, kind FXKind, element core.Element, tags ...string) Base {
	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[t] = true
	}
	return Base{
		instanceID:  uuid.NewString(),
		id:          id,
		name:        name,
		duration:    duration,
		dispellable: dispellable,
		stackable:   stackable,
		maxStacks:   maxStacks,
		tags:        tagSet,
		kind:        kind,
		element:     element,
	}
}

func (b *Base) InstanceID() string        { return b.instanceID }
func (b *Base) ID() core.StatusID         { return b.id }
func (b *Base) Name() string              { return b.name }
func (b *Base) Tags() map[string]bool     { return b.tags }
func (b *Base) Dispellable() bool         { return b.dispellable }
func (b *Base) Stackable() bool           { return b.stackable }
func (b *Base) MaxStacks() int            { return b.maxStacks }
func (b *Base) Kind() FXKind              { return b.kind }
func (b *Base) Element() core.Element     { return b.element }
func (b *Base) DurationTurns() int        { return b.duration }
func (b *Base) SetDurationTurns(d int)    { b.duration = d }
func (b *Base) SkipNextDecrement() bool   { return b.skipDecr }
func (b *Base) SetSkipNextDecrement(v bool) { b.skipDecr = v }

// OnApply is a no-op default.
func (b *Base) OnApply(core.CombatantID, *Context) {}

// OnExpire is a no-op default.
func (b *Base) OnExpire(core.CombatantID, *Context) {}

// OnTurnStart is a no-op default.
func (b *Base) OnTurnStart(core.CombatantID, *Context) {}

// OnTurnEnd is a no-op default returning no events.
func (b *Base) OnTurnEnd(core.CombatantID, *Context) []Event { return nil }

// OnBeforeOwnerTakesDamage passes damage through unmodified by default.
func (b *Base) OnBeforeOwnerTakesDamage(_ core.CombatantID, amount int, _ core.Element, _ core.DamageType, _ *Context) (int, int, []Event) {
	return amount, 0, nil
}

// ModifyStatModifiers is a no-op default.
func (b *Base) ModifyStatModifiers(*StatModifiers) {}
