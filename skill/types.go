// Package skill implements SkillDefinition, SkillEffect, and the skill
// resolution procedure of spec.md §4.4: computing a SkillResolutionResult
// from a user, a target list, and an ordered list of declarative effects,
// using the shared damage model as the single source of truth for every
// damage-dealing effect.
//
// Grounded on engine/battle/skills/effects.py (DamageEffect, ChanceStatusEffect,
// and their shared _get_or_create_target_change helper) and
// engine/battle/damage.py (the effective-stat/raw/variance/clamp pipeline),
// reimplemented as a closed set of Go SkillEffect implementations rather
// than Python dataclasses dispatched by isinstance checks.
package skill

import (
	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/status"
)

// Meta is a skill's declarative, immutable metadata (spec.md §3).
type Meta struct {
	ID         core.SkillID
	User       string // skill_user_key: which combatant (by name/id) owns this skill
	Category   string // e.g. "damage", "heal", "support"
	Element    core.Element
	TargetType TargetType
	MPCost     int
	MenuGroup  string
	Tags       map[string]bool
	FXTag      string
}

// TargetType describes what a command's targets list means for a skill.
type TargetType string

// Target type values. TargetType is descriptive metadata: Resolve does not
// read it, and every effect uses the command's targets list (or [user] for
// a self-apply effect) whatever the skill's TargetType.
const (
	TargetSelf        TargetType = "self"
	TargetSingleAlly  TargetType = "single_ally"
	TargetSingleEnemy TargetType = "single_enemy"
	TargetAllEnemies  TargetType = "all_enemies"
	TargetAllAllies   TargetType = "all_allies"
)

// Definition is a registered skill: its metadata plus an ordered list of
// effects applied in declaration order during resolution.
type Definition struct {
	Meta    Meta
	Effects []Effect
}

// CombatantView is the read surface skill effects need from a
// combatant without importing package combatant (which would create an
// import cycle, since combatant constructs status.Manager instances that
// skill effects must also read). Package combatant's *Combatant satisfies
// this interface structurally.
type CombatantView interface {
	core.Entity
	StableID() core.CombatantID
	Alive() bool
	HPValue() int
	MaxHPValue() int
	MPValue() int
	EffectiveStats() (atk, def, mag, mres, spd float64)
	Manager() *status.Manager
}

// Env bundles the ambient lookups a SkillEffect needs during Apply: the
// participants it may target, and the injectable randomness source (spec.md
// §3, invariant 8: "all randomness flows through an injectable source").
type Env struct {
	Combatants map[core.CombatantID]CombatantView
	Roll       func() float64
}

// Get looks up a combatant by id.
func (e Env) Get(id core.CombatantID) (CombatantView, bool) {
	v, ok := e.Combatants[id]
	return v, ok
}

// TargetChange accumulates one target's deltas across every effect in a
// single skill resolution (spec.md §3; get-or-create semantics per §4.4
// step 2, so e.g. Wind Strike's physical and magical components sum into
// the same target's damage field).
type TargetChange struct {
	Target        core.CombatantID
	Damage        int
	Healed        int
	MPDelta       int
	StatusApplied []status.Effect
	StatusRemoved []core.StatusID
	WasRevived    bool
	Flags         map[string]bool
}

// Result is the mutable accumulator threaded through a skill's effects
// during resolution, and the finished product handed to the resolver
// (spec.md §3's SkillResolutionResult).
type Result struct {
	Skill   Meta
	changes []*TargetChange
	index   map[core.CombatantID]*TargetChange
	// Events carries StatusEvents emitted mid-resolution (retaliations from
	// the incoming-damage pipeline), alongside the TargetChange deltas.
	Events  []status.Event
	Message string
}

// NewResult starts an empty resolution result for the given skill meta.
func NewResult(meta Meta) *Result {
	return &Result{Skill: meta, index: make(map[core.CombatantID]*TargetChange)}
}

// Change returns the TargetChange for target, creating it on first access
// (get-or-create semantics, spec.md §4.4 step 2).
func (r *Result) Change(target core.CombatantID) *TargetChange {
	if tc, ok := r.index[target]; ok {
		return tc
	}
	tc := &TargetChange{Target: target, Flags: make(map[string]bool)}
	r.index[target] = tc
	r.changes = append(r.changes, tc)
	return tc
}

// Changes returns every TargetChange built so far, in first-touched order.
func (r *Result) Changes() []*TargetChange { return r.changes }

// Effect is one declarative component of a skill (spec.md §3: damage / heal
// / mp-change / apply-status / chance-apply-status / remove-status /
// revive). SelfApply reports whether the effect targets the user instead of
// the command's given targets (spec.md §4.4 step 1: "or [user] if the
// effect declares self-apply").
type Effect interface {
	SelfApply() bool
	Apply(user core.CombatantID, targets []core.CombatantID, env Env, result *Result)
}

// resolveTargets returns the effect's actual target list: [user] for
// self-apply effects, or the command's targets otherwise.
func resolveTargets(selfApply bool, user core.CombatantID, targets []core.CombatantID) []core.CombatantID {
	if selfApply {
		return []core.CombatantID{user}
	}
	return targets
}
