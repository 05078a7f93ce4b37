package status

import (
	"math"

	"github.com/fourwinds/battlecore/core"
)

// ElementalShield reduces incoming damage of a matching physical/elemental
// profile, may convert part of the absorbed damage into healing, and may
// retaliate by applying a status to the attacker. At most one
// elemental_shield-tagged status may be active per owner at a time
// (spec.md §3, invariant 6; enforced by Manager.Add).
//
// Grounded on engine/battle/status/effects.py's IceShieldStatus (Chill
// Ward), generalized from ice-specific fields to any single matching
// Element so the same type serves Ember Guard, Chill Ward, and future
// elemental shields without duplicating the hook logic.
type ElementalShield struct {
	Base
	PhysReduction    float64
	ElementReduction float64 // reduction applied to Element-matching damage
	HealRatio        float64 // fraction of matching-element damage absorbed as healing
	RetaliationKind  string
	RetaliationChance float64
	// MakeRetaliation builds the status to apply to the attacker, given the
	// owner and attacker ids. Nil means no retaliation status is applied.
	MakeRetaliation func(owner, attacker core.CombatantID) Effect
}

// NewElementalShield constructs an ElementalShield tagged "elemental_shield"
// so Manager.Add enforces exclusivity against any other active shield.
func NewElementalShield(id core.StatusID, name string, duration int, element core.Element, physReduction, elementReduction, healRatio float64, retaliationKind string, retaliationChance float64, makeRetaliation func(owner, attacker core.CombatantID) Effect) *ElementalShield {
	return &ElementalShield{
		Base:              NewBase(id, name, duration, true, false, 0, FXBuff, element, "elemental_shield", "buff"),
		PhysReduction:     physReduction,
		ElementReduction:  elementReduction,
		HealRatio:         healRatio,
		RetaliationKind:   retaliationKind,
		RetaliationChance: retaliationChance,
		MakeRetaliation:   makeRetaliation,
	}
}

// OnBeforeOwnerTakesDamage reduces physical damage by PhysReduction and
// matching-element damage by ElementReduction, converts a HealRatio share
// of matching-element damage into bonus healing, and — when an attacker is
// known in ctx and a roll against RetaliationChance succeeds — emits an
// ApplyStatusEvent targeting the attacker (spec.md §4.7, scenario 4).
func (s *ElementalShield) OnBeforeOwnerTakesDamage(owner core.CombatantID, amount int, element core.Element, damageType core.DamageType, ctx *Context) (int, int, []Event) {
	if amount <= 0 {
		return amount, 0, nil
	}

	raw := amount
	switch {
	case element == s.Element():
		amount = int(math.Round(float64(raw) * (1.0 - s.ElementReduction)))
	case damageType == core.DamagePhysical:
		amount = int(math.Round(float64(raw) * (1.0 - s.PhysReduction)))
	}

	bonusHeal := 0
	if element == s.Element() && s.HealRatio > 0 && raw > 0 {
		bonusHeal = int(math.Max(1, math.Round(float64(raw)*s.HealRatio)))
	}

	var events []Event
	triggered := s.RetaliationChance > 0
	if triggered && s.RetaliationChance < 1.0 && ctx != nil && ctx.Roll != nil {
		triggered = ctx.Roll() <= s.RetaliationChance
	}
	if ctx != nil && ctx.Attacker != nil && s.MakeRetaliation != nil && triggered {
		events = append(events, ApplyStatusEvent{
			Target:          *ctx.Attacker,
			Status:          s.MakeRetaliation(owner, *ctx.Attacker),
			SourceCombatant: &owner,
			Reason:          s.RetaliationKind + "_retaliation",
		})
	}

	return amount, bonusHeal, events
}
