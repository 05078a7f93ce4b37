package skill

import (
	"math"

	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/status"
)

// DamageEffect deals damage to every living target using the shared damage
// model. Multiple DamageEffects on the same skill (e.g. Wind Strike's
// physical + magical components) accumulate additively into the same
// target's TargetChange.Damage via get-or-create semantics.
//
// Grounded on engine/battle/skills/effects.py's DamageEffect.
type DamageEffect struct {
	Self          bool
	Element       core.Element
	DamageType    core.DamageType
	Scaling       ScalingKind
	Coeff         float64
	Flat          float64
	MagRatio      float64
	HasMagRatio   bool
	VariancePct   float64 // 0 means DefaultVariancePct
}

func (e DamageEffect) SelfApply() bool { return e.Self }

// Apply computes base damage from the user's effective stats, runs it
// through the shared damage model, then folds it through the defender's
// incoming-damage pipeline before accumulating into the target's
// TargetChange (spec.md §4.4).
func (e DamageEffect) Apply(user core.CombatantID, targets []core.CombatantID, env Env, result *Result) {
	actor, ok := env.Get(user)
	if !ok {
		return
	}
	atk, _, mag, _, _ := actor.EffectiveStats()

	variance := e.VariancePct
	if variance == 0 {
		variance = DefaultVariancePct
	}

	for _, id := range resolveTargets(e.Self, user, targets) {
		target, ok := env.Get(id)
		if !ok || !target.Alive() {
			continue
		}
		_, def, _, mres, _ := target.EffectiveStats()
		base := computeBaseDamage(e.Scaling, e.Coeff, e.Flat, e.MagRatio, e.HasMagRatio, atk, mag)
		_, defensive := effectiveAxis(e.DamageType, atk, def, mag, mres)
		raw := computeDamage(base, defensive, variance, env.Roll)

		var attackerID *core.CombatantID
		uid := user
		attackerID = &uid
		final, bonusHeal, retaliation := target.Manager().ApplyIncomingDamageModifiers(raw, e.Element, e.DamageType, &status.Context{Attacker: attackerID, Roll: env.Roll})

		tc := result.Change(id)
		tc.Damage += final
		tc.Healed += bonusHeal
		result.Events = append(result.Events, retaliation...)
	}
}

// HealEffect restores HP to every living target, scaled like a damage
// effect but without the defensive pipeline (spec.md §3: heal variant).
// It never resurrects a KO'd target (spec.md §8: "Healing a KO'd target by
// a non-revive effect does not resurrect"); use ReviveEffect for that.
type HealEffect struct {
	Self     bool
	Scaling  ScalingKind
	Coeff    float64
	Flat     float64
}

func (e HealEffect) SelfApply() bool { return e.Self }

func (e HealEffect) Apply(user core.CombatantID, targets []core.CombatantID, env Env, result *Result) {
	actor, ok := env.Get(user)
	if !ok {
		return
	}
	atk, _, mag, _, _ := actor.EffectiveStats()

	for _, id := range resolveTargets(e.Self, user, targets) {
		target, ok := env.Get(id)
		if !ok || !target.Alive() {
			continue
		}
		base := computeBaseDamage(e.Scaling, e.Coeff, e.Flat, 0, false, atk, mag)
		result.Change(id).Healed += int(base)
	}
}

// MPChangeEffect adjusts a target's mp (positive restores, negative costs).
type MPChangeEffect struct {
	Self   bool
	Amount int
}

func (e MPChangeEffect) SelfApply() bool { return e.Self }

func (e MPChangeEffect) Apply(user core.CombatantID, targets []core.CombatantID, env Env, result *Result) {
	for _, id := range resolveTargets(e.Self, user, targets) {
		target, ok := env.Get(id)
		if !ok || !target.Alive() {
			continue
		}
		result.Change(id).MPDelta += e.Amount
	}
}

// ApplyStatusEffect unconditionally applies a freshly constructed status to
// every living target. If the status is tagged "dot", the landing-chance
// roll (spec.md §4.4, "DoT landing") gates whether it is actually added.
type ApplyStatusEffect struct {
	Self      bool
	MakeStatus func(user CombatantView, target CombatantView) status.Effect
	// DotDamageType picks which pair of effective stats feed the
	// landing-chance curve (spec.md §4.4). When empty, a *status.DamageOverTime
	// status's own DamageType is used.
	DotDamageType core.DamageType
}

func (e ApplyStatusEffect) SelfApply() bool { return e.Self }

func (e ApplyStatusEffect) Apply(user core.CombatantID, targets []core.CombatantID, env Env, result *Result) {
	actor, ok := env.Get(user)
	if !ok {
		return
	}
	for _, id := range resolveTargets(e.Self, user, targets) {
		target, ok := env.Get(id)
		if !ok || !target.Alive() {
			continue
		}
		attemptApplyStatus(actor, target, e.MakeStatus(actor, target), e.DotDamageType, env, result)
	}
}

// ChanceApplyStatusEffect rolls a chance-to-apply status, either
// unconditionally (pre-hit) or gated on the same target already having
// taken damage > 0 in this resolution (post-hit, e.g. Burn on Ember Bolt;
// spec.md §4.4, "Post-hit chance effects").
type ChanceApplyStatusEffect struct {
	Self           bool
	Chance         float64
	RequireDamage  bool
	MakeStatus     func(user CombatantView, target CombatantView) status.Effect
	DotDamageType  core.DamageType
}

func (e ChanceApplyStatusEffect) SelfApply() bool { return e.Self }

func (e ChanceApplyStatusEffect) Apply(user core.CombatantID, targets []core.CombatantID, env Env, result *Result) {
	actor, ok := env.Get(user)
	if !ok {
		return
	}
	for _, id := range resolveTargets(e.Self, user, targets) {
		target, ok := env.Get(id)
		if !ok || !target.Alive() {
			continue
		}
		if e.RequireDamage && result.Change(id).Damage <= 0 {
			continue
		}
		if env.Roll != nil && env.Roll() >= e.Chance {
			continue
		}
		attemptApplyStatus(actor, target, e.MakeStatus(actor, target), e.DotDamageType, env, result)
	}
}

// attemptApplyStatus is the shared landing-chance gate used by both
// ApplyStatusEffect and ChanceApplyStatusEffect: a status tagged "dot" must
// separately win a stat-vs-stat roll before it's staged into the
// TargetChange (spec.md §4.4, "DoT landing"). An empty dotDamageType falls
// back to the DoT status's own DamageType.
func attemptApplyStatus(attacker, target CombatantView, st status.Effect, dotDamageType core.DamageType, env Env, result *Result) {
	if st.Tags()["dot"] {
		if dot, ok := st.(*status.DamageOverTime); ok && dotDamageType == "" {
			dotDamageType = dot.DamageType
		}
		attAtk, _, attMag, _, _ := attacker.EffectiveStats()
		_, defDef, _, defMres, _ := target.EffectiveStats()
		att, def := attAtk, defDef
		if dotDamageType == core.DamageMagic {
			att, def = attMag, defMres
		}
		p := DotLandChance(att, def)
		if env.Roll != nil && env.Roll() >= p {
			result.Message = st.Name() + " failed to land on " + target.GetID()
			return
		}
	}
	tc := result.Change(target.StableID())
	tc.StatusApplied = append(tc.StatusApplied, st)
}

// RemoveStatusEffect stages removal of a status by explicit id, or every
// active status carrying Tag, from every living target.
type RemoveStatusEffect struct {
	Self   bool
	ID     core.StatusID // empty means "use Tag instead"
	Tag    string
}

func (e RemoveStatusEffect) SelfApply() bool { return e.Self }

func (e RemoveStatusEffect) Apply(user core.CombatantID, targets []core.CombatantID, env Env, result *Result) {
	for _, id := range resolveTargets(e.Self, user, targets) {
		target, ok := env.Get(id)
		if !ok {
			continue
		}
		tc := result.Change(id)
		if e.ID != "" {
			tc.StatusRemoved = append(tc.StatusRemoved, e.ID)
			continue
		}
		for _, eff := range target.Manager().Effects() {
			if eff.Tags()[e.Tag] {
				tc.StatusRemoved = append(tc.StatusRemoved, eff.ID())
			}
		}
	}
}

// ReviveEffect restores a KO'd target to life with Ratio of its max hp (at
// least 1), the only effect variant allowed to bring hp up from 0.
type ReviveEffect struct {
	Self  bool
	Ratio float64
}

func (e ReviveEffect) SelfApply() bool { return e.Self }

func (e ReviveEffect) Apply(user core.CombatantID, targets []core.CombatantID, env Env, result *Result) {
	for _, id := range resolveTargets(e.Self, user, targets) {
		target, ok := env.Get(id)
		if !ok || target.Alive() {
			continue
		}
		amount := int(math.Max(1, math.Round(float64(target.MaxHPValue())*e.Ratio)))
		tc := result.Change(id)
		tc.Healed += amount
		tc.WasRevived = true
	}
}
