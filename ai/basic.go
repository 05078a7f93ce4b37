// Package ai implements the basic enemy command policy (spec.md §4.2
// ENEMY_COMMAND: "Ask the AI policy for a MappedAction for the current
// actor").
//
// Grounded on engine/battle/action_mapper.py's choose_basic_enemy_action:
// prefer a damage-category, non-heal-like skill; fall back to the first
// available skill; target the lowest-hp living party member.
package ai

import (
	"github.com/fourwinds/battlecore/combatant"
	"github.com/fourwinds/battlecore/command"
	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/skill"
)

// ErrNoSkillsAvailable is an authoring error: an enemy has no registered
// skills to choose from (spec.md §7, "Authoring errors: fail fast").
var ErrNoSkillsAvailable = errNoSkills{}

type errNoSkills struct{}

func (errNoSkills) Error() string { return "ai: actor has no available skills" }

// ChooseBasicAction builds a command.Command for actor: it prefers a
// damage-category skill that isn't tagged "heal_like", falling back to the
// first available skill if none qualify, and targets the living party
// member with the lowest hp (original's `min(living_party, key=_hp_or_big)`).
func ChooseBasicAction(actor core.CombatantID, available []skill.Definition, party []*combatant.Combatant) (command.Command, error) {
	chosen, ok := pickSkill(available)
	if !ok {
		return command.Command{}, ErrNoSkillsAvailable
	}

	target, ok := weakestLivingTarget(party)
	if !ok {
		return command.Command{ActorID: actor, Type: command.TypeSkill, SkillID: chosen.Meta.ID, Source: command.SourceAI}, nil
	}

	return command.Command{
		ActorID: actor,
		Type:    command.TypeSkill,
		SkillID: chosen.Meta.ID,
		Targets: []core.CombatantID{target},
		Source:  command.SourceAI,
	}, nil
}

// pickSkill prefers the first damage-category skill not tagged
// "heal_like"; failing that, the first available skill at all.
func pickSkill(available []skill.Definition) (skill.Definition, bool) {
	for _, def := range available {
		if def.Meta.Category == "damage" && !def.Meta.Tags["heal_like"] {
			return def, true
		}
	}
	if len(available) > 0 {
		return available[0], true
	}
	return skill.Definition{}, false
}

// weakestLivingTarget returns the living party member with the lowest hp,
// ties broken by list order (original's _hp_or_big sentinel for dead
// members is mirrored here by simply skipping the dead).
func weakestLivingTarget(party []*combatant.Combatant) (core.CombatantID, bool) {
	var best *combatant.Combatant
	for _, c := range party {
		if !c.Alive() {
			continue
		}
		if best == nil || c.HP < best.HP {
			best = c
		}
	}
	if best == nil {
		return "", false
	}
	return best.ID, true
}
