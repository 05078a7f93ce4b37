package skill

import "github.com/fourwinds/battlecore/core"

// Resolve runs a skill's effects, in declaration order, against user and
// targets, producing a SkillResolutionResult (spec.md §4.4 steps 1-3).
// Callers are responsible for the MP soft-failure check before calling
// Resolve (package command); Resolve itself does not touch mp cost.
func Resolve(def Definition, user core.CombatantID, targets []core.CombatantID, env Env) *Result {
	result := NewResult(def.Meta)
	for _, effect := range def.Effects {
		effect.Apply(user, targets, env, result)
	}
	if result.Message == "" {
		result.Message = autoMessage(def.Meta, user, result)
	}
	return result
}

// autoMessage builds a generic flavor line when no effect set one (spec.md
// §4.4 step 3).
func autoMessage(meta Meta, user core.CombatantID, result *Result) string {
	if len(result.Changes()) == 0 {
		return string(user) + " used " + string(meta.ID) + "."
	}
	return string(user) + " used " + string(meta.ID) + " on " + string(result.Changes()[0].Target) + "."
}
