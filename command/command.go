// Package command implements the BattleCommand type and the pure command
// handler functions of spec.md §4.3: one per command_type, each a function
// from a BattleCommand plus context to an optional ActionResult.
//
// Grounded on spec.md §4.3's table and engine/battle/action_mapper.py's
// dispatch-by-command-type handling, reimplemented as an exhaustive Go
// switch over a closed CommandType enum instead of Python's stringly-typed
// dispatch.
package command

import (
	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/resolver"
	"github.com/fourwinds/battlecore/rpgerr"
	"github.com/fourwinds/battlecore/skill"
	"github.com/fourwinds/battlecore/status"
)

// Type enumerates the neutral command intents (spec.md §3).
type Type string

// Command types.
const (
	TypeSkill        Type = "skill"
	TypeItem         Type = "item"
	TypeDefend       Type = "defend"
	TypeFlee         Type = "flee"
	TypeEquipWeapon  Type = "equip_weapon"
	TypeWait         Type = "wait"
)

// Source marks who issued a command.
type Source string

// Command sources.
const (
	SourcePlayer Source = "player"
	SourceAI     Source = "ai"
)

// Command is a neutral description of a player or AI intent (spec.md §3).
type Command struct {
	ActorID     core.CombatantID
	Type        Type
	SkillID     core.SkillID
	ItemID      core.ItemID
	ItemQty     int
	Targets     []core.CombatantID
	Source      Source
	Reason      string
}

// Context bundles the read-only lookups and registries a command handler
// needs. It never exposes a mutation path; handlers build ActionResults,
// they don't apply them (spec.md §3, invariant 1).
type Context struct {
	Combatants map[core.CombatantID]skill.CombatantView
	Roll       func() float64
	FleeRoll   func() float64 // separate roll source so flee's 0.5 check is independently seedable in tests
	CanEscape  bool

	Skills       SkillLookup
	ItemEffects  ItemEffectLookup
}

// SkillLookup resolves a registered skill definition by id.
type SkillLookup func(id core.SkillID) (skill.Definition, bool)

// ItemEffectLookup resolves a registered item-effect function by id.
type ItemEffectLookup func(id core.ItemEffectID) (func(Context, Command) *resolver.ActionResult, bool)

// env builds a skill.Env view over the command context's combatants.
func (c Context) env() skill.Env {
	return skill.Env{Combatants: c.Combatants, Roll: c.Roll}
}

// Resolve dispatches cmd to the matching handler, returning (nil, nil) on a
// silent no-op (wait) and (nil, reason) on a soft-failure (spec.md §7:
// "return no ActionResult ... mapper returns to PLAYER_COMMAND without
// consuming the turn"). reason is an rpgerr-coded message the mapper
// surfaces to its Collaborator so the UI can explain the rejection.
func Resolve(ctx Context, cmd Command) (*resolver.ActionResult, *rpgerr.Error) {
	switch cmd.Type {
	case TypeDefend:
		return handleDefend(ctx, cmd)
	case TypeFlee:
		return handleFlee(ctx, cmd)
	case TypeItem:
		return handleItem(ctx, cmd)
	case TypeEquipWeapon:
		return handleEquipWeapon(ctx, cmd)
	case TypeSkill:
		return handleSkill(ctx, cmd)
	case TypeWait:
		return nil, nil
	default:
		return nil, nil
	}
}

// handleDefend applies defend_1 to the actor: never fails on a valid actor
// (spec.md §4.3).
func handleDefend(ctx Context, cmd Command) (*resolver.ActionResult, *rpgerr.Error) {
	if _, ok := ctx.Combatants[cmd.ActorID]; !ok {
		return nil, rpgerr.New(rpgerr.CodeNotFound, "unknown combatant",
			rpgerr.WithCause(core.ErrUnknownCombatant), rpgerr.WithMeta("actor_id", cmd.ActorID))
	}
	defend := status.NewStatBuff("defend_1", "Defend", 1, true, false, 0, status.FXBuff,
		map[string]float64{"def_mult": 1.25, "mres_mult": 1.15}, nil, nil, "defend", "buff")
	return &resolver.ActionResult{
		ActorID:     cmd.ActorID,
		CommandType: string(TypeDefend),
		Success:     true,
		Targets: []resolver.TargetResult{{
			TargetID:      cmd.ActorID,
			StatusApplied: []status.Effect{defend},
		}},
	}, nil
}

// handleFlee rolls escape (spec.md §4.3): gated by can_escape, then a 0.5
// roll. Consumes the turn regardless of outcome; never mutates combatants.
func handleFlee(ctx Context, cmd Command) (*resolver.ActionResult, *rpgerr.Error) {
	success := ctx.CanEscape
	if success {
		roll := ctx.FleeRoll
		if roll == nil {
			roll = ctx.Roll
		}
		success = roll != nil && roll() < 0.5
	}
	var reason *rpgerr.Error
	if !success {
		cause := core.ErrFleeNotAllowed
		if ctx.CanEscape {
			cause = nil
		}
		opts := []rpgerr.Option{rpgerr.WithMeta("actor_id", cmd.ActorID)}
		if cause != nil {
			opts = append(opts, rpgerr.WithCause(cause))
		}
		reason = rpgerr.New(rpgerr.CodeNotAllowed, "escape failed", opts...)
	}
	return &resolver.ActionResult{
		ActorID:     cmd.ActorID,
		CommandType: string(TypeFlee),
		Success:     success,
	}, reason
}

// handleItem delegates to the registered item-effect function (spec.md
// §4.3). Unknown effect ids soft-fail (return nil).
func handleItem(ctx Context, cmd Command) (*resolver.ActionResult, *rpgerr.Error) {
	if ctx.ItemEffects == nil {
		return nil, rpgerr.New(rpgerr.CodeNotFound, "no item effects registered",
			rpgerr.WithCause(core.ErrUnknownItem), rpgerr.WithMeta("item_id", cmd.ItemID))
	}
	fn, ok := ctx.ItemEffects(core.ItemEffectID(cmd.ItemID))
	if !ok {
		return nil, rpgerr.New(rpgerr.CodeNotFound, "unknown item effect",
			rpgerr.WithCause(core.ErrUnknownItem), rpgerr.WithMeta("item_id", cmd.ItemID))
	}
	result := fn(ctx, cmd)
	if result == nil {
		return nil, rpgerr.New(rpgerr.CodeInvalidTarget, "item effect declined to resolve",
			rpgerr.WithCause(core.ErrNoValidTargets), rpgerr.WithMeta("item_id", cmd.ItemID))
	}
	if result.Success {
		qty := cmd.ItemQty
		if qty <= 0 {
			qty = 1
		}
		result.ConsumedItems = append(result.ConsumedItems, resolver.ItemStack{ItemID: cmd.ItemID, Qty: qty})
	}
	return result, nil
}

// handleEquipWeapon is a free action: it never touches hp/mp/status, so it
// carries no Targets. It does carry the chosen item id in ItemID, which the
// mapper's POST_RESOLVE step (spec.md §4.2 step b/c) stages into
// Session.EquipmentSwaps — the only thing this command actually changes.
func handleEquipWeapon(ctx Context, cmd Command) (*resolver.ActionResult, *rpgerr.Error) {
	return &resolver.ActionResult{
		ActorID:     cmd.ActorID,
		CommandType: string(TypeEquipWeapon),
		ItemID:      cmd.ItemID,
		Success:     true,
	}, nil
}

// handleSkill soft-fails on insufficient MP or an unknown skill id, then
// runs full resolution via package skill and converts the result.
func handleSkill(ctx Context, cmd Command) (*resolver.ActionResult, *rpgerr.Error) {
	def, ok := ctx.Skills(cmd.SkillID)
	if !ok {
		return nil, rpgerr.New(rpgerr.CodeNotFound, "unknown skill",
			rpgerr.WithCause(core.ErrUnknownSkill), rpgerr.WithMeta("skill_id", cmd.SkillID))
	}
	actor, ok := ctx.Combatants[cmd.ActorID]
	if !ok {
		return nil, rpgerr.New(rpgerr.CodeNotFound, "unknown combatant",
			rpgerr.WithCause(core.ErrUnknownCombatant), rpgerr.WithMeta("actor_id", cmd.ActorID))
	}
	if actor.MPValue() < def.Meta.MPCost {
		return nil, rpgerr.New(rpgerr.CodeResourceExhausted, "insufficient mp",
			rpgerr.WithCause(core.ErrInsufficientMP),
			rpgerr.WithMeta("actor_id", cmd.ActorID), rpgerr.WithMeta("skill_id", cmd.SkillID))
	}

	result := skill.Resolve(def, cmd.ActorID, cmd.Targets, ctx.env())
	ar := resolver.FromSkillResult(cmd.ActorID, string(TypeSkill), cmd.SkillID, def.Meta.Element, result)
	if def.Meta.MPCost > 0 {
		mergeActorMPCost(ar, cmd.ActorID, def.Meta.MPCost)
	}
	return ar, nil
}

// mergeActorMPCost subtracts a skill's mp cost from the actor's own
// TargetResult, creating one if the skill didn't already target the actor.
func mergeActorMPCost(ar *resolver.ActionResult, actor core.CombatantID, cost int) {
	for i := range ar.Targets {
		if ar.Targets[i].TargetID == actor {
			ar.Targets[i].MPDelta -= cost
			return
		}
	}
	ar.Targets = append(ar.Targets, resolver.TargetResult{TargetID: actor, MPDelta: -cost})
}
