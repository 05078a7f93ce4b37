package command_test

import (
	"errors"
	"testing"

	"github.com/fourwinds/battlecore/combatant"
	"github.com/fourwinds/battlecore/command"
	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/rpgerr"
	"github.com/fourwinds/battlecore/skill"
)

func view(c *combatant.Combatant) skill.CombatantView { return c }

func TestSkillSoftFailsOnInsufficientMP(t *testing.T) {
	setia := combatant.New("setia", "Setia", core.SideParty, 100, 0, combatant.Stats{Atk: 16}, nil)
	def := skill.Definition{Meta: skill.Meta{ID: "setia_wind_strike_1", User: "setia", MPCost: 40}}

	lookup := func(id core.SkillID) (skill.Definition, bool) {
		if id == def.Meta.ID {
			return def, true
		}
		return skill.Definition{}, false
	}

	ctx := command.Context{
		Combatants: map[core.CombatantID]skill.CombatantView{"setia": view(setia)},
		Skills:     lookup,
	}
	cmd := command.Command{ActorID: "setia", Type: command.TypeSkill, SkillID: "setia_wind_strike_1"}

	ar, reason := command.Resolve(ctx, cmd)
	if ar != nil {
		t.Fatalf("expected nil ActionResult on insufficient mp, got %+v", ar)
	}
	if reason == nil || !rpgerr.Is(reason, rpgerr.CodeResourceExhausted) {
		t.Fatalf("expected CodeResourceExhausted reason, got %v", reason)
	}
	if !errors.Is(reason, core.ErrInsufficientMP) {
		t.Fatalf("expected reason to wrap ErrInsufficientMP, got %v", reason)
	}
}

func TestDefendAppliesSelfStatus(t *testing.T) {
	setia := combatant.New("setia", "Setia", core.SideParty, 100, 10, combatant.Stats{}, nil)
	ctx := command.Context{Combatants: map[core.CombatantID]skill.CombatantView{"setia": view(setia)}}
	cmd := command.Command{ActorID: "setia", Type: command.TypeDefend}

	ar, _ := command.Resolve(ctx, cmd)
	if ar == nil || len(ar.Targets) != 1 || len(ar.Targets[0].StatusApplied) != 1 {
		t.Fatalf("expected defend_1 applied to self, got %+v", ar)
	}
	if ar.Targets[0].StatusApplied[0].ID() != "defend_1" {
		t.Fatalf("expected defend_1, got %s", ar.Targets[0].StatusApplied[0].ID())
	}
}

func TestFleeConsumesTurnRegardlessOfOutcome(t *testing.T) {
	ctx := command.Context{CanEscape: false, FleeRoll: func() float64 { return 0.1 }}
	cmd := command.Command{ActorID: "setia", Type: command.TypeFlee}

	ar, reason := command.Resolve(ctx, cmd)
	if ar == nil {
		t.Fatal("flee must always return an ActionResult to consume the turn")
	}
	if ar.Success {
		t.Fatal("expected flee to fail when can_escape=false")
	}
	if reason == nil || !rpgerr.Is(reason, rpgerr.CodeNotAllowed) {
		t.Fatalf("expected CodeNotAllowed reason on failed flee, got %v", reason)
	}
}

func TestFleeSucceedsWhenRollBeatsThreshold(t *testing.T) {
	ctx := command.Context{CanEscape: true, FleeRoll: func() float64 { return 0.1 }}
	cmd := command.Command{ActorID: "setia", Type: command.TypeFlee}

	ar, reason := command.Resolve(ctx, cmd)
	if ar == nil || !ar.Success {
		t.Fatalf("expected successful flee, got %+v", ar)
	}
	if reason != nil {
		t.Fatalf("expected no rejection reason on successful flee, got %v", reason)
	}
}

func TestEquipWeaponIsFreeActionShape(t *testing.T) {
	ctx := command.Context{}
	cmd := command.Command{ActorID: "setia", Type: command.TypeEquipWeapon}

	ar, _ := command.Resolve(ctx, cmd)
	if ar == nil || !ar.Success || len(ar.Targets) != 0 {
		t.Fatalf("expected success with no targets, got %+v", ar)
	}
}
