package status_test

import (
	"strings"
	"testing"

	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/status"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Runtime(msg string) { r.lines = append(r.lines, msg) }

func TestAddThenOnTurnEndDoesNotDecrementFreshStatus(t *testing.T) {
	m := status.NewManager("setia", nil)
	def := status.NewStatBuff("defend_1", "Defend", 1, true, false, 0, status.FXBuff,
		map[string]float64{"def_mult": 1.25, "mres_mult": 1.15}, nil, nil, "defend", "buff")

	m.Add(def, &status.Context{})
	m.OnTurnEnd(&status.Context{})

	effects := m.Effects()
	if len(effects) != 1 {
		t.Fatalf("expected defend_1 to survive its first end-of-turn, got %d effects", len(effects))
	}
	if effects[0].DurationTurns() != 1 {
		t.Fatalf("expected duration to remain 1 (skip flag consumed), got %d", effects[0].DurationTurns())
	}

	m.OnTurnEnd(&status.Context{})
	if len(m.Effects()) != 0 {
		t.Fatalf("expected defend_1 to expire on its second end-of-turn")
	}
}

func TestNonStackableReplacesExisting(t *testing.T) {
	m := status.NewManager("trail_wolf", nil)
	first := status.NewDamageOverTime("poison_1", "Poison", 3, true, false, 0, 4, core.ElementNone, core.DamagePhysical, "poison")
	second := status.NewDamageOverTime("poison_1", "Poison", 3, true, false, 0, 6, core.ElementNone, core.DamagePhysical, "poison")

	m.Add(first, &status.Context{})
	m.Add(second, &status.Context{})

	effects := m.Effects()
	if len(effects) != 1 {
		t.Fatalf("expected exactly one poison_1, got %d", len(effects))
	}
	if effects[0].(*status.DamageOverTime).TickAmount != 6 {
		t.Fatalf("expected the replacement instance to survive")
	}
}

func TestMaxStacksEvictsOldest(t *testing.T) {
	m := status.NewManager("trail_wolf", nil)
	for i := 0; i < 3; i++ {
		eff := status.NewDamageOverTime("burn_1", "Burn", 3, true, true, 2, 1+i, core.ElementFire, core.DamageMagic, "burn")
		m.Add(eff, &status.Context{})
	}

	effects := m.Effects()
	if len(effects) != 2 {
		t.Fatalf("expected max_stacks=2 to cap at 2 instances, got %d", len(effects))
	}
	amounts := []int{effects[0].(*status.DamageOverTime).TickAmount, effects[1].(*status.DamageOverTime).TickAmount}
	if amounts[0] != 2 || amounts[1] != 3 {
		t.Fatalf("expected the oldest stack (amount=1) to be evicted, got %v", amounts)
	}
}

func TestElementalShieldExclusivity(t *testing.T) {
	m := status.NewManager("setia", nil)
	iceShield := status.NewElementalShield("ice_shield_1", "Chill Ward", 3, core.ElementIce, 0.15, 0.20, 0, "frostbite", 1.0, nil)
	fireShield := status.NewElementalShield("fire_shield_1", "Ember Guard", 3, core.ElementFire, 0.15, 0.20, 0, "burn", 1.0, nil)

	m.Add(iceShield, &status.Context{})
	m.Add(fireShield, &status.Context{})

	effects := m.Effects()
	if len(effects) != 1 {
		t.Fatalf("expected only one elemental shield to survive, got %d", len(effects))
	}
	if effects[0].ID() != "fire_shield_1" {
		t.Fatalf("expected the newer shield to win, got %s", effects[0].ID())
	}
}

func TestChillWardRetaliatesAndReducesDamage(t *testing.T) {
	m := status.NewManager("setia", nil)
	attacker := core.CombatantID("trail_wolf")
	frostbiteMade := false
	shield := status.NewElementalShield("ice_shield_1", "Chill Ward", 3, core.ElementIce, 0.0, 0, 0, "frostbite", 1.0,
		func(owner, atk core.CombatantID) status.Effect {
			frostbiteMade = true
			return status.NewStatBuff("frostbite_1", "Frostbite", 3, true, false, 0, status.FXDebuff,
				map[string]float64{"spd_mult": 0.85}, nil, map[core.Element]float64{core.ElementIce: 0.05}, "debuff")
		})
	m.Add(shield, &status.Context{})

	finalAmount, bonusHeal, events := m.ApplyIncomingDamageModifiers(20, core.ElementNone, core.DamagePhysical, &status.Context{Attacker: &attacker})

	if finalAmount != 20 {
		t.Fatalf("physical reduction is 0 in this test, expected 20, got %d", finalAmount)
	}
	if bonusHeal != 0 {
		t.Fatalf("expected no bonus heal for non-matching element, got %d", bonusHeal)
	}
	if len(events) != 1 {
		t.Fatalf("expected exactly one retaliation event, got %d", len(events))
	}
	if !frostbiteMade {
		t.Fatal("expected MakeRetaliation to be invoked")
	}
	apply, ok := events[0].(status.ApplyStatusEvent)
	if !ok || apply.Target != attacker {
		t.Fatalf("expected ApplyStatusEvent targeting the attacker, got %+v", events[0])
	}
}

func TestAggregateStatModifiers(t *testing.T) {
	m := status.NewManager("setia", nil)
	m.Add(status.NewStatBuff("defend_1", "Defend", 1, true, false, 0, status.FXBuff,
		map[string]float64{"def_mult": 1.25, "mres_mult": 1.15}, nil, nil), &status.Context{})

	mods := m.AggregateStatModifiers()
	if mods.DefMult != 1.25 || mods.MresMult != 1.15 {
		t.Fatalf("unexpected aggregate: %+v", mods)
	}

	m.RemoveByID("defend_1", &status.Context{})
	mods = m.AggregateStatModifiers()
	if mods.DefMult != 1.0 || mods.MresMult != 1.0 {
		t.Fatalf("expected neutral modifiers after removal, got %+v", mods)
	}
}

func TestRemoveByIDLogsRPGErrCodedReasonForUnknownStatus(t *testing.T) {
	logger := &recordingLogger{}
	m := status.NewManager("setia", logger)
	m.Add(status.NewStatBuff("defend_1", "Defend", 1, true, false, 0, status.FXBuff,
		map[string]float64{"def_mult": 1.25}, nil, nil), &status.Context{})
	before := len(logger.lines) // Add logs its own "apply" line

	m.RemoveByID("ghost_status", &status.Context{})

	if len(m.Effects()) != 1 {
		t.Fatalf("expected defend_1 to survive removal of an unrelated id, got %d effects", len(m.Effects()))
	}
	if len(logger.lines) != before+1 {
		t.Fatalf("expected exactly one line logged by RemoveByID, got %d: %v", len(logger.lines)-before, logger.lines[before:])
	}
	if !strings.Contains(logger.lines[before], "not_found") || !strings.Contains(logger.lines[before], "ghost_status") {
		t.Fatalf("expected rpgerr-coded message naming the unknown status, got %q", logger.lines[before])
	}
}

func TestRegenEmitsPositiveDamageTick(t *testing.T) {
	m := status.NewManager("setia", nil)
	regen := status.NewRegen("regen_1", "Regeneration", 3, true, false, 5, "regen")
	m.Add(regen, &status.Context{})
	m.OnTurnEnd(&status.Context{}) // consume skip flag

	events := m.OnTurnEnd(&status.Context{})
	if len(events) != 1 {
		t.Fatalf("expected one tick event, got %d", len(events))
	}
	tick := events[0].(status.DamageTickEvent)
	if tick.Amount != 5 {
		t.Fatalf("expected +5 regen tick, got %d", tick.Amount)
	}
}
