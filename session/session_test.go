package session_test

import (
	"strings"
	"testing"

	"github.com/fourwinds/battlecore/combatant"
	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/resolver"
	"github.com/fourwinds/battlecore/session"
	"github.com/fourwinds/battlecore/status"
)

// recordingLogger captures every Runtime message for assertions.
type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Runtime(msg string) { r.lines = append(r.lines, msg) }

func TestApplyActionResultClampsHP(t *testing.T) {
	wolf := combatant.New("trail_wolf", "Trail Wolf", core.SideEnemy, 10, 0, combatant.Stats{}, nil)
	sess := session.New(nil, []*combatant.Combatant{wolf}, true, nil)

	sess.ApplyActionResult(&resolver.ActionResult{
		Targets: []resolver.TargetResult{{TargetID: "trail_wolf", HPDelta: -999}},
		Success: true,
	})
	if wolf.HP != 0 {
		t.Fatalf("expected hp clamped to 0, got %d", wolf.HP)
	}
}

func TestApplyActionResultMarksDefeatedEnemy(t *testing.T) {
	wolf := combatant.New("trail_wolf", "Trail Wolf", core.SideEnemy, 5, 0, combatant.Stats{}, nil)
	sess := session.New(nil, []*combatant.Combatant{wolf}, true, nil)

	sess.ApplyActionResult(&resolver.ActionResult{
		Targets: []resolver.TargetResult{{TargetID: "trail_wolf", HPDelta: -5}},
		Success: true,
	})
	if !sess.Gains.DefeatedEnemies["trail_wolf"] {
		t.Fatal("expected trail_wolf recorded in gains.DefeatedEnemies")
	}
}

func TestHealOnKODoesNotRevive(t *testing.T) {
	setia := combatant.New("setia", "Setia", core.SideParty, 0, 0, combatant.Stats{}, nil)
	sess := session.New([]*combatant.Combatant{setia}, nil, true, nil)

	sess.ApplyActionResult(&resolver.ActionResult{
		Targets: []resolver.TargetResult{{TargetID: "setia", HPDelta: 30}},
		Success: true,
	})
	if setia.HP != 0 {
		t.Fatalf("expected hp to remain 0 on non-revive heal, got %d", setia.HP)
	}
}

func TestReviveFlagResurrects(t *testing.T) {
	setia := combatant.New("setia", "Setia", core.SideParty, 0, 0, combatant.Stats{}, nil)
	setia.MaxHP = 100
	sess := session.New([]*combatant.Combatant{setia}, nil, true, nil)

	sess.ApplyActionResult(&resolver.ActionResult{
		Targets: []resolver.TargetResult{{TargetID: "setia", HPDelta: 30, WasRevived: true}},
		Success: true,
	})
	if setia.HP != 30 {
		t.Fatalf("expected hp=30 after revive, got %d", setia.HP)
	}
}

func TestApplyActionResultAttachesAndRemovesStatuses(t *testing.T) {
	setia := combatant.New("setia", "Setia", core.SideParty, 100, 10, combatant.Stats{}, nil)
	sess := session.New([]*combatant.Combatant{setia}, nil, true, nil)

	defend := status.NewStatBuff("defend_1", "Defend", 1, true, false, 0, status.FXBuff, map[string]float64{"def_mult": 1.25}, nil, nil)
	sess.ApplyActionResult(&resolver.ActionResult{
		Targets: []resolver.TargetResult{{TargetID: "setia", StatusApplied: []status.Effect{defend}}},
		Success: true,
	})
	if len(setia.Status.Effects()) != 1 {
		t.Fatalf("expected defend_1 attached, got %d effects", len(setia.Status.Effects()))
	}

	sess.ApplyActionResult(&resolver.ActionResult{
		Targets: []resolver.TargetResult{{TargetID: "setia", StatusRemoved: []core.StatusID{"defend_1"}}},
		Success: true,
	})
	if len(setia.Status.Effects()) != 0 {
		t.Fatal("expected defend_1 removed")
	}
}

func TestUnknownTargetIDIsSkippedSilently(t *testing.T) {
	sess := session.New(nil, nil, true, nil)
	sess.ApplyActionResult(&resolver.ActionResult{
		Targets: []resolver.TargetResult{{TargetID: "ghost", HPDelta: -5}},
		Success: true,
	})
}

func TestUnknownTargetIDLogsRPGErrCodedReason(t *testing.T) {
	logger := &recordingLogger{}
	sess := session.New(nil, nil, true, logger)
	sess.ApplyActionResult(&resolver.ActionResult{
		Targets: []resolver.TargetResult{{TargetID: "ghost", HPDelta: -5}},
		Success: true,
	})
	if len(logger.lines) != 1 {
		t.Fatalf("expected exactly one logged line, got %d: %v", len(logger.lines), logger.lines)
	}
	if !strings.Contains(logger.lines[0], "not_found") || !strings.Contains(logger.lines[0], "ghost") {
		t.Fatalf("expected rpgerr-coded message naming the unknown target, got %q", logger.lines[0])
	}
}

func TestCheckBattleOutcomeMutualKOIsVictory(t *testing.T) {
	setia := combatant.New("setia", "Setia", core.SideParty, 0, 0, combatant.Stats{}, nil)
	wolf := combatant.New("trail_wolf", "Trail Wolf", core.SideEnemy, 0, 0, combatant.Stats{}, nil)
	sess := session.New([]*combatant.Combatant{setia}, []*combatant.Combatant{wolf}, true, nil)

	if got := sess.CheckBattleOutcome(); got != session.Victory {
		t.Fatalf("expected mutual KO to resolve to victory, got %s", got)
	}
}

func TestBuildOutcomeIsIdempotent(t *testing.T) {
	sess := session.New(nil, nil, true, nil)
	sess.LogXP("setia:10")

	first := sess.BuildOutcome(true, false, nil, nil)
	second := sess.BuildOutcome(true, false, nil, nil)
	if len(first.XPLog) != len(second.XPLog) || first.XPLog[0] != second.XPLog[0] {
		t.Fatalf("expected byte-equal outcomes across calls, got %+v vs %+v", first, second)
	}
}
