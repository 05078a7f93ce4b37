package timeline_test

import (
	"testing"

	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/timeline"
)

func TestUpdateAdvancesGaugeAndReportsReadyAtThreshold(t *testing.T) {
	tl := timeline.New(nil)
	tl.Add("setia", 20)

	if ready := tl.Update(1.0); ready != nil {
		t.Fatalf("expected no readiness after 1s at rate 20, got %v", ready)
	}
	if ready := tl.Update(4.0); len(ready) != 1 || ready[0] != "setia" {
		t.Fatalf("expected setia ready after reaching threshold, got %v", ready)
	}
}

func TestUpdateSkipsKOdCombatants(t *testing.T) {
	koMap := map[core.CombatantID]bool{"trail_wolf": true}
	tl := timeline.New(func(id core.CombatantID) bool { return koMap[id] })
	tl.Add("trail_wolf", 100)

	ready := tl.Update(10)
	if ready != nil {
		t.Fatalf("expected KO'd combatant never to become ready, got %v", ready)
	}
	if tl.Ratio("trail_wolf") != 0 {
		t.Fatalf("expected gauge to stay frozen at 0 while KO'd, got %v", tl.Ratio("trail_wolf"))
	}
}

func TestStableTieBreakingByIterationOrder(t *testing.T) {
	tl := timeline.New(nil)
	tl.Add("setia", 100)
	tl.Add("kaira", 100)
	tl.Add("trail_wolf", 100)

	ready := tl.Update(1.0)
	if len(ready) != 3 || ready[0] != "setia" || ready[1] != "kaira" || ready[2] != "trail_wolf" {
		t.Fatalf("expected ties broken by add order, got %v", ready)
	}
}

func TestPauseFreezesGauge(t *testing.T) {
	tl := timeline.New(nil)
	tl.Add("setia", 20)
	tl.Pause()

	if ready := tl.Update(10); ready != nil {
		t.Fatalf("expected paused timeline to never report readiness, got %v", ready)
	}
	if !tl.Paused() {
		t.Fatal("expected Paused() true")
	}
	tl.Resume()
	if tl.Paused() {
		t.Fatal("expected Paused() false after Resume")
	}
}

func TestResetGaugeZeroesProgress(t *testing.T) {
	tl := timeline.New(nil)
	tl.Add("setia", 20)
	tl.Update(1.0)
	if tl.Ratio("setia") == 0 {
		t.Fatal("expected nonzero progress before reset")
	}
	tl.ResetGauge("setia")
	if tl.Ratio("setia") != 0 {
		t.Fatalf("expected gauge reset to 0, got %v", tl.Ratio("setia"))
	}
}

func TestAddIsNoOpForAlreadyTrackedID(t *testing.T) {
	tl := timeline.New(nil)
	tl.Add("setia", 20)
	tl.Update(2.0)
	before := tl.Ratio("setia")
	tl.Add("setia", 999) // should not reset gauge or change rate
	if tl.Ratio("setia") != before {
		t.Fatalf("expected re-Add to be a no-op, gauge changed from %v to %v", before, tl.Ratio("setia"))
	}
}

func TestRemoveUntracksCombatant(t *testing.T) {
	tl := timeline.New(nil)
	tl.Add("setia", 20)
	tl.Remove("setia")
	if ready := tl.Update(100); ready != nil {
		t.Fatalf("expected removed combatant never to appear ready, got %v", ready)
	}
}
