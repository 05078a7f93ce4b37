// Package timeline implements the charge-time scheduler (spec.md §4.1): a
// per-combatant readiness gauge advanced by Update(dt), producing batches
// of ids that have reached the commit threshold.
//
// Grounded on spec.md §4.1's algorithm description and
// github.com/KirkDiggler/rpg-toolkit/dice's deterministic, side-effect-free
// update style, reimplemented as a stable-order slice rather than the
// toolkit's map-based registries since tie-breaking by iteration order is a
// spec invariant (spec.md §4.1: "Ties are broken by iteration order").
package timeline

import "github.com/fourwinds/battlecore/core"

// DefaultThreshold is the gauge value at which a combatant becomes ready.
const DefaultThreshold = 100.0

// DefaultRate is the uniform per-second gauge gain used when no per-combatant
// speed is supplied (spec.md §4.1: "a uniform placeholder rate is
// acceptable as long as the contract is preserved").
const DefaultRate = 20.0

// KOPredicate reports whether id should be excluded from gauge advancement
// and readiness (spec.md §4.1: "skip those KO'd per session's KO
// predicate").
type KOPredicate func(id core.CombatantID) bool

// Timeline tracks each tracked combatant's gauge and produces ready
// batches.
type Timeline struct {
	order     []core.CombatantID
	gauge     map[core.CombatantID]float64
	rate      map[core.CombatantID]float64
	threshold float64
	paused    bool
	isKO      KOPredicate
}

// New constructs an empty Timeline. isKO may be nil (nothing is ever
// treated as KO'd).
func New(isKO KOPredicate) *Timeline {
	if isKO == nil {
		isKO = func(core.CombatantID) bool { return false }
	}
	return &Timeline{
		gauge:     make(map[core.CombatantID]float64),
		rate:      make(map[core.CombatantID]float64),
		threshold: DefaultThreshold,
		isKO:      isKO,
	}
}

// Add registers id at zero gauge with the given advancement rate (speed),
// if not already tracked. Re-adding an existing id is a no-op.
func (t *Timeline) Add(id core.CombatantID, rate float64) {
	if _, ok := t.gauge[id]; ok {
		return
	}
	if rate <= 0 {
		rate = DefaultRate
	}
	t.order = append(t.order, id)
	t.gauge[id] = 0
	t.rate[id] = rate
}

// Remove untracks id (summon departs, permadeath, etc). Unknown ids are a
// no-op (spec.md §4.1, "Failure semantics").
func (t *Timeline) Remove(id core.CombatantID) {
	delete(t.gauge, id)
	delete(t.rate, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// ResetGauge sets id's gauge to zero. Unknown ids are a no-op.
func (t *Timeline) ResetGauge(id core.CombatantID) {
	if _, ok := t.gauge[id]; ok {
		t.gauge[id] = 0
	}
}

// Pause freezes gauge advancement.
func (t *Timeline) Pause() { t.paused = true }

// Resume unfreezes gauge advancement.
func (t *Timeline) Resume() { t.paused = false }

// Paused reports whether the timeline is currently frozen.
func (t *Timeline) Paused() bool { return t.paused }

// Ratio returns id's gauge as a fraction of the commit threshold, in
// [0,1]. Unknown ids return 0.
func (t *Timeline) Ratio(id core.CombatantID) float64 {
	g, ok := t.gauge[id]
	if !ok {
		return 0
	}
	return g / t.threshold
}

// CommitThreshold returns the threshold ratio (always 1.0; exposed for UI
// observers per spec.md §4.1's read-only view contract).
func (t *Timeline) CommitThreshold() float64 { return 1.0 }

// Update advances every non-paused, non-KO'd combatant's gauge by rate·dt,
// clamps at threshold, and returns the ids that reached it this call in
// stable iteration order (spec.md §4.1's algorithm). Returns nil if none
// reached readiness or the timeline is paused.
func (t *Timeline) Update(dt float64) []core.CombatantID {
	if t.paused {
		return nil
	}
	var ready []core.CombatantID
	for _, id := range t.order {
		if t.isKO(id) {
			continue
		}
		g := t.gauge[id] + t.rate[id]*dt
		if g >= t.threshold {
			g = t.threshold
			ready = append(ready, id)
		}
		t.gauge[id] = g
	}
	return ready
}
