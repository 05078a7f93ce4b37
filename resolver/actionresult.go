// Package resolver implements ActionResolver (spec.md §4.5): the pure
// conversion from a skill.Result (SkillResolutionResult) or a batch of
// status.Events into the single canonical mutation package, ActionResult,
// that Session accepts. It never touches session state.
//
// Grounded on spec.md §4.5 and §4.8; the closed status.Event sum type this
// package folds is grounded on
// github.com/KirkDiggler/rpg-toolkit/events's typed payload pattern,
// adapted per spec.md §9 ("replace the Any-typed retaliation dicts ... with
// a closed sum type and an exhaustive event-to-ActionResult translator").
package resolver

import (
	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/skill"
	"github.com/fourwinds/battlecore/status"
)

// TargetResult is one target's mutation deltas within an ActionResult.
type TargetResult struct {
	TargetID      core.CombatantID
	HPDelta       int
	MPDelta       int
	StatusApplied []status.Effect
	StatusRemoved []core.StatusID
	WasRevived    bool

	// IsTick and the fields below carry a DamageTickEvent/RetaliationEvent's
	// identity through to the router publish step (spec.md §6's
	// battle.status_tick payload). They are zero for ordinary skill/item
	// damage and healing.
	IsTick         bool
	TickKind       string
	TickStatusID   core.StatusID
	TickDamageType core.DamageType
	TickElement    core.Element
}

// ActionResult is the canonical mutation package: the only currency
// Session.ApplyActionResult accepts (spec.md §3, §4.6).
type ActionResult struct {
	ActorID       core.CombatantID
	CommandType   string
	SkillID       core.SkillID
	ItemID        core.ItemID
	Element       core.Element
	Targets       []TargetResult
	Success       bool
	ConsumedItems []ItemStack
}

// ItemStack is one (item id, quantity) pair consumed by a command.
type ItemStack struct {
	ItemID core.ItemID
	Qty    int
}

// FromSkillResult converts a skill.Result into an ActionResult (spec.md
// §4.5): hp_delta = healed − damage, mp_delta forwarded, applied/removed
// status ids forwarded. Any mid-resolution status.Events the skill emitted
// (e.g. a shield's retaliation) are folded in alongside the per-target
// changes so a single ActionResult carries the whole resolution.
func FromSkillResult(actor core.CombatantID, commandType string, skillID core.SkillID, element core.Element, result *skill.Result) *ActionResult {
	ar := &ActionResult{
		ActorID:     actor,
		CommandType: commandType,
		SkillID:     skillID,
		Element:     element,
		Success:     true,
	}
	for _, tc := range result.Changes() {
		ar.Targets = append(ar.Targets, TargetResult{
			TargetID:      tc.Target,
			HPDelta:       tc.Healed - tc.Damage,
			MPDelta:       tc.MPDelta,
			StatusApplied: tc.StatusApplied,
			StatusRemoved: tc.StatusRemoved,
			WasRevived:    tc.WasRevived,
		})
	}
	if len(result.Events) > 0 {
		merge(ar, FromStatusEvents(result.Events))
	}
	return ar
}

// FromStatusEvents implements build_action_result_from_status_events
// (spec.md §4.5, §4.8): folds a batch of status.Events (end-of-turn ticks,
// retaliations) into one ActionResult. Per-target HP deltas aggregate;
// applied/removed status ids collect.
func FromStatusEvents(events []status.Event) *ActionResult {
	ar := &ActionResult{CommandType: "status_tick", Success: true}
	index := make(map[core.CombatantID]int)
	get := func(id core.CombatantID) int {
		if i, ok := index[id]; ok {
			return i
		}
		ar.Targets = append(ar.Targets, TargetResult{TargetID: id})
		i := len(ar.Targets) - 1
		index[id] = i
		return i
	}

	for _, ev := range events {
		switch e := ev.(type) {
		case status.DamageTickEvent:
			i := get(e.Target)
			ar.Targets[i].HPDelta += e.Amount
			ar.Targets[i].IsTick = true
			ar.Targets[i].TickKind = e.Kind
			ar.Targets[i].TickStatusID = e.SourceStatusID
			ar.Targets[i].TickDamageType = e.DamageType
			ar.Targets[i].TickElement = e.Element
		case status.ApplyStatusEvent:
			i := get(e.Target)
			ar.Targets[i].StatusApplied = append(ar.Targets[i].StatusApplied, e.Status)
		case status.RemoveStatusEvent:
			i := get(e.Target)
			ar.Targets[i].StatusRemoved = append(ar.Targets[i].StatusRemoved, e.StatusID)
		case status.RetaliationEvent:
			i := get(e.Attacker)
			ar.Targets[i].HPDelta += e.Amount
			ar.Targets[i].IsTick = true
			ar.Targets[i].TickKind = e.Kind
			ar.Targets[i].TickStatusID = e.SourceStatusID
			ar.Targets[i].TickDamageType = e.DamageType
			ar.Targets[i].TickElement = e.Element
			if e.StatusToApply != nil {
				ar.Targets[i].StatusApplied = append(ar.Targets[i].StatusApplied, e.StatusToApply)
			}
		}
	}
	return ar
}

// merge folds other's per-target deltas into ar, combining entries for the
// same target id rather than duplicating them.
func merge(ar *ActionResult, other *ActionResult) {
	index := make(map[core.CombatantID]int, len(ar.Targets))
	for i, tr := range ar.Targets {
		index[tr.TargetID] = i
	}
	for _, tr := range other.Targets {
		if i, ok := index[tr.TargetID]; ok {
			ar.Targets[i].HPDelta += tr.HPDelta
			ar.Targets[i].MPDelta += tr.MPDelta
			ar.Targets[i].StatusApplied = append(ar.Targets[i].StatusApplied, tr.StatusApplied...)
			ar.Targets[i].StatusRemoved = append(ar.Targets[i].StatusRemoved, tr.StatusRemoved...)
			if tr.IsTick {
				ar.Targets[i].IsTick = true
				ar.Targets[i].TickKind = tr.TickKind
				ar.Targets[i].TickStatusID = tr.TickStatusID
				ar.Targets[i].TickDamageType = tr.TickDamageType
				ar.Targets[i].TickElement = tr.TickElement
			}
			continue
		}
		index[tr.TargetID] = len(ar.Targets)
		ar.Targets = append(ar.Targets, tr)
	}
}
