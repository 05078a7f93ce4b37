// Package session implements Session (spec.md §4.6), the single mutation
// gate: the only component permitted to change a combatant's hp, mp, or
// status list. It also tracks battle-local gains and answers the outcome
// predicate.
//
// Grounded on spec.md §4.6 and engine/battle/session's apply_action_result
// procedure (original_source), reimplemented with explicit clamped integer
// arithmetic instead of Python's duck-typed set_hp/set_mp helpers.
package session

import (
	"github.com/fourwinds/battlecore/battlelog"
	"github.com/fourwinds/battlecore/combatant"
	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/resolver"
	"github.com/fourwinds/battlecore/rpgerr"
	"github.com/fourwinds/battlecore/status"
)

// Outcome is the result of CheckBattleOutcome.
type Outcome string

// Outcome values.
const (
	Ongoing Outcome = "ongoing"
	Victory Outcome = "victory"
	Defeat  Outcome = "defeat"
)

// Session is the authoritative board: every combatant, the gains buffer,
// and the battle-local equipment map (spec.md §3's SUPPLEMENTED FEATURES
// item 5 in SPEC_FULL.md).
type Session struct {
	Party   []*combatant.Combatant
	Enemies []*combatant.Combatant
	byID    map[core.CombatantID]*combatant.Combatant

	Gains *Gains

	// EquipmentSwaps is battle-local only; it never touches the save
	// ledger (spec.md §4.3, equip_weapon: "battle-local equipment map
	// only").
	EquipmentSwaps map[core.CombatantID]core.ItemID

	CanEscape bool

	xpLog   []LogEntry
	lootLog []LogEntry

	logger battlelog.Logger
}

// New constructs a Session from a party and enemy roster.
func New(party, enemies []*combatant.Combatant, canEscape bool, logger battlelog.Logger) *Session {
	if logger == nil {
		logger = battlelog.Noop
	}
	byID := make(map[core.CombatantID]*combatant.Combatant, len(party)+len(enemies))
	for _, c := range party {
		byID[c.ID] = c
	}
	for _, c := range enemies {
		byID[c.ID] = c
	}
	return &Session{
		Party:          party,
		Enemies:        enemies,
		byID:           byID,
		Gains:          NewGains(),
		EquipmentSwaps: make(map[core.CombatantID]core.ItemID),
		CanEscape:      canEscape,
		logger:         logger,
	}
}

// Get resolves a combatant by id.
func (s *Session) Get(id core.CombatantID) (*combatant.Combatant, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// ApplyActionResult is the single mutation gate (spec.md §4.6). Unknown
// target ids are skipped and logged as a CodeNotFound rpgerr, a
// data-integrity degrade rather than a crash (spec.md §7).
func (s *Session) ApplyActionResult(ar *resolver.ActionResult) {
	if ar == nil {
		return
	}
	for _, tr := range ar.Targets {
		c, ok := s.byID[tr.TargetID]
		if !ok {
			err := rpgerr.New(rpgerr.CodeNotFound, "apply_action_result: unknown target, skipped",
				rpgerr.WithCause(core.ErrUnknownCombatant), rpgerr.WithMeta("target_id", tr.TargetID))
			battlelog.Runtimef(s.logger, "[%s] %v (target=%s)", err.Code, err, tr.TargetID)
			continue
		}

		wasAlive := c.Alive()
		if tr.HPDelta != 0 {
			// Non-revive heal on a KO'd target never resurrects (spec.md §8
			// boundary behavior): hp stays 0 unless this TargetResult
			// explicitly marks a revive.
			if !(c.HP <= 0 && tr.HPDelta > 0 && !tr.WasRevived) {
				c.HP = clamp(c.HP+tr.HPDelta, 0, c.MaxHP)
			}
		}
		if tr.MPDelta != 0 {
			c.MP = clamp(c.MP+tr.MPDelta, 0, c.MaxMP)
		}

		if wasAlive && !c.Alive() && c.Side == core.SideEnemy {
			s.Gains.DefeatedEnemies[c.ID] = true
		}

		for _, eff := range tr.StatusApplied {
			c.Status.Add(eff, &status.Context{})
		}
		for _, id := range tr.StatusRemoved {
			c.Status.RemoveByID(id, &status.Context{})
		}
	}

	if ar.Success && len(ar.ConsumedItems) > 0 {
		for _, item := range ar.ConsumedItems {
			s.Gains.ItemsConsumed[item.ItemID] += item.Qty
		}
	}
}

// CheckBattleOutcome implements spec.md §4.6's outcome predicate: ongoing
// unless one side has no living members; mutual KO resolves to victory by
// design.
func (s *Session) CheckBattleOutcome() Outcome {
	partyAlive := anyAlive(s.Party)
	enemiesAlive := anyAlive(s.Enemies)
	switch {
	case !partyAlive && !enemiesAlive:
		return Victory
	case !enemiesAlive:
		return Victory
	case !partyAlive:
		return Defeat
	default:
		return Ongoing
	}
}

func anyAlive(cs []*combatant.Combatant) bool {
	for _, c := range cs {
		if c.Alive() {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
