package session

import "github.com/fourwinds/battlecore/core"

// Gains is the battle-local progression buffer (spec.md §3, §4.10): it
// never mutates the outside save ledger; the enclosing caller performs the
// authoritative commit once the battle ends.
type Gains struct {
	XPByActor       map[core.CombatantID]int
	Gold            int
	ItemsGained     map[core.ItemID]int
	ItemsConsumed   map[core.ItemID]int
	DefeatedEnemies map[core.CombatantID]bool
	Tags            map[string]bool
}

// NewGains constructs an empty Gains buffer.
func NewGains() *Gains {
	return &Gains{
		XPByActor:       make(map[core.CombatantID]int),
		ItemsGained:     make(map[core.ItemID]int),
		ItemsConsumed:   make(map[core.ItemID]int),
		DefeatedEnemies: make(map[core.CombatantID]bool),
		Tags:            make(map[string]bool),
	}
}

// AddXP accumulates xp for an actor (e.g. the surviving party on victory).
func (g *Gains) AddXP(actor core.CombatantID, amount int) {
	g.XPByActor[actor] += amount
}

// AddGold accumulates gold gained this battle.
func (g *Gains) AddGold(amount int) {
	g.Gold += amount
}

// AddItem accumulates an item gained this battle (e.g. loot drops).
func (g *Gains) AddItem(id core.ItemID, qty int) {
	g.ItemsGained[id] += qty
}
