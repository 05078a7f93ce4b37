// Package combatant implements the Combatant entity (spec.md §3): the
// concrete stable record a battle's Session, Timeline, and skill resolution
// all read and write through, holding base stats, resource pools, and a
// status.Manager.
//
// Grounded on spec.md's data model table generalizing the Python original's
// duck-typed character/monster objects (spec.md §9: "reimplement as explicit
// fields on a Combatant record"), and on
// github.com/KirkDiggler/rpg-toolkit/mechanics/conditions's pattern of a
// manager owned by, and back-referencing, a single entity.
package combatant

import (
	"github.com/fourwinds/battlecore/battlelog"
	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/status"
)

// Stats is a combatant's base, unmodified attribute block.
type Stats struct {
	Atk     int
	Mag     int
	Defense int
	Mres    int
	Spd     int
	Luck    int
}

// Combatant is one participant in a battle. Id is assigned once at
// construction and never changes (spec.md §3, invariant 4).
type Combatant struct {
	ID   core.CombatantID
	Name string
	Side core.Side

	HP, MaxHP int
	MP, MaxMP int

	Base Stats

	Status *status.Manager
}

// New constructs a Combatant with a fresh, empty status manager. logger may
// be nil (status.NewManager defaults it to battlelog.Noop).
func New(id core.CombatantID, name string, side core.Side, hp, mp int, base Stats, logger battlelog.Logger) *Combatant {
	return &Combatant{
		ID:     id,
		Name:   name,
		Side:   side,
		HP:     hp,
		MaxHP:  hp,
		MP:     mp,
		MaxMP:  mp,
		Base:   base,
		Status: status.NewManager(id, logger),
	}
}

// Alive reports hp > 0 (spec.md §3, invariant 3: no separate liveness flag).
func (c *Combatant) Alive() bool { return c.HP > 0 }

// StableID, HPValue, MaxHPValue, MPValue, and Manager satisfy
// skill.CombatantView's method-based read surface; ID/HP/MP are exported
// fields for session's direct mutation access but skill effects only ever
// read through these accessors (they never mutate, per the single mutation
// gate, spec.md §3 invariant 1).
func (c *Combatant) StableID() core.CombatantID { return c.ID }
func (c *Combatant) HPValue() int               { return c.HP }
func (c *Combatant) MaxHPValue() int            { return c.MaxHP }
func (c *Combatant) MPValue() int               { return c.MP }
func (c *Combatant) Manager() *status.Manager   { return c.Status }

// GetID implements core.Entity.
func (c *Combatant) GetID() string { return string(c.ID) }

// GetType implements core.Entity.
func (c *Combatant) GetType() string { return "combatant" }

// EffectiveStats folds the status manager's aggregated modifiers into the
// base stat block (spec.md §4.7, "the damage module reads these to compute
// effective stats").
func (c *Combatant) EffectiveStats() (atk, def, mag, mres, spd float64) {
	mods := c.Status.AggregateStatModifiers()
	return mods.Effective(float64(c.Base.Atk), float64(c.Base.Defense), float64(c.Base.Mag), float64(c.Base.Mres), float64(c.Base.Spd))
}

// IsEnemy reports whether this combatant fights on the enemy side, used for
// router payload fields that mirror the original's is_enemy (spec.md §9:
// "prefer an explicit Side field").
func (c *Combatant) IsEnemy() bool { return c.Side == core.SideEnemy }
