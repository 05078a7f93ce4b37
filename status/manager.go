package status

import (
	"fmt"

	"github.com/fourwinds/battlecore/battlelog"
	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/rpgerr"
)

// Manager is the per-combatant stack of active Effects and the lifecycle
// runner for their hooks (spec.md §4.7). Grounded on
// github.com/KirkDiggler/rpg-toolkit/mechanics/conditions's EventManager
// apply/remove bookkeeping, adapted from a multi-entity map down to one
// manager per owner (the battle core constructs one Manager per Combatant,
// rather than the toolkit's single shared manager keyed by entity id) since
// each combatant already owns its Manager for its whole lifetime.
type Manager struct {
	owner   core.CombatantID
	effects []Effect
	logger  battlelog.Logger
}

// NewManager constructs an empty stack for owner. logger may be nil, in
// which case battlelog.Noop is used.
func NewManager(owner core.CombatantID, logger battlelog.Logger) *Manager {
	if logger == nil {
		logger = battlelog.Noop
	}
	return &Manager{owner: owner, logger: logger}
}

// Owner returns the combatant this manager belongs to.
func (m *Manager) Owner() core.CombatantID { return m.owner }

// Effects returns a copy of the effect stack for iteration (debug/HUD use);
// the Effect values in it are the live instances.
func (m *Manager) Effects() []Effect {
	out := make([]Effect, len(m.effects))
	copy(out, m.effects)
	return out
}

// Add attaches effect to the stack, applying the eviction rules from
// spec.md §4.7 in order: elemental-shield exclusivity, max-stacks cap, then
// non-stackable replacement. A one-shot skip-next-decrement flag is set so
// the status doesn't lose a turn of duration on the very tick it was
// applied (spec.md, "Apply + immediate end-of-turn does not decrement
// duration of a freshly applied status").
func (m *Manager) Add(effect Effect, ctx *Context) {
	if effect.Tags()["elemental_shield"] {
		remaining := m.effects[:0:0]
		for _, existing := range m.effects {
			if existing.Tags()["elemental_shield"] {
				existing.OnExpire(m.owner, ctx)
				battlelog.Runtimef(m.logger, "expire %s (evicted by elemental shield %s) on %s", existing.ID(), effect.ID(), m.owner)
			} else {
				remaining = append(remaining, existing)
			}
		}
		m.effects = remaining
	}

	if maxStacks := effect.MaxStacks(); maxStacks > 0 {
		var sameID, others []Effect
		for _, existing := range m.effects {
			if existing.ID() == effect.ID() {
				sameID = append(sameID, existing)
			} else {
				others = append(others, existing)
			}
		}
		if len(sameID) >= maxStacks {
			toRemove := len(sameID) - (maxStacks - 1)
			if toRemove < 1 {
				toRemove = 1
			}
			if toRemove > len(sameID) {
				toRemove = len(sameID)
			}
			for _, evicted := range sameID[:toRemove] {
				evicted.OnExpire(m.owner, ctx)
			}
			m.effects = append(others, sameID[toRemove:]...)
		}
	}

	if !effect.Stackable() {
		remaining := m.effects[:0:0]
		for _, existing := range m.effects {
			if existing.ID() == effect.ID() {
				existing.OnExpire(m.owner, ctx)
			} else {
				remaining = append(remaining, existing)
			}
		}
		m.effects = remaining
	}

	effect.SetSkipNextDecrement(true)
	m.effects = append(m.effects, effect)
	battlelog.Runtimef(m.logger, "apply %s dur=%d on %s", effect.ID(), effect.DurationTurns(), m.owner)
	effect.OnApply(m.owner, ctx)
}

// RemoveByID removes every effect with the given StatusID, firing OnExpire
// for each. An id that matches nothing in the stack is a data-integrity
// degrade rather than a crash (spec.md §7): it's logged as a CodeNotFound
// rpgerr wrapping core.ErrUnknownStatus instead of silently doing nothing, since a
// RemoveStatusEvent naming an id the owner never had usually means the
// authoring data and the battle state have drifted apart.
func (m *Manager) RemoveByID(id core.StatusID, ctx *Context) {
	remaining := m.effects[:0:0]
	removed := false
	for _, eff := range m.effects {
		if eff.ID() == id {
			eff.OnExpire(m.owner, ctx)
			battlelog.Runtimef(m.logger, "expire %s on %s (removed)", eff.ID(), m.owner)
			removed = true
		} else {
			remaining = append(remaining, eff)
		}
	}
	m.effects = remaining

	if !removed {
		err := rpgerr.New(rpgerr.CodeNotFound, "remove_by_id: unknown status, skipped",
			rpgerr.WithCause(core.ErrUnknownStatus), rpgerr.WithMeta("status_id", id))
		battlelog.Runtimef(m.logger, "[%s] %v (owner=%s)", err.Code, err, m.owner)
	}
}

// OnTurnStart fires every effect's OnTurnStart hook, in stack order, then
// purges anything that expired as a side effect of those hooks.
func (m *Manager) OnTurnStart(ctx *Context) {
	for _, eff := range append([]Effect(nil), m.effects...) {
		eff.OnTurnStart(m.owner, ctx)
	}
	m.cleanupExpired(ctx)
}

// OnTurnEnd fires every effect's OnTurnEnd hook (collecting any Events they
// return), then decrements durations — skipping the one-shot protection
// flag — and finally purges anything whose duration reached zero, firing
// OnExpire. Hooks run, and their events are collected, before any duration
// is decremented (spec.md §5: "status on_turn_end fires before duration
// decrement; expirations are processed after all hooks complete").
func (m *Manager) OnTurnEnd(ctx *Context) []Event {
	var events []Event
	snapshot := append([]Effect(nil), m.effects...)

	for _, eff := range snapshot {
		if result := eff.OnTurnEnd(m.owner, ctx); result != nil {
			events = append(events, result...)
		}
	}

	for _, eff := range snapshot {
		if eff.SkipNextDecrement() {
			eff.SetSkipNextDecrement(false)
			continue
		}
		eff.SetDurationTurns(eff.DurationTurns() - 1)
	}

	m.cleanupExpired(ctx)

	if len(events) > 0 {
		battlelog.Runtimef(m.logger, "on_turn_end collected %d event(s) for %s", len(events), m.owner)
	}

	return events
}

// ApplyIncomingDamageModifiers runs the owner-side incoming-damage pipeline
// (spec.md §4.4): each active effect's OnBeforeOwnerTakesDamage may reduce
// amount, grant bonus healing, or emit retaliation events. Results fold:
// the final amount is whatever the last effect returned; heals sum;
// retaliations concatenate, all in stack order.
func (m *Manager) ApplyIncomingDamageModifiers(amount int, element core.Element, damageType core.DamageType, ctx *Context) (finalAmount int, bonusHeal int, retaliation []Event) {
	finalAmount = amount
	for _, eff := range m.effects {
		var bonusHeal2 int
		var events []Event
		finalAmount, bonusHeal2, events = eff.OnBeforeOwnerTakesDamage(m.owner, finalAmount, element, damageType, ctx)
		bonusHeal += bonusHeal2
		retaliation = append(retaliation, events...)
	}
	return finalAmount, bonusHeal, retaliation
}

// AggregateStatModifiers folds every active effect's ModifyStatModifiers
// into one StatModifiers aggregate, starting from the neutral identity
// (spec.md §4.7).
func (m *Manager) AggregateStatModifiers() StatModifiers {
	mods := NeutralStatModifiers()
	for _, eff := range m.effects {
		eff.ModifyStatModifiers(&mods)
	}
	return mods
}

// HasTag reports whether any active effect carries tag.
func (m *Manager) HasTag(tag string) bool {
	for _, eff := range m.effects {
		if eff.Tags()[tag] {
			return true
		}
	}
	return false
}

// ActiveIDs returns the StatusIDs of every active effect, for UI/debug.
func (m *Manager) ActiveIDs() []core.StatusID {
	out := make([]core.StatusID, 0, len(m.effects))
	for _, eff := range m.effects {
		out = append(out, eff.ID())
	}
	return out
}

func (m *Manager) cleanupExpired(ctx *Context) {
	remaining := m.effects[:0:0]
	for _, eff := range m.effects {
		if eff.DurationTurns() <= 0 {
			eff.OnExpire(m.owner, ctx)
			battlelog.Runtimef(m.logger, "expire %s on %s (duration elapsed)", eff.ID(), m.owner)
		} else {
			remaining = append(remaining, eff)
		}
	}
	m.effects = remaining
}

// String renders a compact active-effect summary for debugging.
func (m *Manager) String() string {
	return fmt.Sprintf("status.Manager{owner=%s, effects=%v}", m.owner, m.ActiveIDs())
}
