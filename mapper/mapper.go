// Package mapper implements ActionMapper (spec.md §4.2): the battle's phase
// state machine. It owns phase transitions and turn-flow decisions; it
// never computes damage and never mutates hp/mp directly — all mutation
// flows through session.Session.ApplyActionResult.
//
// Grounded on engine/battle/action_mapper.py's ActionMapper dataclass
// (update(dt, controller) dispatching on self.phase) and
// _build_battle_outcome_once's idempotent-construction guard, reimplemented
// as an explicit Go enum-driven switch instead of Python's string-valued
// phase attribute.
package mapper

import (
	"github.com/fourwinds/battlecore/ai"
	"github.com/fourwinds/battlecore/command"
	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/resolver"
	"github.com/fourwinds/battlecore/router"
	"github.com/fourwinds/battlecore/rpgerr"
	"github.com/fourwinds/battlecore/session"
	"github.com/fourwinds/battlecore/skill"
	"github.com/fourwinds/battlecore/status"
	"github.com/fourwinds/battlecore/timeline"
)

// Phase is one state of the battle's phase state machine (spec.md §4.2).
type Phase string

// Phases, in their normal cycle order, plus the terminal BattleEnd.
const (
	PhaseWaitCTB       Phase = "wait_ctb"
	PhasePrepareActor  Phase = "prepare_actor"
	PhasePlayerCommand Phase = "player_command"
	PhaseEnemyCommand  Phase = "enemy_command"
	PhaseResolveAction Phase = "resolve_action"
	PhasePostResolve   Phase = "post_resolve"
	PhaseBattleEnd     Phase = "battle_end"
)

// TerminalState records how the battle ended, for BATTLE_END bookkeeping.
type TerminalState string

// Terminal states.
const (
	TerminalNone    TerminalState = ""
	TerminalVictory TerminalState = "victory"
	TerminalDefeat  TerminalState = "defeat"
	TerminalFlee    TerminalState = "flee"
)

// Collaborator is the external animation/UI boundary the mapper defers to
// (spec.md §4.2, §9's "BattleScenario trait with default no-op
// implementations"). Every method has a sensible zero-value default via
// NoopCollaborator.
type Collaborator interface {
	// Busy reports whether the UI is still animating and PREPARE_ACTOR
	// should hold the batch rather than consume it.
	Busy() bool
	// BeginPlayerTurn signals the UI to prompt for a player command.
	BeginPlayerTurn(actor core.CombatantID)
	// ActionRejected surfaces a soft-failure's coded reason (spec.md §7)
	// after RESOLVE_ACTION returns to PLAYER_COMMAND without consuming the
	// turn, so the UI can show the player why their command didn't land.
	ActionRejected(actor core.CombatantID, reason *rpgerr.Error)
}

// NoopCollaborator is never busy and does nothing on BeginPlayerTurn or
// ActionRejected.
type NoopCollaborator struct{}

func (NoopCollaborator) Busy() bool                                      { return false }
func (NoopCollaborator) BeginPlayerTurn(core.CombatantID)                {}
func (NoopCollaborator) ActionRejected(core.CombatantID, *rpgerr.Error) {}

// Mapper is the phase state machine driving one battle.
type Mapper struct {
	Session      *session.Session
	Timeline     *timeline.Timeline
	Router       *router.Router
	Collaborator Collaborator
	Skills       func(id core.SkillID) (skill.Definition, bool)
	SkillsForAI  func(actorID core.CombatantID) []skill.Definition
	ItemEffects  command.ItemEffectLookup
	Roll         func() float64
	FleeRoll     func() float64

	phase      Phase
	batch      []core.CombatantID
	current    core.CombatantID
	lastSide   core.Side
	cursor     map[core.Side]int
	sideOrder  []core.Side
	pending    command.Command
	hasPending bool
	bufferedAR *resolver.ActionResult

	terminal      TerminalState
	outcome       *session.BattleOutcome
	outcomeBuilt  bool
}

// New constructs a Mapper in WAIT_CTB.
func New(sess *session.Session, tl *timeline.Timeline, rtr *router.Router, collab Collaborator, skills func(core.SkillID) (skill.Definition, bool), skillsForAI func(core.CombatantID) []skill.Definition, itemEffects command.ItemEffectLookup, roll, fleeRoll func() float64) *Mapper {
	if collab == nil {
		collab = NoopCollaborator{}
	}
	return &Mapper{
		Session:      sess,
		Timeline:     tl,
		Router:       rtr,
		Collaborator: collab,
		Skills:       skills,
		SkillsForAI:  skillsForAI,
		ItemEffects:  itemEffects,
		Roll:         roll,
		FleeRoll:     fleeRoll,
		phase:        PhaseWaitCTB,
		cursor:       make(map[core.Side]int),
		sideOrder:    []core.Side{core.SideParty, core.SideEnemy},
	}
}

// Phase returns the mapper's current phase.
func (m *Mapper) Phase() Phase { return m.phase }

// Outcome returns the built BattleOutcome, if BATTLE_END has been reached.
func (m *Mapper) Outcome() (session.BattleOutcome, bool) {
	if m.outcome == nil {
		return session.BattleOutcome{}, false
	}
	return *m.outcome, true
}

// SubmitCommand deposits a player command while in PLAYER_COMMAND
// (spec.md §4.2: "on_player_command(cmd) deposit a BattleCommand").
// Deposits outside PLAYER_COMMAND are ignored.
func (m *Mapper) SubmitCommand(cmd command.Command) {
	if m.phase != PhasePlayerCommand {
		return
	}
	m.pending = cmd
	m.hasPending = true
	m.phase = PhaseResolveAction
}

// Update advances the mapper by one host tick (spec.md §4.2). In
// BATTLE_END it is idempotent.
func (m *Mapper) Update(dt float64) {
	switch m.phase {
	case PhaseWaitCTB:
		m.stepWaitCTB(dt)
	case PhasePrepareActor:
		m.stepPrepareActor()
	case PhasePlayerCommand:
		// Suspended: waits across frames for SubmitCommand.
	case PhaseEnemyCommand:
		m.stepEnemyCommand()
	case PhaseResolveAction:
		m.stepResolveAction()
	case PhasePostResolve:
		m.stepPostResolve()
	case PhaseBattleEnd:
		// Terminal; no-op.
	}
}

func (m *Mapper) stepWaitCTB(dt float64) {
	ready := m.Timeline.Update(dt)
	if len(ready) == 0 {
		return
	}
	var living []core.CombatantID
	for _, id := range ready {
		if c, ok := m.Session.Get(id); ok && c.Alive() {
			living = append(living, id)
		}
	}
	if len(living) == 0 {
		return
	}
	m.batch = living
	m.phase = PhasePrepareActor
}

func (m *Mapper) stepPrepareActor() {
	if m.Collaborator.Busy() {
		return
	}

	parties := map[core.Side][]core.CombatantID{}
	for _, id := range m.batch {
		c, ok := m.Session.Get(id)
		if !ok || !c.Alive() {
			continue
		}
		parties[c.Side] = append(parties[c.Side], id)
	}

	side := m.nextSide(parties)
	if side == "" {
		// Nothing left living in the batch; discard and wait for the next tick.
		m.batch = nil
		m.phase = PhaseWaitCTB
		return
	}

	ids := parties[side]
	idx := m.cursor[side] % len(ids)
	actor := ids[idx]
	m.cursor[side] = idx + 1
	m.lastSide = side
	m.current = actor
	m.batch = removeDone(m.batch, actor)

	if c, ok := m.Session.Get(actor); ok {
		c.Status.OnTurnStart(&status.Context{})
	}

	if side == core.SideParty {
		m.Collaborator.BeginPlayerTurn(actor)
		m.phase = PhasePlayerCommand
	} else {
		m.phase = PhaseEnemyCommand
	}
}

// nextSide alternates sides when both have ready actors, remembering the
// last side chosen (spec.md §4.2: "If both sides have ready actors,
// alternate").
func (m *Mapper) nextSide(parties map[core.Side][]core.CombatantID) core.Side {
	hasParty := len(parties[core.SideParty]) > 0
	hasEnemy := len(parties[core.SideEnemy]) > 0
	switch {
	case hasParty && hasEnemy:
		if m.lastSide == core.SideParty {
			return core.SideEnemy
		}
		return core.SideParty
	case hasParty:
		return core.SideParty
	case hasEnemy:
		return core.SideEnemy
	default:
		return ""
	}
}

func removeDone(batch []core.CombatantID, actor core.CombatantID) []core.CombatantID {
	out := batch[:0:0]
	for _, id := range batch {
		if id != actor {
			out = append(out, id)
		}
	}
	return out
}

func (m *Mapper) stepEnemyCommand() {
	var available []skill.Definition
	if m.SkillsForAI != nil {
		available = m.SkillsForAI(m.current)
	}
	cmd, err := ai.ChooseBasicAction(m.current, available, m.Session.Party)
	if err != nil {
		// Authoring error: the actor simply passes this turn rather than
		// crashing the battle loop. An empty, successful wait result goes
		// straight to POST_RESOLVE, which ticks statuses and resets the gauge.
		m.bufferedAR = &resolver.ActionResult{ActorID: m.current, CommandType: string(command.TypeWait), Success: true}
		m.phase = PhasePostResolve
		return
	}
	m.pending = cmd
	m.hasPending = true
	m.phase = PhaseResolveAction
}

func (m *Mapper) stepResolveAction() {
	if !m.hasPending {
		m.phase = PhasePlayerCommand
		return
	}
	cmd := m.pending
	m.hasPending = false

	ctx := command.Context{
		Combatants:  m.combatantViews(),
		Roll:        m.Roll,
		FleeRoll:    m.FleeRoll,
		CanEscape:   m.Session.CanEscape,
		Skills:      m.Skills,
		ItemEffects: m.ItemEffects,
	}
	ar, reason := command.Resolve(ctx, cmd)
	if ar == nil {
		// Soft failure: return to PLAYER_COMMAND without consuming the turn
		// (spec.md §4.2 RESOLVE_ACTION), surfacing the coded reason (if any)
		// to the UI collaborator.
		if reason != nil {
			m.Collaborator.ActionRejected(cmd.ActorID, reason)
		}
		m.phase = PhasePlayerCommand
		return
	}
	m.bufferedAR = ar
	m.phase = PhasePostResolve
}

func (m *Mapper) stepPostResolve() {
	ar := m.bufferedAR
	m.bufferedAR = nil

	m.Session.ApplyActionResult(ar)
	m.publish(ar)

	if ar != nil && ar.CommandType == string(command.TypeEquipWeapon) {
		if ar.Success {
			m.Session.EquipmentSwaps[ar.ActorID] = ar.ItemID
		}
		m.phase = PhasePlayerCommand
		return
	}

	if ar != nil && ar.CommandType == string(command.TypeFlee) && ar.Success {
		m.terminal = TerminalFlee
		m.buildOutcomeOnce(false, false)
		m.Timeline.Pause()
		m.phase = PhaseBattleEnd
		return
	}

	switch m.Session.CheckBattleOutcome() {
	case session.Victory:
		m.terminal = TerminalVictory
		m.buildOutcomeOnce(true, false)
		m.Timeline.Pause()
		m.phase = PhaseBattleEnd
		return
	case session.Defeat:
		m.terminal = TerminalDefeat
		m.buildOutcomeOnce(false, true)
		m.Timeline.Pause()
		m.phase = PhaseBattleEnd
		return
	}

	if c, ok := m.Session.Get(m.current); ok {
		events := c.Status.OnTurnEnd(&status.Context{})
		if len(events) > 0 {
			tickAR := resolver.FromStatusEvents(events)
			m.Session.ApplyActionResult(tickAR)
			m.publish(tickAR)
		}
	}

	m.Timeline.ResetGauge(m.current)
	m.current = ""
	m.phase = PhaseWaitCTB
}

// buildOutcomeOnce guards against double-construction (spec.md §8:
// "Idempotent finalization").
func (m *Mapper) buildOutcomeOnce(victory, defeat bool) {
	if m.outcomeBuilt {
		return
	}
	m.outcomeBuilt = true
	built := m.Session.BuildOutcome(victory, defeat, nil, nil)
	m.outcome = &built
}

// publish translates ar's per-target deltas into router events (spec.md
// §4.9, §6). A tick-originated TargetResult (DoT/HoT, or a retaliation)
// always publishes battle.status_tick regardless of HPDelta's sign — a
// positive regen tick is a status_tick, not a battle.heal. Everything else
// falls back to battle.heal / battle.hit by HPDelta's sign, and each
// applied/removed status publishes battle.status_apply / battle.status_expire.
func (m *Mapper) publish(ar *resolver.ActionResult) {
	if ar == nil || m.Router == nil {
		return
	}
	for _, tr := range ar.Targets {
		target, ok := m.Session.Get(tr.TargetID)
		isEnemy := ok && target.IsEnemy()

		switch {
		case tr.IsTick:
			fxKind := "dot"
			if tr.HPDelta > 0 {
				fxKind = "hot"
			}
			m.Router.Publish(router.TopicStatusTick, router.StatusTickPayload{
				Owner:    string(tr.TargetID),
				Status:   string(tr.TickStatusID),
				Amount:   tr.HPDelta,
				TickKind: tr.TickKind,
				Kind:     fxKind,
				Element:  string(tr.TickElement),
				IsEnemy:  isEnemy,
			})
		case tr.HPDelta > 0:
			m.Router.Publish(router.TopicHeal, router.HealPayload{
				Actor: string(ar.ActorID), Target: string(tr.TargetID),
				Heal: tr.HPDelta, Element: string(ar.Element), IsEnemy: isEnemy,
			})
		case tr.HPDelta < 0:
			m.Router.Publish(router.TopicHit, router.HitPayload{
				Actor: string(ar.ActorID), Target: string(tr.TargetID),
				Damage: -tr.HPDelta, Element: string(ar.Element), IsEnemy: isEnemy,
			})
		}

		for _, eff := range tr.StatusApplied {
			m.Router.Publish(router.TopicStatusApply, router.StatusApplyPayload{
				Owner: string(tr.TargetID), Status: string(eff.ID()), Kind: string(eff.Kind()), IsEnemy: isEnemy,
			})
		}
		for _, id := range tr.StatusRemoved {
			m.Router.Publish(router.TopicStatusExpire, router.StatusExpirePayload{
				Owner: string(tr.TargetID), Status: string(id), IsEnemy: isEnemy,
			})
		}
	}
}

func (m *Mapper) combatantViews() map[core.CombatantID]skill.CombatantView {
	out := make(map[core.CombatantID]skill.CombatantView)
	for _, c := range m.Session.Party {
		out[c.ID] = c
	}
	for _, c := range m.Session.Enemies {
		out[c.ID] = c
	}
	return out
}

