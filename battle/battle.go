// Package battle wires Timeline, Mapper, Session, Registry, and Router
// together into the single entry point an enclosing game boots per
// encounter (spec.md §6: "Inbound: request from the enclosing system").
//
// Grounded on engine/battle's top-level encounter bootstrap (original
// source) and examples/simple_combat/main.go's construction style (wire
// concrete components together explicitly, no DI framework).
package battle

import (
	"github.com/fourwinds/battlecore/battlelog"
	"github.com/fourwinds/battlecore/combatant"
	"github.com/fourwinds/battlecore/command"
	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/mapper"
	"github.com/fourwinds/battlecore/registry"
	"github.com/fourwinds/battlecore/resolver"
	"github.com/fourwinds/battlecore/rngsrc"
	"github.com/fourwinds/battlecore/router"
	"github.com/fourwinds/battlecore/session"
	"github.com/fourwinds/battlecore/skill"
	"github.com/fourwinds/battlecore/timeline"
)

// Request boots a battle (spec.md §6).
type Request struct {
	RegionID     string
	EncounterID  string
	EnemyPartyID string
	Seed         uint64
	BackdropID   string
	CanEscape    bool
}

// CharacterInstance is one party member snapshot supplied by the enclosing
// system at boot (spec.md §6).
type CharacterInstance struct {
	ID    core.CombatantID
	Name  string
	Level int
	HP    int
	MP    int
	Stats combatant.Stats
}

// EnemySpawn is one enemy instance drawn from the registry for this
// encounter.
type EnemySpawn struct {
	TemplateID string
	ID         core.CombatantID
}

// Battle is a single running encounter.
type Battle struct {
	Session  *session.Session
	Timeline *timeline.Timeline
	Router   *router.Router
	Mapper   *mapper.Mapper
	Registry *registry.Registry
	RNG      rngsrc.Source
	Logger   battlelog.Logger
}

// New boots a Battle from req, a party snapshot, enemy spawns resolved
// against reg's enemy-template registry, and a collaborator for UI
// suspension points (spec.md §5).
func New(req Request, party []CharacterInstance, enemies []EnemySpawn, reg *registry.Registry, collab mapper.Collaborator, logger battlelog.Logger) *Battle {
	if logger == nil {
		logger = battlelog.Noop
	}
	rng := rngsrc.NewSeeded(req.Seed)

	partyCombatants := make([]*combatant.Combatant, 0, len(party))
	for _, p := range party {
		partyCombatants = append(partyCombatants, combatant.New(p.ID, p.Name, core.SideParty, p.HP, p.MP, p.Stats, logger))
	}

	enemyCombatants := make([]*combatant.Combatant, 0, len(enemies))
	enemySkillUsers := make(map[core.CombatantID]string, len(enemies))
	for _, e := range enemies {
		tmpl, ok := reg.EnemyTemplate(e.TemplateID)
		if !ok {
			continue
		}
		stats := combatant.Stats{Atk: tmpl.Stats.Atk, Mag: tmpl.Stats.Mag, Defense: tmpl.Stats.Defense, Mres: tmpl.Stats.Mres, Spd: tmpl.Stats.Spd}
		c := combatant.New(e.ID, tmpl.Name, core.SideEnemy, tmpl.Stats.HP, tmpl.Stats.MP, stats, logger)
		enemyCombatants = append(enemyCombatants, c)
		enemySkillUsers[e.ID] = tmpl.Name
	}

	sess := session.New(partyCombatants, enemyCombatants, req.CanEscape, logger)

	tl := timeline.New(func(id core.CombatantID) bool {
		c, ok := sess.Get(id)
		return !ok || !c.Alive()
	})
	for _, c := range partyCombatants {
		tl.Add(c.ID, float64(c.Base.Spd))
	}
	for _, c := range enemyCombatants {
		tl.Add(c.ID, float64(c.Base.Spd))
	}

	rtr := router.New(func(topic router.Topic, err error) {
		battlelog.Runtimef(logger, "router subscriber error on %s: %v", topic, err)
	})

	mp := mapper.New(sess, tl, rtr, collab, reg.Skill, func(actorID core.CombatantID) []skill.Definition {
		if name, ok := enemySkillUsers[actorID]; ok {
			return reg.SkillsForUser(name, "")
		}
		return nil
	}, adaptItemEffects(reg), rng.Float64, rng.Float64)

	return &Battle{
		Session:  sess,
		Timeline: tl,
		Router:   rtr,
		Mapper:   mp,
		Registry: reg,
		RNG:      rng,
		Logger:   logger,
	}
}

// adaptItemEffects bridges registry.ItemEffectFunc's any-typed signature to
// command.ItemEffectLookup's concrete one, since package registry cannot
// import package command (command already imports resolver and skill;
// registry importing command would cycle back through resolver/skill).
func adaptItemEffects(reg *registry.Registry) command.ItemEffectLookup {
	return func(id core.ItemEffectID) (func(command.Context, command.Command) *resolver.ActionResult, bool) {
		fn, ok := reg.ItemEffect(id)
		if !ok {
			return nil, false
		}
		return func(ctx command.Context, cmd command.Command) *resolver.ActionResult {
			return fn(ctx, cmd)
		}, true
	}
}
