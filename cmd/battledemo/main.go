// Command battledemo runs a tiny scripted encounter end-to-end, exercising
// spec.md §8 scenario 1 ("Basic hit"): Setia attacks TrailWolf with a
// fixed-variance RNG and prints the resulting hp.
//
// Grounded on examples/simple_combat/main.go's demo style: build concrete
// components directly, subscribe a log handler to the router, and drive
// the loop by hand instead of through a game engine.
package main

import (
	"fmt"

	"github.com/fourwinds/battlecore/combatant"
	"github.com/fourwinds/battlecore/command"
	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/registry"
	"github.com/fourwinds/battlecore/rngsrc"
	"github.com/fourwinds/battlecore/router"
	"github.com/fourwinds/battlecore/session"
	"github.com/fourwinds/battlecore/skill"
)

func main() {
	reg := registry.New()
	if err := reg.RegisterSkill(skill.Definition{
		Meta: skill.Meta{
			ID: "setia_attack_1", User: "setia", Category: "damage",
			Element: core.ElementNone, TargetType: skill.TargetSingleEnemy,
			MenuGroup: "attack",
		},
		Effects: []skill.Effect{
			skill.DamageEffect{
				DamageType: core.DamagePhysical,
				Scaling:    skill.ScalingAtk,
				Coeff:      1.0,
			},
		},
	}); err != nil {
		panic(err)
	}

	setia := combatant.New("setia", "Setia", core.SideParty, 120, 30,
		combatant.Stats{Atk: 16, Defense: 10}, nil)
	trailWolf := combatant.New("trail_wolf", "Trail Wolf", core.SideEnemy, 45, 10,
		combatant.Stats{Atk: 12, Defense: 6, Spd: 11}, nil)

	sess := session.New([]*combatant.Combatant{setia}, []*combatant.Combatant{trailWolf}, true, nil)

	rtr := router.New(nil)
	rtr.Subscribe(router.TopicHit, func(payload any) error {
		hit := payload.(router.HitPayload)
		fmt.Printf("battle.hit: %s -> %s for %d\n", hit.Actor, hit.Target, hit.Damage)
		return nil
	})

	fixed := rngsrc.NewFixed(0.5) // 0.5 mid-roll so ±10% variance nets to 0

	ctx := command.Context{
		Combatants: map[core.CombatantID]skill.CombatantView{
			setia.ID:     setia,
			trailWolf.ID: trailWolf,
		},
		Roll:      fixed.Float64,
		CanEscape: true,
		Skills:    reg.Skill,
	}

	cmd := command.Command{
		ActorID: "setia",
		Type:    command.TypeSkill,
		SkillID: "setia_attack_1",
		Targets: []core.CombatantID{"trail_wolf"},
		Source:  command.SourcePlayer,
	}

	ar, _ := command.Resolve(ctx, cmd)
	sess.ApplyActionResult(ar)
	for _, tr := range ar.Targets {
		rtr.Publish(router.TopicHit, router.HitPayload{
			Actor: string(ar.ActorID), Target: string(tr.TargetID), Damage: -tr.HPDelta,
		})
	}

	fmt.Printf("trail_wolf hp = %d (expected 33)\n", trailWolf.HP)
}
