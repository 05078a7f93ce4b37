package registry_test

import (
	"errors"
	"testing"

	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/registry"
	"github.com/fourwinds/battlecore/resolver"
	"github.com/fourwinds/battlecore/rpgerr"
	"github.com/fourwinds/battlecore/skill"
)

func TestRegisterAndLookupSkill(t *testing.T) {
	reg := registry.New()
	def := skill.Definition{Meta: skill.Meta{ID: "setia_attack_1", User: "setia", MenuGroup: "attacks"}}
	reg.RegisterSkill(def)

	got, ok := reg.Skill("setia_attack_1")
	if !ok || got.Meta.ID != "setia_attack_1" {
		t.Fatalf("expected skill lookup to succeed, got %+v ok=%v", got, ok)
	}
	if _, ok := reg.Skill("missing"); ok {
		t.Fatal("expected missing skill lookup to fail")
	}
}

func TestSkillsForUserFiltersByUserAndMenuGroup(t *testing.T) {
	reg := registry.New()
	reg.RegisterSkill(skill.Definition{Meta: skill.Meta{ID: "setia_attack_1", User: "setia", MenuGroup: "attacks"}})
	reg.RegisterSkill(skill.Definition{Meta: skill.Meta{ID: "setia_wind_strike_1", User: "setia", MenuGroup: "spells"}})
	reg.RegisterSkill(skill.Definition{Meta: skill.Meta{ID: "kaira_ember_bolt_1", User: "kaira", MenuGroup: "spells"}})

	all := reg.SkillsForUser("setia", "")
	if len(all) != 2 {
		t.Fatalf("expected 2 setia skills, got %d", len(all))
	}
	spells := reg.SkillsForUser("setia", "spells")
	if len(spells) != 1 || spells[0].Meta.ID != "setia_wind_strike_1" {
		t.Fatalf("expected only wind_strike in spells group, got %+v", spells)
	}
}

func TestLoadEnemyPackIsIdempotentForSameSourceTag(t *testing.T) {
	reg := registry.New()
	calls := 0
	loader := func(r *registry.Registry) {
		calls++
		r.RegisterEnemyTemplate(registry.EnemyTemplate{ID: "trail_wolf"})
	}

	if err := reg.LoadEnemyPack("forest_pack", "packs.forest.Load", loader); err != nil {
		t.Fatalf("unexpected error on first load: %v", err)
	}
	if err := reg.LoadEnemyPack("forest_pack", "packs.forest.Load", loader); err != nil {
		t.Fatalf("unexpected error on idempotent reload: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected loader invoked exactly once, got %d", calls)
	}
	if _, ok := reg.EnemyTemplate("trail_wolf"); !ok {
		t.Fatal("expected trail_wolf registered")
	}
}

func TestLoadEnemyPackRejectsMismatchedLoader(t *testing.T) {
	reg := registry.New()
	noop := func(*registry.Registry) {}

	if err := reg.LoadEnemyPack("forest_pack", "packs.forest.Load", noop); err != nil {
		t.Fatalf("unexpected error on first load: %v", err)
	}
	err := reg.LoadEnemyPack("forest_pack", "packs.forest.LoadV2", noop)
	if err == nil {
		t.Fatal("expected an error when the same pack id is loaded by a different source")
	}
	if !errors.Is(err, core.ErrDuplicatePack) {
		t.Fatalf("expected wrapped ErrDuplicatePack, got %v", err)
	}
}

func TestRegisterSkillRejectsDuplicateID(t *testing.T) {
	reg := registry.New()
	def := skill.Definition{Meta: skill.Meta{ID: "setia_attack_1", User: "setia"}}
	if err := reg.RegisterSkill(def); err != nil {
		t.Fatalf("unexpected error on first registration: %v", err)
	}
	err := reg.RegisterSkill(def)
	if err == nil {
		t.Fatal("expected an error re-registering the same skill id")
	}
	if !rpgerr.Is(err, rpgerr.CodeAlreadyExists) {
		t.Fatalf("expected CodeAlreadyExists, got %v", rpgerr.CodeOf(err))
	}
}

func TestRegisterEnemyTemplateRejectsDuplicateID(t *testing.T) {
	reg := registry.New()
	tmpl := registry.EnemyTemplate{ID: "trail_wolf"}
	if err := reg.RegisterEnemyTemplate(tmpl); err != nil {
		t.Fatalf("unexpected error on first registration: %v", err)
	}
	if err := reg.RegisterEnemyTemplate(tmpl); !rpgerr.Is(err, rpgerr.CodeAlreadyExists) {
		t.Fatalf("expected CodeAlreadyExists, got %v", err)
	}
}

func TestRegisterItemRejectsDuplicateID(t *testing.T) {
	reg := registry.New()
	item := registry.ItemDef{ID: "potion_minor", Name: "Minor Potion"}
	if err := reg.RegisterItem(item); err != nil {
		t.Fatalf("unexpected error on first registration: %v", err)
	}
	if err := reg.RegisterItem(item); !rpgerr.Is(err, rpgerr.CodeAlreadyExists) {
		t.Fatalf("expected CodeAlreadyExists, got %v", err)
	}
}

func TestRegisterAndLookupItemAndEffect(t *testing.T) {
	reg := registry.New()
	reg.RegisterItem(registry.ItemDef{ID: "potion_minor", Name: "Minor Potion", Kind: "consumable"})
	reg.RegisterItemEffect("potion_minor_effect", func(ctx any, cmd any) *resolver.ActionResult {
		return &resolver.ActionResult{Success: true}
	})

	if _, ok := reg.Item("potion_minor"); !ok {
		t.Fatal("expected potion_minor registered")
	}
	if _, ok := reg.Item("missing"); ok {
		t.Fatal("expected missing item lookup to fail")
	}
	fn, ok := reg.ItemEffect("potion_minor_effect")
	if !ok {
		t.Fatal("expected potion_minor_effect registered")
	}
	if ar := fn(nil, nil); ar == nil || !ar.Success {
		t.Fatalf("expected effect fn to report success, got %+v", ar)
	}
}
