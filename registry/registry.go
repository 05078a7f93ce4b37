// Package registry implements the process-wide content registries of
// spec.md §6: skill definitions, enemy templates, enemy packs, items, and
// item effects, all populated once before battle begins and treated as
// immutable thereafter.
//
// Grounded on
// github.com/KirkDiggler/rpg-toolkit/mechanics/features's Registry
// (mutex-guarded map, duplicate-id rejection), generalized from one
// feature registry to the five content kinds spec.md §6 names, and on
// spec.md §9's "idempotent loading is preserved by first-write-wins
// insertion" design note for enemy packs specifically.
package registry

import (
	"fmt"
	"sync"

	"github.com/fourwinds/battlecore/core"
	"github.com/fourwinds/battlecore/resolver"
	"github.com/fourwinds/battlecore/rpgerr"
	"github.com/fourwinds/battlecore/skill"
)

// EnemyTemplate is a registered enemy archetype (spec.md §6).
type EnemyTemplate struct {
	ID      core.ItemID // reused as a generic string-id type; enemy ids are opaque strings like item ids
	Name    string
	Element core.Element
	Stats   struct {
		Atk, Mag, Defense, Mres, Spd, HP, MP int
	}
	Tags map[string]bool
}

// ItemDef is a registered item (spec.md §6).
type ItemDef struct {
	ID         core.ItemID
	Name       string
	Kind       string // e.g. "consumable", "weapon"
	Targeting  skill.TargetType
	EffectID   core.ItemEffectID
	WeaponTags map[string]bool
	AtkBonus   int
	MagBonus   int
}

// ItemEffectFunc is the item-effect registry's value type (spec.md §6:
// "effect_id → fn(ctx) → ActionResult?"). The ctx/cmd parameters are typed
// as `any` here to avoid an import cycle with package command (which
// itself needs to look up item effects); command.Context and
// command.Command satisfy this signature via a thin adapter at the call
// site.
type ItemEffectFunc func(ctx any, cmd any) *resolver.ActionResult

// Registry holds every content kind for one running process (or one test).
// All Register* methods are safe for concurrent use, though battle content
// is conventionally loaded once at startup before any battle reads it.
type Registry struct {
	mu sync.RWMutex

	skills    map[core.SkillID]skill.Definition
	enemies   map[string]EnemyTemplate
	items     map[core.ItemID]ItemDef
	effects   map[core.ItemEffectID]ItemEffectFunc
	loadedPacks map[string]string // packID -> sourceTag of the loader that won
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{
		skills:      make(map[core.SkillID]skill.Definition),
		enemies:     make(map[string]EnemyTemplate),
		items:       make(map[core.ItemID]ItemDef),
		effects:     make(map[core.ItemEffectID]ItemEffectFunc),
		loadedPacks: make(map[string]string),
	}
}

// RegisterSkill adds a skill definition, keyed by its own meta.ID. Rejects a
// second registration under an id already present (spec.md §7 authoring
// errors).
func (r *Registry) RegisterSkill(def skill.Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.skills[def.Meta.ID]; exists {
		return rpgerr.New(rpgerr.CodeAlreadyExists,
			fmt.Sprintf("skill %q already registered", def.Meta.ID),
			rpgerr.WithMeta("skill_id", def.Meta.ID))
	}
	r.skills[def.Meta.ID] = def
	return nil
}

// Skill looks up a skill definition by id. Satisfies command.SkillLookup.
func (r *Registry) Skill(id core.SkillID) (skill.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.skills[id]
	return def, ok
}

// SkillsForUser returns every registered skill whose Meta.User matches
// user, optionally filtered further by menuGroup (empty string means any
// group) — spec.md §6: "filtered by user name and a menu_group".
func (r *Registry) SkillsForUser(user, menuGroup string) []skill.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []skill.Definition
	for _, def := range r.skills {
		if def.Meta.User != user {
			continue
		}
		if menuGroup != "" && def.Meta.MenuGroup != menuGroup {
			continue
		}
		out = append(out, def)
	}
	return out
}

// RegisterEnemyTemplate adds an enemy template, keyed by id. Rejects a
// second registration under an id already present (spec.md §7 authoring
// errors).
func (r *Registry) RegisterEnemyTemplate(t EnemyTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.enemies[string(t.ID)]; exists {
		return rpgerr.New(rpgerr.CodeAlreadyExists,
			fmt.Sprintf("enemy template %q already registered", t.ID),
			rpgerr.WithMeta("enemy_id", t.ID))
	}
	r.enemies[string(t.ID)] = t
	return nil
}

// EnemyTemplate looks up an enemy template by id.
func (r *Registry) EnemyTemplate(id string) (EnemyTemplate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.enemies[id]
	return t, ok
}

// LoadEnemyPack registers a bundle of enemy templates and their skills
// under packID, idempotently: a pack already loaded by the same sourceTag
// is a no-op; loaded by a different sourceTag is an authoring error
// (spec.md §6 "enemy packs: idempotent loaders"; §7 "Authoring errors:
// duplicate enemy-pack ids with mismatched register function raise at
// registration time"). sourceTag conventionally names the loader function
// (e.g. its package-qualified name), standing in for Go's lack of function
// value equality.
func (r *Registry) LoadEnemyPack(packID, sourceTag string, load func(*Registry)) error {
	r.mu.Lock()
	if existing, ok := r.loadedPacks[packID]; ok {
		r.mu.Unlock()
		if existing != sourceTag {
			return rpgerr.New(rpgerr.CodeAlreadyExists,
				fmt.Sprintf("pack %q already loaded by %q, got %q", packID, existing, sourceTag),
				rpgerr.WithCause(core.ErrDuplicatePack),
				rpgerr.WithMeta("pack_id", packID))
		}
		return nil
	}
	r.loadedPacks[packID] = sourceTag
	r.mu.Unlock()

	if load == nil {
		return rpgerr.New(rpgerr.CodeInvalidArgument,
			fmt.Sprintf("pack %q has no loader", packID),
			rpgerr.WithMeta("pack_id", packID))
	}
	load(r)
	return nil
}

// RegisterItem adds an item definition, keyed by id. Rejects a second
// registration under an id already present (spec.md §7 authoring errors).
func (r *Registry) RegisterItem(item ItemDef) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[item.ID]; exists {
		return rpgerr.New(rpgerr.CodeAlreadyExists,
			fmt.Sprintf("item %q already registered", item.ID),
			rpgerr.WithMeta("item_id", item.ID))
	}
	r.items[item.ID] = item
	return nil
}

// Item looks up an item definition by id.
func (r *Registry) Item(id core.ItemID) (ItemDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	return item, ok
}

// RegisterItemEffect adds an item-effect function, keyed by id.
func (r *Registry) RegisterItemEffect(id core.ItemEffectID, fn ItemEffectFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects[id] = fn
}

// ItemEffect looks up an item-effect function by id.
func (r *Registry) ItemEffect(id core.ItemEffectID) (ItemEffectFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.effects[id]
	return fn, ok
}
