package status

import (
	"math"

	"github.com/fourwinds/battlecore/core"
)

// StatBuff is a generic stat buff/debuff: it declares multipliers and
// additives that fold into the owner's StatModifiers aggregate and is
// otherwise inert. It also optionally carries per-element vulnerability
// additives (e.g. Burn's "+5% fire damage taken", Frostbite's "+5% ice
// damage taken") applied in the incoming-damage pipeline, since those are
// damage-pipeline effects rather than stat-aggregate effects but are
// authored alongside the same stat buff in the original content (e.g.
// Frostbite bundles a SPD debuff with an ice vulnerability).
//
// Grounded on engine/battle/status/effects.py's StatBuffStatus dataclass.
type StatBuff struct {
	Base
	Mults              map[string]float64
	Adds               map[string]float64
	ElementVulnerable  map[core.Element]float64 // additive % damage taken, keyed by element
}

// NewStatBuff constructs a StatBuff. mults/adds use the StatModifiers field
// naming convention ("def_mult", "spd_add", ...).
func NewStatBuff(id core.StatusID, name string, duration int, dispellable, stackable bool, maxStacks int, kind FXKind, mults, adds map[string]float64, vulnerable map[core.Element]float64, tags ...string) *StatBuff {
	return &StatBuff{
		Base:              NewBase(id, name, duration, dispellable, stackable, maxStacks, kind, core.ElementNone, tags...),
		Mults:             mults,
		Adds:              adds,
		ElementVulnerable: vulnerable,
	}
}

// ModifyStatModifiers multiplies/adds this buff's contribution into mods.
func (s *StatBuff) ModifyStatModifiers(mods *StatModifiers) {
	for key, factor := range s.Mults {
		setStatField(mods, key, getStatField(mods, key)*factor, true)
	}
	for key, inc := range s.Adds {
		setStatField(mods, key, getStatField(mods, key)+inc, false)
	}
}

// OnBeforeOwnerTakesDamage applies this status's elemental vulnerability,
// if any, to matching-element incoming damage. Non-vulnerability stat
// buffs (the common case) pass amount through unmodified via Base's
// default — this override only has an effect when ElementVulnerable is
// non-empty.
func (s *StatBuff) OnBeforeOwnerTakesDamage(owner core.CombatantID, amount int, element core.Element, damageType core.DamageType, ctx *Context) (int, int, []Event) {
	if pct, ok := s.ElementVulnerable[element]; ok && amount > 0 {
		amount = int(math.Round(float64(amount) * (1.0 + pct)))
	}
	return amount, 0, nil
}

func getStatField(m *StatModifiers, key string) float64 {
	switch key {
	case "atk_mult":
		return m.AtkMult
	case "def_mult":
		return m.DefMult
	case "mag_mult":
		return m.MagMult
	case "mres_mult":
		return m.MresMult
	case "spd_mult":
		return m.SpdMult
	case "atk_add":
		return m.AtkAdd
	case "def_add":
		return m.DefAdd
	case "mag_add":
		return m.MagAdd
	case "mres_add":
		return m.MresAdd
	case "spd_add":
		return m.SpdAdd
	}
	return 0
}

func setStatField(m *StatModifiers, key string, value float64, _ bool) {
	switch key {
	case "atk_mult":
		m.AtkMult = value
	case "def_mult":
		m.DefMult = value
	case "mag_mult":
		m.MagMult = value
	case "mres_mult":
		m.MresMult = value
	case "spd_mult":
		m.SpdMult = value
	case "atk_add":
		m.AtkAdd = value
	case "def_add":
		m.DefAdd = value
	case "mag_add":
		m.MagAdd = value
	case "mres_add":
		m.MresAdd = value
	case "spd_add":
		m.SpdAdd = value
	}
}

// Regen is a heal-over-time status. It never mutates HP directly; it emits
// a DamageTickEvent with a positive amount at end-of-turn, which the
// resolver later turns into an ActionResult applied through the session
// gate (spec.md §4.7: "Does not heal directly").
//
// Grounded on engine/battle/status/effects.py's RegenStatus.
type Regen struct {
	Base
	HealPerTurn int
	TickKind    string // e.g. "regen"
}

// NewRegen constructs a Regen status.
func NewRegen(id core.StatusID, name string, duration int, dispellable, stackable bool, healPerTurn int, tickKind string) *Regen {
	return &Regen{
		Base:        NewBase(id, name, duration, dispellable, stackable, 0, FXHoT, core.ElementNone, "hot"),
		HealPerTurn: healPerTurn,
		TickKind:    tickKind,
	}
}

// OnTurnEnd emits one positive DamageTickEvent per turn, if HealPerTurn > 0.
func (r *Regen) OnTurnEnd(owner core.CombatantID, ctx *Context) []Event {
	if r.HealPerTurn <= 0 {
		return nil
	}
	kind := r.TickKind
	if kind == "" {
		kind = "regen"
	}
	return []Event{DamageTickEvent{
		Target:         owner,
		Amount:         r.HealPerTurn,
		Kind:           kind,
		DamageType:     core.DamageNone,
		Element:        r.Element(),
		SourceStatusID: r.ID(),
	}}
}

// DamageOverTime is a damage-over-time status (burn, poison, bleed). Its
// TickAmount is fixed when the status is constructed: the caller supplies
// it (spec.md scenario 3: Burn's tick amount is floor(caster MAG * 0.25)),
// and it is not recomputed from the afflicted target's own stats at tick
// time.
//
// Grounded on engine/battle/status/effects.py's DamageOverTimeStatus.
type DamageOverTime struct {
	Base
	TickAmount int // magnitude, always positive; the event carries the sign
	TickKind   string
	DamageType core.DamageType
}

// NewDamageOverTime constructs a DoT status. element/damageType describe
// what kind of damage the tick deals (used for FX and any
// damage-type-specific resistances a future status might add).
func NewDamageOverTime(id core.StatusID, name string, duration int, dispellable, stackable bool, maxStacks int, tickAmount int, element core.Element, damageType core.DamageType, tickKind string) *DamageOverTime {
	return &DamageOverTime{
		Base:       NewBase(id, name, duration, dispellable, stackable, maxStacks, FXDoT, element, "dot"),
		TickAmount: tickAmount,
		TickKind:   tickKind,
		DamageType: damageType,
	}
}

// OnTurnEnd emits one negative DamageTickEvent per turn, if TickAmount > 0.
func (d *DamageOverTime) OnTurnEnd(owner core.CombatantID, ctx *Context) []Event {
	if d.TickAmount <= 0 {
		return nil
	}
	return []Event{DamageTickEvent{
		Target:         owner,
		Amount:         -d.TickAmount,
		Kind:           d.TickKind,
		DamageType:     d.DamageType,
		Element:        d.Element(),
		SourceStatusID: d.ID(),
	}}
}
