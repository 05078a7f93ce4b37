package skill

import (
	"github.com/fourwinds/battlecore/core"
)

// DefaultVariancePct is the default ±variance applied to every damage roll
// (spec.md §4.4: "Apply ±variance (default 10%, uniform)").
const DefaultVariancePct = 0.10

// ScalingKind selects how a damage effect's base value is derived from the
// attacker's effective stats (spec.md §4.4, "Scaling variants").
type ScalingKind string

// Scaling kinds, in the priority order spec.md §4.4 describes: explicit
// atk/mag scaling first, then the legacy mag_ratio, then a flat value.
const (
	ScalingAtk  ScalingKind = "atk"
	ScalingMag  ScalingKind = "mag"
	ScalingFlat ScalingKind = ""
)

// computeBaseDamage implements spec.md §4.4's three-tier scaling priority:
// explicit atk/mag scaling, then the legacy mag_ratio, then a flat value.
// The result stays a real number; spec.md §8 scenario 3 and 6 both carry
// the fractional base_damage through to the raw/variance stage rather than
// flooring it early (e.g. 17·0.85 = 14.45 feeds raw = 14.45 − 2.4 = 12.05,
// not 14 − 2.4). Only the final computeDamage result is clamped to an
// integer.
func computeBaseDamage(scaling ScalingKind, coeff, flat, magRatio float64, hasMagRatio bool, effAtk, effMag float64) float64 {
	switch scaling {
	case ScalingAtk:
		return effAtk*coeff + flat
	case ScalingMag:
		return effMag*coeff + flat
	default:
		if hasMagRatio {
			return effMag*magRatio + flat
		}
		return flat
	}
}

// computeDamage implements the shared damage model (spec.md §4.4):
// raw = base_damage − defensive·0.6, ±variance, clamped to an integer ≥ 1.
// defensive is the defender's effective defense (physical) or mres (magic).
func computeDamage(base float64, defensive float64, variancePct float64, roll func() float64) int {
	raw := base - defensive*0.6
	factor := 1.0
	if roll != nil && variancePct > 0 {
		factor = 1.0 + (roll()*2-1)*variancePct
	}
	raw *= factor
	result := int(raw)
	if result < 1 {
		result = 1
	}
	return result
}

// effectiveAxis picks the offensive/defensive stat pair for a damage_type
// (spec.md §4.4: "Choose offensive/defensive axis by damage_type").
func effectiveAxis(damageType core.DamageType, atk, def, mag, mres float64) (offensive, defensive float64) {
	if damageType == core.DamageMagic {
		return mag, mres
	}
	return atk, def
}

// DotLandChance implements spec.md §4.4's DoT landing curve:
// p = clamp(0.70 + 0.03·(att_stat − def_stat), 0.10, 0.95).
func DotLandChance(attStat, defStat float64) float64 {
	p := 0.70 + 0.03*(attStat-defStat)
	if p < 0.10 {
		return 0.10
	}
	if p > 0.95 {
		return 0.95
	}
	return p
}
