package core

import "errors"

// Sentinel errors shared across the battle core. Components wrap these with
// rpgerr for additional context rather than inventing new error values per
// package.
var (
	// ErrUnknownCombatant marks a data-integrity failure: a command or
	// ActionResult referenced a combatant id the session has no record of.
	ErrUnknownCombatant = errors.New("unknown combatant id")

	// ErrUnknownSkill marks a data-integrity failure: a command referenced a
	// skill id missing from the registry.
	ErrUnknownSkill = errors.New("unknown skill id")

	// ErrUnknownItem marks a data-integrity failure: a command referenced an
	// item id missing from the registry.
	ErrUnknownItem = errors.New("unknown item id")

	// ErrUnknownStatus marks a data-integrity failure: a status id was named
	// for removal that the owner's status stack does not hold.
	ErrUnknownStatus = errors.New("unknown status id")

	// ErrInsufficientMP is a soft-failure: the actor does not have enough MP
	// for the selected skill.
	ErrInsufficientMP = errors.New("insufficient mp")

	// ErrNoValidTargets is a soft-failure: a command resolved to zero living
	// targets.
	ErrNoValidTargets = errors.New("no valid targets")

	// ErrFleeNotAllowed is a soft-failure: the battle flags forbid escape.
	ErrFleeNotAllowed = errors.New("flee not allowed")

	// ErrDuplicatePack is an authoring error: an enemy/skill pack id was
	// registered twice with mismatched loaders.
	ErrDuplicatePack = errors.New("duplicate pack registration")
)
