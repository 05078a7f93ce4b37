package session

// LogEntry is one line of xp or loot history the session accumulates
// during a battle (spec.md §3: Session's xp_log/loot_log).
type LogEntry string

// Outcome built at BATTLE_END (spec.md §4.10). The mapper constructs
// exactly one of these per battle and hands it to the enclosing caller
// alongside the session's Gains buffer.
type BattleOutcome struct {
	Victory    bool
	Defeat     bool
	XPLog      []LogEntry
	LootLog    []LogEntry
	SetFlags   map[string]bool
	ClearFlags map[string]bool
}

// LogXP appends an xp_log entry.
func (s *Session) LogXP(entry LogEntry) { s.xpLog = append(s.xpLog, entry) }

// LogLoot appends a loot_log entry.
func (s *Session) LogLoot(entry LogEntry) { s.lootLog = append(s.lootLog, entry) }

// BuildOutcome constructs a BattleOutcome from the session's current state.
// Calling it more than once returns value-equal results (spec.md §8:
// "Idempotent finalization"); callers (the mapper) are responsible for only
// calling it once per battle and caching the result.
func (s *Session) BuildOutcome(victory, defeat bool, setFlags, clearFlags map[string]bool) BattleOutcome {
	return BattleOutcome{
		Victory:    victory,
		Defeat:     defeat,
		XPLog:      append([]LogEntry(nil), s.xpLog...),
		LootLog:    append([]LogEntry(nil), s.lootLog...),
		SetFlags:   copyFlagSet(setFlags),
		ClearFlags: copyFlagSet(clearFlags),
	}
}

func copyFlagSet(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
