package domain

// BlacklistKind identifies one of the four blacklist sets.
type BlacklistKind string

const (
	BlacklistTokens     BlacklistKind = "tokens"
	BlacklistDevelopers BlacklistKind = "developers"
	BlacklistFakeVolume BlacklistKind = "fake_volume_tokens"
	BlacklistBundled    BlacklistKind = "bundled_tokens"
)

// String returns the string representation of BlacklistKind.
func (k BlacklistKind) String() string {
	return string(k)
}

// IsValid checks if the kind is a known value.
func (k BlacklistKind) IsValid() bool {
	switch k {
	case BlacklistTokens, BlacklistDevelopers, BlacklistFakeVolume, BlacklistBundled:
		return true
	}
	return false
}

// SymbolKinds are the blacklist kinds keyed by token symbol.
// BlacklistDevelopers is keyed by developer address instead.
var SymbolKinds = []BlacklistKind{BlacklistTokens, BlacklistFakeVolume, BlacklistBundled}

// BlacklistEntry is one persisted blacklist row. Entries are only ever
// added, never removed.
type BlacklistEntry struct {
	Kind    BlacklistKind
	Value   string // symbol or developer address
	AddedAt int64  // Unix milliseconds
}
