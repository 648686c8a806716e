package classify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dexwatch/internal/config"
	"dexwatch/internal/domain"
	"dexwatch/internal/storage"
)

// Blacklists is the shared denylist state. Membership is monotonic for
// the life of the process: entries are only added, never removed. Every
// addition is written through to the store so a restart resumes with
// the accumulated sets.
type Blacklists struct {
	mu    sync.RWMutex
	sets  map[domain.BlacklistKind]map[string]struct{}
	store storage.BlacklistStore
}

// NewBlacklists creates blacklist state seeded from config. The seeds
// are not written to the store; only runtime additions are.
func NewBlacklists(seeds config.BlacklistSeeds, store storage.BlacklistStore) *Blacklists {
	b := &Blacklists{
		sets: map[domain.BlacklistKind]map[string]struct{}{
			domain.BlacklistTokens:     {},
			domain.BlacklistDevelopers: {},
			domain.BlacklistFakeVolume: {},
			domain.BlacklistBundled:    {},
		},
		store: store,
	}
	for _, v := range seeds.Tokens {
		b.sets[domain.BlacklistTokens][v] = struct{}{}
	}
	for _, v := range seeds.Developers {
		b.sets[domain.BlacklistDevelopers][v] = struct{}{}
	}
	for _, v := range seeds.FakeVolumeTokens {
		b.sets[domain.BlacklistFakeVolume][v] = struct{}{}
	}
	for _, v := range seeds.BundledTokens {
		b.sets[domain.BlacklistBundled][v] = struct{}{}
	}
	return b
}

// Load merges persisted entries into the in-memory sets. Called once at
// startup, before the first cycle.
func (b *Blacklists) Load(ctx context.Context) error {
	entries, err := b.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load blacklists: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range entries {
		set, ok := b.sets[e.Kind]
		if !ok {
			continue
		}
		set[e.Value] = struct{}{}
	}
	return nil
}

// Add inserts a value into one set and persists it. Idempotent: adding
// a present value is a no-op that still succeeds.
func (b *Blacklists) Add(ctx context.Context, kind domain.BlacklistKind, value string) error {
	if value == "" || !kind.IsValid() {
		return storage.ErrInvalidInput
	}

	b.mu.Lock()
	if _, exists := b.sets[kind][value]; exists {
		b.mu.Unlock()
		return nil
	}
	b.sets[kind][value] = struct{}{}
	b.mu.Unlock()

	entry := &domain.BlacklistEntry{
		Kind:    kind,
		Value:   value,
		AddedAt: time.Now().UnixMilli(),
	}
	if err := b.store.Add(ctx, entry); err != nil {
		return fmt.Errorf("persist blacklist entry: %w", err)
	}
	return nil
}

// Contains reports membership of value in one set.
func (b *Blacklists) Contains(kind domain.BlacklistKind, value string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.sets[kind][value]
	return ok
}

// ContainsSymbol reports whether the symbol is in any symbol-keyed set
// (tokens, fake_volume_tokens, bundled_tokens).
func (b *Blacklists) ContainsSymbol(symbol string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, kind := range domain.SymbolKinds {
		if _, ok := b.sets[kind][symbol]; ok {
			return true
		}
	}
	return false
}

// Size returns the number of entries in one set.
func (b *Blacklists) Size(kind domain.BlacklistKind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sets[kind])
}
