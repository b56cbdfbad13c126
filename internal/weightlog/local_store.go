package weightlog

import (
	"context"
	"fmt"
	"sort"

	"github.com/ascentfit/ascent/internal/localstore"
)

// LocalEntries keeps weight entries in the keyed local store, the guest
// fallback. De-duplicated by date, same as the postgres natural key.
type LocalEntries struct {
	store *localstore.Store
}

func NewLocalEntries(store *localstore.Store) *LocalEntries {
	return &LocalEntries{
		store: store,
	}
}

func (le *LocalEntries) Upsert(ctx context.Context, owner string, e Entry) error {
	var entries []Entry
	if _, err := le.store.Get(ctx, localstore.FeatureProgress, owner, &entries); err != nil {
		return fmt.Errorf("read local weight entries: %w", err)
	}

	kept := entries[:0]
	for _, existing := range entries {
		if existing.Day.String() != e.Day.String() {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, e)
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Day.String() > kept[j].Day.String()
	})

	return le.store.Put(ctx, localstore.FeatureProgress, owner, kept)
}

func (le *LocalEntries) List(ctx context.Context, owner string) ([]Entry, error) {
	var entries []Entry
	if _, err := le.store.Get(ctx, localstore.FeatureProgress, owner, &entries); err != nil {
		return nil, fmt.Errorf("read local weight entries: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Day.String() > entries[j].Day.String()
	})
	return entries, nil
}
