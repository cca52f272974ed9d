package store

import (
	"context"
	"fmt"

	"github.com/trustlens/trustlens/internal/model"
)

// InitializeDefaults populates the store with the initial values for
// every storage key: an empty allow-list, an empty scan history, and
// the default settings.
//
// The routine is idempotent: a key that already exists is left
// untouched, so re-invocation never clobbers user data. It is intended
// to run once at install/process lifecycle start, but calling it again
// is harmless.
func InitializeDefaults(ctx context.Context, kv *KV) error {
	defaults := []struct {
		key   string
		value any
	}{
		{KeySafeList, []string{}},
		{KeyScanHistory, []model.HistoryRecord{}},
		{KeySettings, model.DefaultSettings()},
	}

	for _, d := range defaults {
		exists, err := kv.Has(ctx, d.key)
		if err != nil {
			return fmt.Errorf("failed to check default for %q: %w", d.key, err)
		}
		if exists {
			continue
		}
		if err := kv.Set(ctx, d.key, d.value); err != nil {
			return fmt.Errorf("failed to initialize %q: %w", d.key, err)
		}
	}
	return nil
}
