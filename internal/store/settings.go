package store

import (
	"context"

	"github.com/trustlens/trustlens/internal/model"
)

// SettingsStore persists user settings under the settings key.
type SettingsStore struct {
	kv *KV
}

// NewSettingsStore creates a SettingsStore over the given store.
func NewSettingsStore(kv *KV) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// Load reads the current settings, falling back to the defaults when no
// settings have been persisted yet.
func (s *SettingsStore) Load(ctx context.Context) (model.Settings, error) {
	settings := model.DefaultSettings()
	if _, err := s.kv.Get(ctx, KeySettings, &settings); err != nil {
		return model.DefaultSettings(), err
	}
	return settings, nil
}

// Save persists the given settings, replacing the stored value.
func (s *SettingsStore) Save(ctx context.Context, settings model.Settings) error {
	return s.kv.Set(ctx, KeySettings, settings)
}
