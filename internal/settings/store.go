package settings

import (
	"encoding/json"
	"log/slog"

	"gitodo/internal/model"
	"gitodo/internal/store"
)

// settingsKey is the fixed storage key. The name is historical; it predates
// GitLab support and is kept for compatibility with existing stores.
const settingsKey = "githubSettings"

// Store persists the Settings object under a fixed key. All failures are
// logged and swallowed so the caller never needs error handling around it:
// Save degrades to a no-op, Load to nil.
type Store struct {
	kv     store.KeyValueStore
	logger *slog.Logger
}

// NewStore creates a settings store on top of kv. A nil logger falls back
// to slog.Default.
func NewStore(kv store.KeyValueStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{kv: kv, logger: logger}
}

// Save serializes cfg and overwrites the stored settings wholesale. There is
// no partial update.
func (s *Store) Save(cfg model.Settings) {
	data, err := json.Marshal(cfg)
	if err != nil {
		s.logger.Error("failed to serialize settings", "error", err)

		return
	}

	if err := s.kv.Set(settingsKey, string(data)); err != nil {
		s.logger.Error("failed to save settings", "error", err)
	}
}

// Load reads and normalizes the stored settings. It returns nil when
// nothing is stored or the blob is unreadable. A blob in a legacy schema is
// migrated and persisted immediately, so each legacy blob is migrated at
// most once; migration output is never itself classified as legacy, which
// rules out a persist loop.
func (s *Store) Load() *model.Settings {
	raw, ok, err := s.kv.Get(settingsKey)
	if err != nil {
		s.logger.Error("failed to read settings", "error", err)

		return nil
	}

	if !ok {
		return nil
	}

	if DetectFormat([]byte(raw)) == FormatLegacy {
		migrated, err := Migrate([]byte(raw))
		if err != nil {
			s.logger.Error("failed to migrate legacy settings", "error", err)

			return nil
		}

		s.logger.Info("migrated legacy settings to dual-provider format")
		s.Save(migrated)

		return &migrated
	}

	var cfg model.Settings
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		s.logger.Error("failed to parse stored settings", "error", err)

		return nil
	}

	cfg.Normalize()

	return &cfg
}
