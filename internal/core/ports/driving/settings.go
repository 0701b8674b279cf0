package driving

import "github.com/custodia-labs/cityfinder/internal/core/domain"

// SettingsService resolves typed settings from the config store.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (domain.Settings, error)

	// Save persists settings to the config store.
	Save(settings domain.Settings) error
}
