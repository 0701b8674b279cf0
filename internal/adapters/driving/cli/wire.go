package cli

import (
	"fmt"

	"github.com/custodia-labs/cityfinder/internal/adapters/driven/loader"
	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driven"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driving"
	"github.com/custodia-labs/cityfinder/internal/core/services"
)

// Services groups the driving ports the commands use.
type Services struct {
	Settings  driving.SettingsService
	Dataset   driving.DatasetService
	Search    driving.SearchService
	Debouncer driving.SearchDebouncer

	// ConfigPath is where settings are read from and saved to.
	ConfigPath string
}

// NewServices resolves settings from store, lets override adjust them and
// wires the dataset, search and debounce services. No data is loaded.
func NewServices(store driven.ConfigStore, override func(*domain.Settings) bool) (*Services, domain.Settings, error) {
	settingsService := services.NewSettingsService(store)

	resolved, err := settingsService.Get()
	if override != nil && override(&resolved) {
		err = resolved.Validate()
	}
	if err != nil {
		return nil, resolved, err
	}

	datasetLoader, err := loader.New(resolved.Dataset)
	if err != nil {
		return nil, resolved, fmt.Errorf("creating dataset loader: %w", err)
	}

	dataset := services.NewDatasetService(datasetLoader)
	search := services.NewSearchService(dataset, resolved.Search.NearestCount)

	return &Services{
		Settings:   settingsService,
		Dataset:    dataset,
		Search:     search,
		Debouncer:  services.NewDebouncer(search, resolved.Search.Debounce),
		ConfigPath: store.Path(),
	}, resolved, nil
}
