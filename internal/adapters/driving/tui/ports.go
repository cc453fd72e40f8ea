// Package tui provides an interactive terminal user interface for plaza.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
	"github.com/custodia-labs/plaza/internal/core/store"
)

// Ports aggregates the driving ports and shared state used by the TUI.
type Ports struct {
	// Search opens search sessions.
	Search driving.SearchService

	// Settings loads and saves default preferences. Optional.
	Settings driving.SettingsService

	// Preferences is the shared strategy and category selection. When nil
	// the TUI keeps a private store seeded from Settings.
	Preferences *store.Store[domain.SearchPreferences]
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}

// preferences returns the shared store, creating one when none was given.
func (p *Ports) preferences() *store.Store[domain.SearchPreferences] {
	if p.Preferences != nil {
		return p.Preferences
	}
	initial := domain.DefaultSearchPreferences()
	if p.Settings != nil {
		if settings, err := p.Settings.Get(); err == nil && settings != nil {
			initial = settings.Preferences()
		}
	}
	return store.New(initial)
}
