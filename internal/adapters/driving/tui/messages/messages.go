// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/plaza/internal/core/domain"
)

// SearchCompleted reports the first page of a new search session.
type SearchCompleted struct {
	SessionID string
	Added     int
	Err       error
}

// MoreLoaded reports a further page of an existing session.
type MoreLoaded struct {
	SessionID string
	Added     int
	Err       error
}

// PreferencesChanged carries preferences published outside the TUI,
// for example by the config file watcher.
type PreferencesChanged struct {
	Preferences domain.SearchPreferences
}

// DefaultsSaved reports the outcome of persisting the current preferences.
type DefaultsSaved struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
