// Command plaza searches and ranks a local cache of social events.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/plaza/internal/adapters/driven/config/file"
	"github.com/custodia-labs/plaza/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/plaza/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/plaza/internal/adapters/driving/cli"
	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driven"
	"github.com/custodia-labs/plaza/internal/core/services"
	"github.com/custodia-labs/plaza/internal/core/store"
	"github.com/custodia-labs/plaza/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	envHome    = "PLAZA_HOME"
	envStorage = "PLAZA_STORAGE"
)

// backend is the storage a run reads from and writes to.
// configPath is empty when there is no file to watch.
type backend struct {
	config     driven.ConfigStore
	configPath string
	events     driven.EventStore
	profiles   driven.ProfileIndex
	contents   driven.ContentIndex
	graph      driven.FollowGraph
	close      func() error
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	storage, err := openBackend(os.Getenv(envHome), os.Getenv(envStorage))
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.close(); err != nil {
			logger.Warn("closing storage: %v", err)
		}
	}()

	prefs := store.New(domain.DefaultSearchPreferences())
	settingsService := services.NewSettingsService(storage.config, prefs)
	if settings, err := settingsService.Get(); err == nil {
		prefs.Set(settings.Preferences())
	}

	var watchConfig func(context.Context) error
	if storage.configPath != "" {
		watchConfig = file.NewWatcher(storage.configPath, func() {
			if err := settingsService.Refresh(); err != nil {
				logger.Warn("%v", err)
			}
		}).Run
	}

	trustService := services.NewTrustService(storage.graph)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search:      services.NewSearchService(storage.profiles, storage.contents, trustService),
		Settings:    settingsService,
		Import:      services.NewImportService(storage.events),
		Trust:       trustService,
		Preferences: prefs,
		WatchConfig: watchConfig,
	})

	return cli.Execute(ctx)
}

// openBackend opens the TOML config and SQLite under home. When kind is
// "memory" both are in-memory and start empty, so nothing touches disk.
func openBackend(home, kind string) (*backend, error) {
	switch kind {
	case "memory":
		logger.Debug("using in-memory storage")
		events := memory.NewEventStore()
		return &backend{
			config:   memory.NewConfigStore(),
			events:   events,
			profiles: events,
			contents: events,
			graph:    events,
			close:    func() error { return nil },
		}, nil

	case "", "sqlite":
		configStore, err := file.NewConfigStore(home)
		if err != nil {
			return nil, fmt.Errorf("opening config: %w", err)
		}
		dataDir := ""
		if home != "" {
			dataDir = filepath.Join(home, "data")
		}
		db, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening storage: %w", err)
		}
		logger.Debug("using %s", db.Path())
		return &backend{
			config:     configStore,
			configPath: configStore.Path(),
			events:     db.EventStore(),
			profiles:   db.ProfileIndex(),
			contents:   db.ContentIndex(),
			graph:      db.FollowGraph(),
			close:      db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown storage %q (want sqlite or memory)", domain.ErrInvalidInput, kind)
	}
}
