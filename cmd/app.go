package cmd

import (
	"fmt"

	"table-pack-maker/core/config"
	"table-pack-maker/core/logger"
	"table-pack-maker/core/storage"
	"table-pack-maker/feature/pack"
	"table-pack-maker/feature/table"

	"go.uber.org/zap"
)

var configDir string

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding the .env file")
}

// bootstrap loads configuration and builds the logger every command starts from.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// newStorageClient returns nil when publishing is disabled.
func newStorageClient(cfg *config.Config) (storage.Client, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, nil
}

// newPackService wires the table loader, the builder and, when storage is
// enabled, the publisher.
func newPackService(cfg *config.Config, logg *zap.Logger) (*pack.Service, error) {
	var opts []pack.ServiceOption

	client, err := newStorageClient(cfg)
	if err != nil {
		return nil, err
	}
	if client != nil {
		opts = append(opts, pack.WithPublisher(pack.NewPublisher(client, cfg.Storage, logg)))
	}

	loader := table.NewLoader(cfg.Table)
	return pack.NewService(cfg.Pack, cfg.Database, loader, logg, opts...), nil
}
