package integrity

import (
	"context"
	"os"

	"table-pack-maker/core/apperr"
	"table-pack-maker/core/database"
	"table-pack-maker/core/storage"
	"table-pack-maker/feature/integrity/checks"

	"go.uber.org/zap"
)

// Service handles integrity checks.
type Service struct {
	client      storage.Client
	storageCfg  storage.Config
	dbCfg       database.Config
	destination string
	logger      *zap.Logger
}

// NewService creates a new integrity service. client may be nil when storage is
// disabled.
func NewService(client storage.Client, storageCfg storage.Config, dbCfg database.Config, destination string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:      client,
		storageCfg:  storageCfg,
		dbCfg:       dbCfg,
		destination: destination,
		logger:      logger,
	}
}

// CheckSongDB opens the song database at dbPath and compares its schema with the
// Song model. An empty dbPath falls back to the configured database name.
func (s *Service) CheckSongDB(dbPath string) (*checks.SongDBReport, error) {
	cfg := s.dbCfg
	if dbPath != "" {
		cfg.Name = dbPath
	}
	if cfg.Name == "" {
		return nil, apperr.Validation("enter songdb path")
	}
	if cfg.IsSQLite() && !isFile(cfg.Name) {
		return nil, apperr.Validation("songdb not found at %s", cfg.Name)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			s.logger.Warn("Failed to close song database", zap.Error(err))
		}
	}()

	return checks.CheckSongDB(db)
}

// CheckStorage verifies the publishing bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, apperr.Validation("storage is disabled")
	}
	return checks.CheckStorage(ctx, s.client, s.storageCfg.Bucket, s.storageCfg.Prefix)
}

// CheckDestination verifies packs can be written to the configured destination.
func (s *Service) CheckDestination() (*checks.DestinationReport, error) {
	return checks.CheckDestination(s.destination)
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
