package songdb

import (
	"path/filepath"

	"table-pack-maker/core/apperr"
	"table-pack-maker/core/database"

	"gorm.io/gorm"
)

// Open connects to the song database at dbPath and verifies its schema.
//
// With the sqlite driver dbPath must name an existing file. With the mysql driver
// dbPath, when set, overrides the configured database name.
func Open(cfg database.Config, dbPath string) (*gorm.DB, error) {
	if dbPath == "" {
		return nil, apperr.Validation("enter songdb path")
	}
	if cfg.IsSQLite() && !isRegularFile(dbPath) {
		return nil, apperr.Validation("songdb not found at %s", dbPath)
	}
	cfg.Name = dbPath

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, apperr.Validation("cannot open songdb at %s: %v", dbPath, err)
	}
	if err := VerifySchema(db); err != nil {
		_ = database.Close(db)
		return nil, apperr.Validation("%s is not a beatoraja song database: %v", dbPath, err)
	}
	return db, nil
}

// BaseDir returns the directory relative song paths are resolved against:
// songsRoot when set, otherwise the directory holding a sqlite song database.
func BaseDir(cfg database.Config, dbPath, songsRoot string) string {
	if songsRoot != "" {
		return songsRoot
	}
	if !cfg.IsSQLite() {
		return ""
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return filepath.Dir(dbPath)
	}
	return filepath.Dir(abs)
}
