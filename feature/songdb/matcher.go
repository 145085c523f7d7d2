package songdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"table-pack-maker/core/database"
	"table-pack-maker/core/reconcile"
	"table-pack-maker/core/utils"

	"gorm.io/gorm"
)

// MaxBatchSize is the largest number of bound parameters sent in one IN clause.
// sqlite's historic limit is 999.
const MaxBatchSize = 900

// Matcher looks chart hashes up in the song table and groups the hits by folder.
type Matcher struct {
	db         *gorm.DB
	batchSize  int
	baseDir    string
	fileExists func(string) bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithBatchSize sets the number of hashes per query, capped at MaxBatchSize.
func WithBatchSize(n int) Option {
	return func(m *Matcher) {
		if n > 0 && n <= MaxBatchSize {
			m.batchSize = n
		}
	}
}

// WithBaseDir sets the directory relative song paths are resolved against.
func WithBaseDir(dir string) Option {
	return func(m *Matcher) {
		m.baseDir = dir
	}
}

// WithFileExists replaces the on-disk existence check.
func WithFileExists(fn func(string) bool) Option {
	return func(m *Matcher) {
		m.fileExists = fn
	}
}

// NewMatcher creates a Matcher over db.
func NewMatcher(db *gorm.DB, opts ...Option) *Matcher {
	m := &Matcher{
		db:         db,
		batchSize:  MaxBatchSize,
		fileExists: isRegularFile,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FindFolders returns, for every folder holding at least one of hashes, the hashes
// found in it. A row only counts when its path names a file that exists right now;
// stale rows are dropped and surface later as missing charts.
func (m *Matcher) FindFolders(ctx context.Context, hashes []string) (reconcile.Coverage, error) {
	coverage := make(reconcile.Coverage)

	err := utils.ForEachBatch(hashes, m.batchSize, func(batch []string) error {
		var rows []row
		err := m.db.WithContext(ctx).
			Model(&Song{}).
			Select("md5", "path").
			Where("md5 IN ?", batch).
			Find(&rows).Error
		if err != nil {
			return fmt.Errorf("failed to query song table: %w", err)
		}

		for _, r := range rows {
			if r.Path == nil || *r.Path == "" {
				continue
			}
			p := m.resolve(*r.Path)
			if !m.fileExists(p) {
				continue
			}
			coverage.Add(filepath.Dir(p), r.MD5)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return coverage, nil
}

func (m *Matcher) resolve(p string) string {
	if filepath.IsAbs(p) || m.baseDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(m.baseDir, p)
}

// VerifySchema checks that the song table exposes the columns matching needs.
func VerifySchema(db *gorm.DB) error {
	missing, err := database.HasColumns(db, Song{}.TableName(), RequiredColumns...)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %q lacks columns %v", Song{}.TableName(), missing)
	}
	return nil
}

func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
