package pack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"table-pack-maker/core/apperr"
	"table-pack-maker/core/observer"
)

// Builder copies selected chart folders into a new pack directory.
type Builder struct {
	cfg      Config
	now      func() time.Time
	copyTree func(src, dst string) error
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithClock replaces time.Now for pack directory naming.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

// WithCopyFunc replaces CopyTree.
func WithCopyFunc(fn func(src, dst string) error) BuilderOption {
	return func(b *Builder) {
		b.copyTree = fn
	}
}

// NewBuilder creates a Builder.
func NewBuilder(cfg Config, opts ...BuilderOption) *Builder {
	b := &Builder{
		cfg:      cfg,
		now:      time.Now,
		copyTree: CopyTree,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PackDir returns the pack directory for a build started at t.
func (b *Builder) PackDir(t time.Time) string {
	dest := b.cfg.Destination
	if dest == "" {
		dest = "packs"
	}
	name := b.cfg.Name
	if name == "" {
		name = "pack"
	}
	return filepath.Join(dest, fmt.Sprintf("%d_%s", t.Unix(), name))
}

// Build creates the pack directory and copies folders into it in source-path
// order. The first failed copy aborts the build; folders already copied stay.
func (b *Builder) Build(ctx context.Context, folders []string, obs observer.Observer) (string, error) {
	if obs == nil {
		obs = observer.Nop{}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	packDir := b.PackDir(b.now())
	if err := os.MkdirAll(packDir, 0o755); err != nil {
		return "", apperr.Copy("create pack directory", err)
	}

	targets := TargetNames(folders)
	obs.Status(fmt.Sprintf("Creating pack in %s...", packDir))

	for i, t := range targets {
		dst := filepath.Join(packDir, t.Name)
		obs.Log(fmt.Sprintf("COPYING (%d/%d): %s -> %s", i+1, len(targets), t.Source, dst), true)
		if err := b.copyTree(t.Source, dst); err != nil {
			return packDir, apperr.Copy("copy folder", fmt.Errorf("%s -> %s: %w", t.Source, dst, err))
		}
	}

	obs.Status(fmt.Sprintf("Pack created in: %s", packDir))
	return packDir, nil
}
