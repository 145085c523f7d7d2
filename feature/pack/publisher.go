package pack

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"table-pack-maker/core/apperr"
	"table-pack-maker/core/observer"
	"table-pack-maker/core/storage"

	"github.com/dustin/go-humanize"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// PublishReport summarises an upload.
type PublishReport struct {
	Bucket  string `json:"bucket"`
	Prefix  string `json:"prefix"`
	Objects int    `json:"objects"`
	Bytes   int64  `json:"bytes"`
}

// Publisher uploads built packs to object storage.
type Publisher struct {
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(client storage.Client, cfg storage.Config, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{client: client, cfg: cfg, logger: logger}
}

// Publish uploads every regular file below dir to
// <bucket>/<prefix>/<base of dir>/<relative path>, creating the bucket if needed.
func (p *Publisher) Publish(ctx context.Context, dir string, obs observer.Observer) (*PublishReport, error) {
	if obs == nil {
		obs = observer.Nop{}
	}
	if err := storage.EnsureBucket(ctx, p.client, p.cfg.Bucket, p.cfg.Region); err != nil {
		return nil, apperr.Copy("publish pack", err)
	}

	packName := filepath.Base(dir)
	report := &PublishReport{
		Bucket: p.cfg.Bucket,
		Prefix: storage.ObjectKey(p.cfg.Prefix, packName),
	}
	obs.Status(fmt.Sprintf("Publishing pack to %s/%s...", report.Bucket, report.Prefix))

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := storage.ObjectKey(p.cfg.Prefix, packName, filepath.ToSlash(rel))

		n, err := p.upload(ctx, path, key)
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		report.Objects++
		report.Bytes += n
		obs.Log(fmt.Sprintf("UPLOADED: %s (%s)", key, humanize.IBytes(uint64(n))), false)
		return nil
	})
	if err != nil {
		p.logger.Error("Pack publish failed", zap.String("dir", dir), zap.Error(err))
		return report, apperr.Copy("publish pack", err)
	}

	p.logger.Info("Pack published",
		zap.String("bucket", report.Bucket),
		zap.String("prefix", report.Prefix),
		zap.Int("objects", report.Objects),
		zap.Int64("bytes", report.Bytes),
	)
	obs.Status(fmt.Sprintf("Published %d files (%s) to %s/%s.",
		report.Objects, humanize.IBytes(uint64(report.Bytes)), report.Bucket, report.Prefix))
	return report, nil
}

func (p *Publisher) upload(ctx context.Context, path, key string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = p.client.PutObject(ctx, p.cfg.Bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
