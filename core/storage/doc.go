// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface holding the calls
// the pack publisher and the storage integrity check need. It supports both AWS S3
// and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider so publishing can
// be tested against core/storage/mocks.
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed (see EnsureBucket).
//   - PutObject: Uploads content (with size and options).
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// ObjectKey builds slash separated keys from the configured prefix and a pack's
// relative file paths.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
//	    return err
//	}
package storage
