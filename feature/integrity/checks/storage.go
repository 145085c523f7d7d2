package checks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"table-pack-maker/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport is the result of a storage reachability check.
type StorageReport struct {
	Bucket string `json:"bucket"`
	Prefix string `json:"prefix"`
	Exists bool   `json:"exists"`
	// Packs lists the pack directories already published under Prefix.
	Packs []string `json:"packs"`
}

// CheckStorage verifies the bucket is reachable and lists published packs.
// A missing bucket is not an error; publishing creates it.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	report := &StorageReport{Bucket: bucket, Prefix: strings.Trim(prefix, "/"), Packs: []string{}}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.Exists = exists
	if !exists {
		return report, nil
	}

	listPrefix := ""
	if report.Prefix != "" {
		listPrefix = report.Prefix + "/"
	}
	opts := minio.ListObjectsOptions{
		Prefix:    listPrefix,
		Recursive: false,
	}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", bucket, obj.Err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(obj.Key, listPrefix), "/")
		if name != "" && strings.HasSuffix(obj.Key, "/") {
			report.Packs = append(report.Packs, name)
		}
	}
	return report, nil
}

// DestinationReport is the result of a pack destination check.
type DestinationReport struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Writable bool   `json:"writable"`
	// Packs counts the existing pack directories.
	Packs int    `json:"packs"`
	Error string `json:"error,omitempty"`
}

// CheckDestination verifies packs can be created under dir. A missing dir is
// fine as long as its nearest existing ancestor is writable.
func CheckDestination(dir string) (*DestinationReport, error) {
	if dir == "" {
		return nil, fmt.Errorf("pack destination is empty")
	}
	report := &DestinationReport{Path: dir}

	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			report.Error = fmt.Sprintf("%s is not a directory", dir)
			return report, nil
		}
		report.Exists = true
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	probe := dir
	if !report.Exists {
		probe = nearestExisting(dir)
	}
	if err := probeWritable(probe); err != nil {
		report.Error = err.Error()
	} else {
		report.Writable = true
	}

	if report.Exists {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				report.Packs++
			}
		}
	}
	return report, nil
}

func nearestExisting(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "."
	}
	for {
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return abs
		}
		abs = parent
	}
}

func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".tpm-probe-*")
	if err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
