// Package storage keeps archive copies of published videos in Google Cloud
// Storage. Archival is best-effort; the publish pipeline never fails on it.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
)

const archivePrefix = "published"

type Archive struct {
	client *storage.Client
	bucket string
}

func NewArchive(ctx context.Context, bucket string) (*Archive, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}

	return &Archive{client: client, bucket: bucket}, nil
}

func (a *Archive) Close() error {
	return a.client.Close()
}

// Save streams the local file to gs://<bucket>/published/<videoID><ext>.
func (a *Archive) Save(ctx context.Context, localPath, videoID string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open local file: %w", err)
	}
	defer func() { _ = f.Close() }()

	object := fmt.Sprintf("%s/%s%s", archivePrefix, videoID, filepath.Ext(localPath))
	w := a.client.Bucket(a.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "video/mp4"

	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("upload archive copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize archive copy: %w", err)
	}
	return nil
}
