package files

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gojobot/internal/lib/sl"
)

// GridStore keeps artifacts in Mongo GridFS. References are the stored
// filenames, same scheme as DiskStore, so backends are interchangeable.
type GridStore struct {
	bucket Bucket
	log    *slog.Logger

	now func() time.Time
}

// Bucket is the GridFS surface GridStore needs, implemented by the
// repository layer.
type Bucket interface {
	UploadArtifact(ctx context.Context, ref string, category string, r io.Reader) error
	DownloadArtifact(ctx context.Context, ref string) (io.ReadCloser, error)
	DeleteArtifact(ctx context.Context, ref string) error
}

func NewGridStore(bucket Bucket, logger *slog.Logger) *GridStore {
	return &GridStore{
		bucket: bucket,
		log:    logger.With(sl.Module("files")),
		now:    time.Now,
	}
}

func (s *GridStore) Save(ctx context.Context, category Category, name string, data []byte) (string, error) {
	if err := checkUpload(category, name, len(data)); err != nil {
		return "", err
	}

	ref := fmt.Sprintf("%s_%d_%s", category, s.now().UnixMilli(), sanitizeName(name))
	if err := s.bucket.UploadArtifact(ctx, ref, string(category), bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("gridfs save: %w", err)
	}

	s.log.Info("artifact stored", "ref", ref, "size", len(data))
	return ref, nil
}

func (s *GridStore) Open(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	r, err := s.bucket.DownloadArtifact(ctx, ref)
	if err != nil {
		return nil, "", err
	}
	return r, ref, nil
}

func (s *GridStore) Delete(ctx context.Context, ref string) error {
	return s.bucket.DeleteArtifact(ctx, ref)
}
