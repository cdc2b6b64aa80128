package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gojobot/internal/lib/sl"
)

// DiskStore keeps artifacts as plain files under a single directory.
// References are the stored filenames, "category_timestamp_name".
type DiskStore struct {
	dir string
	log *slog.Logger

	now func() time.Time
}

func NewDiskStore(dir string, logger *slog.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{
		dir: dir,
		log: logger.With(sl.Module("files")),
		now: time.Now,
	}, nil
}

func (s *DiskStore) Save(_ context.Context, category Category, name string, data []byte) (string, error) {
	if err := checkUpload(category, name, len(data)); err != nil {
		return "", err
	}

	ref := fmt.Sprintf("%s_%d_%s", category, s.now().UnixMilli(), sanitizeName(name))
	if err := os.WriteFile(filepath.Join(s.dir, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}

	s.log.Info("artifact stored", "ref", ref, "size", len(data))
	return ref, nil
}

func (s *DiskStore) Open(_ context.Context, ref string) (io.ReadCloser, string, error) {
	// refs never contain separators, reject anything that resolves elsewhere
	if filepath.Base(ref) != ref {
		return nil, "", ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("open artifact: %w", err)
	}
	return f, ref, nil
}

func (s *DiskStore) Delete(_ context.Context, ref string) error {
	if filepath.Base(ref) != ref {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, ref))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}
