package files

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// MaxSize is the largest artifact accepted from users, 10 MiB.
const MaxSize = 10 << 20

var (
	ErrTooLarge       = errors.New("file too large")
	ErrTypeNotAllowed = errors.New("file type not allowed")
	ErrNotFound       = errors.New("file not found")
)

// Category names what an uploaded artifact is for. It picks the extension
// allow-list and prefixes the stored reference.
type Category string

const (
	CategoryNationalID Category = "id"
	CategoryPhoto      Category = "photo"
	CategoryEducation  Category = "education"
	CategoryExperience Category = "experience"
	CategoryPayment    Category = "payment"
)

var allowedExt = map[Category][]string{
	CategoryNationalID: {".jpg", ".jpeg", ".png", ".pdf"},
	CategoryPhoto:      {".jpg", ".jpeg", ".png"},
	CategoryEducation:  {".pdf", ".doc", ".docx"},
	CategoryExperience: {".pdf", ".doc", ".docx"},
	CategoryPayment:    {".jpg", ".jpeg", ".png", ".pdf"},
}

// Store keeps user-uploaded artifacts. Save validates size and type and
// returns an opaque reference; Open streams a stored artifact back.
// Delete is idempotent, removing a missing artifact is not an error.
type Store interface {
	Save(ctx context.Context, category Category, name string, data []byte) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, ref string) error
}

// checkUpload validates size and extension for a category.
func checkUpload(category Category, name string, size int) error {
	if size > MaxSize {
		return ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range allowedExt[category] {
		if ext == allowed {
			return nil
		}
	}
	return ErrTypeNotAllowed
}

// sanitizeName strips path separators and whitespace so the original
// filename can be embedded in a reference.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
