// Package blob stores uploaded image bytes and hands back the public path
// under which they are served.
package blob

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("file too large")
)

// allowedTypes is the upload allow-list keyed by MIME type.
var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// Store persists one image and returns the path clients use to fetch it.
type Store interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Validate checks the MIME type against the allow-list and the size against
// maxBytes. maxBytes <= 0 disables the size check.
func Validate(contentType string, size, maxBytes int64) error {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if _, ok := allowedTypes[ct]; !ok {
		return ErrUnsupportedType
	}
	if maxBytes > 0 && size > maxBytes {
		return ErrTooLarge
	}
	return nil
}

// NewName builds a collision-free file name "hero-<uuid><ext>" keeping the
// extension of the original upload.
func NewName(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	return "hero-" + uuid.NewString() + ext
}
