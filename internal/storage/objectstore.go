// Package storage abstracts the object store holding uploaded files. The
// rest of the system treats objects as opaque blobs referenced by key.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStore is the behavior ingest depends on.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

// BuildKey derives the storage key for an uploaded file:
// "{year}/{uuid}-{sanitized-filename}". Keys are opaque to everything
// downstream; the filename suffix only helps humans browsing the bucket.
func BuildKey(filename string) string {
	return fmt.Sprintf("%d/%s-%s", time.Now().UTC().Year(), uuid.New(), SanitizeFilename(filename))
}

// SanitizeFilename lowercases the base name and collapses anything outside
// [a-z0-9._-] to a dash.
func SanitizeFilename(filename string) string {
	base := strings.ToLower(filepath.Base(filename))
	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" || out == "." {
		return "upload"
	}
	return out
}
