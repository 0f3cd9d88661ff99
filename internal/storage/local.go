package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalBackend stores uploads below a directory served as static files.
type LocalBackend struct {
	dir     string
	urlPath string
}

// NewLocal creates a LocalBackend rooted at dir and served under urlPath.
func NewLocal(dir, urlPath string) *LocalBackend {
	urlPath = "/" + strings.Trim(strings.TrimSpace(urlPath), "/")
	return &LocalBackend{dir: dir, urlPath: urlPath}
}

// Write saves obj beneath the upload directory.
func (b *LocalBackend) Write(_ context.Context, obj Object) error {
	target := filepath.Join(b.dir, filepath.FromSlash(obj.Key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("%w: create upload dir: %v", ErrUploadFailed, err)
	}
	if err := os.WriteFile(target, obj.Data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return nil
}

// URL returns the public path of key.
func (b *LocalBackend) URL(key string) string {
	return strings.TrimRight(b.urlPath, "/") + "/" + key
}

// Dir returns the upload directory.
func (b *LocalBackend) Dir() string {
	return b.dir
}

// URLPath returns the URL prefix the directory is served under.
func (b *LocalBackend) URLPath() string {
	return b.urlPath
}
