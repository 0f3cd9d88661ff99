// Package storage persists uploaded media and documents and returns the
// public URL recorded on content rows.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder for DecodeConfig
	_ "image/jpeg" // register decoder for DecodeConfig
	_ "image/png"  // register decoder for DecodeConfig
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register decoder for DecodeConfig
)

// DefaultMaxSize caps a single upload.
const DefaultMaxSize int64 = 10 << 20

// Sentinel errors for uploads.
var (
	ErrEmptyFile       = errors.New("storage: file is empty")
	ErrFileTooLarge    = errors.New("storage: file exceeds size limit")
	ErrUnsupportedType = errors.New("storage: file type not allowed")
	ErrUploadFailed    = errors.New("storage: upload failed")
	ErrInvalidConfig   = errors.New("storage: invalid configuration")
)

// Kind restricts the content accepted for a field.
type Kind int

const (
	// KindImage accepts raster images.
	KindImage Kind = iota
	// KindDocument accepts office documents, PDFs and images.
	KindDocument
)

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var documentTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
	"application/zip": ".zip",
	"text/plain":      ".txt",
}

// Object is an upload ready to be stored.
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// FileInfo describes a stored upload.
type FileInfo struct {
	Key          string
	URL          string
	ContentType  string
	Size         int64
	OriginalName string
	Width        int
	Height       int
}

// Backend writes prepared objects and maps keys to public URLs.
type Backend interface {
	Write(ctx context.Context, obj Object) error
	URL(key string) string
}

// Storage validates uploads and hands them to a Backend.
type Storage struct {
	backend Backend
	maxSize int64
	now     func() time.Time
}

// New wraps backend. A non-positive maxSize selects DefaultMaxSize.
func New(backend Backend, maxSize int64) *Storage {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Storage{backend: backend, maxSize: maxSize, now: time.Now}
}

// Save sniffs r, checks it against kind and stores it under folder. Image
// uploads also report their pixel dimensions.
func (s *Storage) Save(ctx context.Context, folder, originalName string, r io.Reader, kind Kind) (*FileInfo, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}

	contentType, ext, err := detect(data, kind)
	if err != nil {
		return nil, err
	}

	info := &FileInfo{
		ContentType:  contentType,
		Size:         int64(len(data)),
		OriginalName: path.Base(strings.ReplaceAll(originalName, "\\", "/")),
	}

	if _, ok := imageTypes[contentType]; ok {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
		}
		info.Width, info.Height = cfg.Width, cfg.Height
	}

	info.Key = s.buildKey(folder, ext)
	if err := s.backend.Write(ctx, Object{Key: info.Key, ContentType: contentType, Data: data}); err != nil {
		return nil, err
	}
	info.URL = s.backend.URL(info.Key)
	return info, nil
}

// buildKey names an object {folder}/{yyyymmdd}-{uuid}{ext}.
func (s *Storage) buildKey(folder, ext string) string {
	name := fmt.Sprintf("%s-%s%s", s.now().Format("20060102"), uuid.New().String(), ext)
	folder = sanitizeFolder(folder)
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

func detect(data []byte, kind Kind) (string, string, error) {
	mt := mimetype.Detect(data)
	contentType := mt.String()
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}

	if ext, ok := imageTypes[contentType]; ok {
		return contentType, ext, nil
	}
	if kind == KindDocument {
		if ext, ok := documentTypes[contentType]; ok {
			return contentType, ext, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
}

func sanitizeFolder(folder string) string {
	folder = strings.Trim(strings.TrimSpace(folder), "/\\")
	folder = strings.ReplaceAll(folder, "..", "")
	var b strings.Builder
	for _, r := range folder {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}
