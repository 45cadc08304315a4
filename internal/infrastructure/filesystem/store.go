package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	appmedia "photoframe/internal/application/media"
	"photoframe/internal/domain/media"

	"github.com/google/uuid"
)

// Store keeps transcoded blobs on disk and hands out blob: URLs for them.
type Store struct {
	BlobDir string
}

// NewStore creates filesystem adapter with the configured blob root.
func NewStore(blobDir string) *Store {
	return &Store{BlobDir: blobDir}
}

// EnsureDirs creates filesystem roots used by service.
func (s *Store) EnsureDirs() error {
	return os.MkdirAll(s.BlobDir, 0o755)
}

// Create writes blob under a fresh id and returns its blob: URL.
func (s *Store) Create(ctx context.Context, blob appmedia.Blob) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(blob.Data) == 0 {
		return "", errors.New("empty blob")
	}
	if err := s.EnsureDirs(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	full := s.blobPath(id, extFor(blob.ContentType))
	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, blob.Data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return media.BlobScheme + id, nil
}

// Open resolves a blob id or blob: URL to its file path.
func (s *Store) Open(raw string) (string, error) {
	id, err := media.NormalizeBlobID(raw)
	if err != nil {
		return "", err
	}
	matches, err := filepath.Glob(filepath.Join(s.BlobDir, id+".*"))
	if err != nil {
		return "", err
	}
	for _, full := range matches {
		if strings.HasSuffix(full, ".tmp") || !isWithinDir(s.BlobDir, full) {
			continue
		}
		return full, nil
	}
	return "", fmt.Errorf("blob %s: %w", id, os.ErrNotExist)
}

// PathForURL maps a blob: URL to its file path.
func (s *Store) PathForURL(url string) (string, bool) {
	if !strings.HasPrefix(url, media.BlobScheme) {
		return "", false
	}
	full, err := s.Open(url)
	if err != nil {
		return "", false
	}
	return full, true
}

// ReadURL returns the bytes behind a blob: URL.
func (s *Store) ReadURL(url string) ([]byte, error) {
	full, err := s.Open(url)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

// Delete removes a blob. Missing blobs are not an error.
func (s *Store) Delete(raw string) error {
	full, err := s.Open(raw)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return os.Remove(full)
}

func (s *Store) blobPath(id, ext string) string {
	return filepath.Join(s.BlobDir, id+ext)
}

func extFor(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	default:
		return ".mp4"
	}
}

func isWithinDir(basePath, targetPath string) bool {
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return false
	}
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(baseAbs, targetAbs)
	if err != nil {
		return false
	}
	sep := string(os.PathSeparator)
	if rel == ".." || strings.HasPrefix(rel, ".."+sep) {
		return false
	}
	return true
}
