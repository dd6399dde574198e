// Package storage holds the binary file collaborator. The core only ever
// sees the URL an object ends up at, never the bytes after upload.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spec-kit/event-registration/internal/config"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// ObjectStore persists uploaded binaries and returns a public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

// LocalStore writes objects under a configured directory served at a base
// URL.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore validates the storage configuration. Missing location
// settings are a deployment fault, not a client one.
func NewLocalStore(cfg config.StorageConfig) (*LocalStore, error) {
	if cfg.Dir == "" {
		return nil, apperrors.NewMisconfiguration("STORAGE_DIR is not set")
	}
	if cfg.BaseURL == "" {
		return nil, apperrors.NewMisconfiguration("STORAGE_BASE_URL is not set")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, apperrors.NewMisconfiguration(fmt.Sprintf("cannot create storage dir: %v", err))
	}
	return &LocalStore{dir: cfg.Dir, baseURL: strings.TrimRight(cfg.BaseURL, "/")}, nil
}

// Put writes the object and returns its URL.
func (s *LocalStore) Put(_ context.Context, key string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.Clean("/"+key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + strings.TrimLeft(key, "/"), nil
}
