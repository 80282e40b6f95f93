package storage

import (
	"context"
	"fmt"
	"strings"

	"maktaba/internal/config"
)

const (
	// TypeLocal is the local filesystem backend.
	TypeLocal = "local"
	// TypeS3 is Amazon S3 or any S3-compatible backend.
	TypeS3 = "s3"
	// TypeOSS is Aliyun OSS.
	TypeOSS = "oss"
	// TypeCOS is Tencent COS.
	TypeCOS = "cos"
	// TypeR2 is Cloudflare R2.
	TypeR2 = "r2"
)

// SaveOptions controls how a backend persists a file.
//
// Category organises files on disk, Extension hints the preferred file
// extension (without the leading dot). When Extension is empty the backend
// picks a generic one.
type SaveOptions struct {
	Category     string
	Extension    string
	BaseName     string
	SkipIfExists bool
}

// Storage persists binary data and returns a backend-specific key (a
// relative path for the local backend, an object key for remote ones).
// Delete removes the underlying bytes; deleting a missing key is not an
// error.
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
	Delete(ctx context.Context, key string) error
}

// LocalBaseDirProvider is implemented by backends exposing a local directory
// that can be served over HTTP directly.
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage instantiates the backend selected by configuration.
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
