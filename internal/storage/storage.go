// Package storage persists uploaded identity documents.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/config"
	"github.com/google/uuid"
)

// MaxUploadSize caps a single uploaded document.
const MaxUploadSize = 16 * 1024 * 1024

var (
	ErrDisallowedType = errors.New("file type not allowed")
	ErrTooLarge       = errors.New("file too large")
	ErrNotFound       = errors.New("object not found")
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Store saves and removes objects addressed by key.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
}

// SanitizeFilename keeps only the base name with unsafe characters replaced.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "file"
	}
	return name
}

func AllowedFile(name string) bool {
	return allowedExtensions[strings.ToLower(path.Ext(name))]
}

// Key builds a unique object key for an upload under prefix.
func Key(prefix, filename string) string {
	return prefix + "/" + uuid.NewString() + "_" + SanitizeFilename(filename)
}

// CheckUpload validates an upload before it is stored.
func CheckUpload(filename string, size int64) error {
	if !AllowedFile(filename) {
		return fmt.Errorf("%w: %s", ErrDisallowedType, SanitizeFilename(filename))
	}
	if size > MaxUploadSize {
		return ErrTooLarge
	}
	return nil
}

// FromConfig builds the store selected by STORAGE_DRIVER.
func FromConfig(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case "s3":
		return NewS3Store(ctx, S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case "", "local":
		return NewLocalStore(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
