package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedMedia signals an upload with a disallowed file extension.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// DefaultCoverName is the well-known filename of the shared default cover
// inside the storage root. The file itself must never be deleted.
const DefaultCoverName = "default-cover.jpg"

var audioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".ogg": true,
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsAllowedAudio reports whether the filename carries an allowed audio extension.
func IsAllowedAudio(filename string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(filename))]
}

// IsAllowedImage reports whether the filename carries an allowed image extension.
func IsAllowedImage(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// GenerateFileName produces a collision-resistant stored name for an upload.
// The original filename is discarded except for its extension.
func GenerateFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}

// EnsureDir creates the directory if it does not exist.
func EnsureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", path, err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check directory %s: %w", path, err)
	}
	return nil
}

// SaveFile writes the contents of src to destPath, creating the parent
// directory on first use.
func SaveFile(src io.Reader, destPath string) error {
	if err := EnsureDir(filepath.Dir(destPath)); err != nil {
		return err
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to write file %s: %w", destPath, err)
	}
	return nil
}

// RemoveFile unlinks a stored file. A missing file is not an error.
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file %s: %w", path, err)
	}
	return nil
}

// IsDefaultCover reports whether a serve path points at the shared default cover.
func IsDefaultCover(servePath string) bool {
	return filepath.Base(servePath) == DefaultCoverName
}

// DiskPath maps a serve path like /uploads/<name> to its location under the
// storage root. Only the base name is honored, so crafted paths cannot
// escape the root.
func DiskPath(storageRoot, servePath string) string {
	return filepath.Join(storageRoot, filepath.Base(servePath))
}

// placeholderJPEG is a minimal 1x1 white JPEG used when no default cover
// file has been provisioned in the storage root.
var placeholderJPEG = []byte{
	0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46, 0x49, 0x46, 0x00, 0x01,
	0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0xff, 0xdb, 0x00, 0x43,
	0x00, 0x03, 0x02, 0x02, 0x02, 0x02, 0x02, 0x03, 0x02, 0x02, 0x02, 0x03,
	0x03, 0x03, 0x03, 0x04, 0x06, 0x04, 0x04, 0x04, 0x04, 0x04, 0x08, 0x06,
	0x06, 0x05, 0x06, 0x09, 0x08, 0x0a, 0x0a, 0x09, 0x08, 0x09, 0x09, 0x0a,
	0x0c, 0x0f, 0x0c, 0x0a, 0x0b, 0x0e, 0x0b, 0x09, 0x09, 0x0d, 0x11, 0x0d,
	0x0e, 0x0f, 0x10, 0x10, 0x11, 0x10, 0x0a, 0x0c, 0x12, 0x13, 0x12, 0x10,
	0x13, 0x0f, 0x10, 0x10, 0x10, 0xff, 0xc0, 0x00, 0x0b, 0x08, 0x00, 0x01,
	0x00, 0x01, 0x01, 0x01, 0x11, 0x00, 0xff, 0xc4, 0x00, 0x14, 0x00, 0x01,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x08, 0xff, 0xc4, 0x00, 0x14, 0x10, 0x01, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0xff, 0xda, 0x00, 0x08, 0x01, 0x01, 0x00, 0x00, 0x3f, 0x00,
	0x7f, 0xff, 0xd9,
}

// EnsureDefaultCover writes a placeholder default cover into the storage
// root when none exists, so fresh deployments serve a valid image.
func EnsureDefaultCover(storageRoot string) error {
	path := filepath.Join(storageRoot, DefaultCoverName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check default cover %s: %w", path, err)
	}

	if err := EnsureDir(storageRoot); err != nil {
		return err
	}
	if err := os.WriteFile(path, placeholderJPEG, 0644); err != nil {
		return fmt.Errorf("failed to write default cover %s: %w", path, err)
	}
	return nil
}
