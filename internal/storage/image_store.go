package storage

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	// Accepted upload formats, registered for image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var (
	ErrNotAnImage = errors.New("uploaded file is not a valid image")
)

// recipeImageDir is the fixed prefix for stored recipe images
const recipeImageDir = "uploads/recipe"

// ImageStore writes uploaded recipe images to the local media
// directory. File names are freshly generated UUIDs plus the original
// extension, so stored paths never collide and never depend on a
// client-supplied name.
type ImageStore struct {
	mediaDir string
}

// NewImageStore creates a new ImageStore rooted at mediaDir
func NewImageStore(mediaDir string) *ImageStore {
	return &ImageStore{mediaDir: mediaDir}
}

// SaveRecipeImage validates and stores an uploaded image, returning the
// stored path relative to the media root (uploads/recipe/<uuid><ext>).
// Validation decodes the image header; a wrong extension or disguised
// non-image payload fails here before anything is written.
func (s *ImageStore) SaveRecipeImage(file io.ReadSeeker, originalName string) (string, error) {
	if _, _, err := image.DecodeConfig(file); err != nil {
		return "", ErrNotAnImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext
	relPath := path.Join(recipeImageDir, name)

	absDir := filepath.Join(s.mediaDir, filepath.FromSlash(recipeImageDir))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(absDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", err
	}

	return relPath, nil
}

// Remove deletes a stored file by its relative path. Best effort: a
// missing file is not an error, the row is the source of truth.
func (s *ImageStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.mediaDir, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
