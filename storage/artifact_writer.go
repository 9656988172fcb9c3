package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"campus-map/models"
)

// ArtifactWriter persists the rendered map as a single file.
type ArtifactWriter struct{}

// NewArtifactWriter returns an ArtifactWriter.
func NewArtifactWriter() *ArtifactWriter {
	return &ArtifactWriter{}
}

// Write renders into a temporary file next to path and renames it into place.
// Intermediate directories are created automatically. On failure no file is
// left at path.
func (a *ArtifactWriter) Write(path string, render RenderFunc) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create output dir: %w", models.ErrArtifactWrite, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create %q: %w", models.ErrArtifactWrite, path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := render(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: render: %w", models.ErrArtifactWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", models.ErrArtifactWrite, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("%w: chmod: %w", models.ErrArtifactWrite, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename to %q: %w", models.ErrArtifactWrite, path, err)
	}
	return nil
}
