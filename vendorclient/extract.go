package vendorclient

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Extract unpacks every entry of a validated archive into destDir, creating it if
// absent, and returns the entry names in archive order so the caller can show the
// listing to the operator. Entry paths that would escape destDir are rejected.
func Extract(archivePath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		// ErrInsecurePath still yields a usable reader; the per-entry containment
		// check below produces a more specific rejection for those archives.
		return nil, fmt.Errorf("cannot open archive: %w", err)
	}
	defer r.Close() //nolint:errcheck

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create extraction directory: %w", err)
	}

	var names []string
	for _, f := range r.File {
		if !filepath.IsLocal(filepath.FromSlash(f.Name)) {
			return nil, fmt.Errorf("archive entry %q would escape the extraction directory", f.Name)
		}
		target := filepath.Join(destDir, filepath.FromSlash(f.Name))
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return nil, err
			}
			names = append(names, f.Name)
			continue
		}
		if err := extractFile(f, target); err != nil {
			return nil, fmt.Errorf("extracting %q: %w", f.Name, err)
		}
		names = append(names, f.Name)
	}
	return names, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close() //nolint:errcheck

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, rc)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}
