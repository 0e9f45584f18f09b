package vendorclient

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
)

// MinArchiveSize is the smallest body we accept as a real client archive. Anything
// below it is treated as an error page or a stub rather than content.
const MinArchiveSize = 1000

// The local-file-header signature, plus the signatures of an empty and a spanned
// archive. Only the sniff stage accepts the latter two; they still have to survive
// the size and integrity stages.
var zipSignatures = [][]byte{
	{'P', 'K', 0x03, 0x04},
	{'P', 'K', 0x05, 0x06},
	{'P', 'K', 0x07, 0x08},
}

// Validate runs the guard stages over a completed Download in a fixed order:
// status code, ZIP signature sniff, minimum size, central-directory integrity.
// Each stage is independent and the first rejection is returned; no stage attempts
// repair or partial recovery.
func Validate(d *Download) error {
	if d.StatusCode != http.StatusOK {
		return fmt.Errorf("vendor API returned status %d; response begins: %s",
			d.StatusCode, fileExcerpt(d.Path))
	}
	if err := checkSignature(d.Path); err != nil {
		return err
	}
	if err := checkSize(d.Path); err != nil {
		return err
	}
	return checkIntegrity(d.Path)
}

func checkSignature(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck
	header := make([]byte, 4)
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("downloaded file is not a ZIP archive (too short to contain a signature)")
	}
	for _, sig := range zipSignatures {
		if bytes.Equal(header, sig) {
			return nil
		}
	}
	return fmt.Errorf("downloaded file is not a ZIP archive (header bytes: % x); body begins: %s",
		header, fileExcerpt(path))
}

func checkSize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() < MinArchiveSize {
		return fmt.Errorf("downloaded file is only %d bytes, below the %d byte minimum for a real client archive",
			info.Size(), MinArchiveSize)
	}
	return nil
}

// checkIntegrity reads the central directory and decompresses every entry, so a
// truncated or corrupted archive is rejected even when the signature sniff passed.
func checkIntegrity(path string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("archive is corrupted: %w", err)
	}
	defer r.Close() //nolint:errcheck
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("archive entry %q is corrupted: %w", f.Name, err)
		}
		_, err = io.Copy(io.Discard, rc)
		if closeErr := rc.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("archive entry %q is corrupted: %w", f.Name, err)
		}
	}
	return nil
}
