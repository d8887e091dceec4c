package diskblob

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	upload "github.com/creolew/Upload-Image-Jhipster"
)

// Store keeps uploaded document images on the local filesystem, one
// flat directory per slot under Root. An empty Root resolves against
// the process working directory, which matches the documented
// "uploadsFrontImage/"/"uploadsBackImage/" layout.
type Store struct {
	Root string
}

var _ upload.BlobStore = (*Store)(nil)

func (s *Store) slotDir(slot upload.Slot) string {
	return filepath.Join(s.Root, slot.Dir())
}

func validFilename(filename string) bool {
	if filename == "" || filename == "." || filename == ".." {
		return false
	}
	// reject anything that would escape the slot directory
	return filepath.Base(filename) == filename
}

func (s *Store) Write(slot upload.Slot, filename string, content io.Reader) (string, error) {
	if !validFilename(filename) {
		return "", fmt.Errorf("%w: %q", upload.ErrBlobNameInvalid, filename)
	}

	// O_EXCL makes the concurrent same-name race safe: exactly one
	// writer creates the file, the loser gets ErrBlobExists instead of
	// an interleaved write.
	file, err := os.OpenFile(filepath.Join(s.slotDir(slot), filename),
		os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%w: %s/%s", upload.ErrBlobExists, slot.Dir(), filename)
		}
		return "", fmt.Errorf("create blob: %w", err)
	}

	_, err = io.Copy(file, content)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return path.Join(slot.Dir(), filename), nil
}

func (s *Store) Open(slot upload.Slot, filename string) (io.ReadCloser, error) {
	if !validFilename(filename) {
		return nil, fmt.Errorf("%w: %q", upload.ErrBlobNameInvalid, filename)
	}
	file, err := os.Open(filepath.Join(s.slotDir(slot), filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s/%s", upload.ErrBlobNotFound, slot.Dir(), filename)
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return file, nil
}

func (s *Store) List(slot upload.Slot) ([]string, error) {
	entries, err := os.ReadDir(s.slotDir(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read slot dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (s *Store) Purge() error {
	for _, slot := range []upload.Slot{upload.SlotFront, upload.SlotBack} {
		if err := os.RemoveAll(s.slotDir(slot)); err != nil {
			return fmt.Errorf("purge %s slot: %w", slot, err)
		}
	}
	return nil
}

func (s *Store) EnsureDir(slot upload.Slot) error {
	err := os.MkdirAll(s.slotDir(slot), 0o755)
	if err != nil && !os.IsExist(err) {
		return fmt.Errorf("%w: %s: %v", upload.ErrStorageInit, slot.Dir(), err)
	}
	return nil
}
