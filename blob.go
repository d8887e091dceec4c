package upload

import (
	"errors"
	"io"
)

var (
	ErrBlobExists      = errors.New("blob already exists")
	ErrBlobNotFound    = errors.New("blob not found")
	ErrBlobNameInvalid = errors.New("invalid blob name")
	ErrStorageInit     = errors.New("could not initialize upload storage")
)

// Slot is one of the two fixed storage compartments, each backed by its
// own flat directory. Keeping the sides separate scopes listing and
// deletion and avoids name collisions between the two document sides.
type Slot byte

const (
	SlotFront Slot = iota
	SlotBack
)

func (s Slot) Dir() string {
	switch s {
	case SlotFront:
		return "uploadsFrontImage"
	case SlotBack:
		return "uploadsBackImage"
	default:
		panic("unknown slot")
	}
}

func (s Slot) String() string {
	switch s {
	case SlotFront:
		return "front"
	case SlotBack:
		return "back"
	default:
		return "unknown"
	}
}

type BlobStore interface {
	// Write stores content under the slot directory and returns the
	// slot-relative reference ("<slotDir>/<filename>"). Writing a name
	// that already exists in the slot fails with ErrBlobExists.
	Write(slot Slot, filename string, content io.Reader) (string, error)

	Open(slot Slot, filename string) (io.ReadCloser, error)

	// List returns the file names stored in the slot, one level deep,
	// without the slot directory itself. Reflects current directory
	// state on every call.
	List(slot Slot) ([]string, error)

	// Purge removes both slot directories and their contents. Removing
	// an already absent directory is not an error.
	Purge() error

	EnsureDir(slot Slot) error
}
