package mock

import (
	"io"

	upload "github.com/creolew/Upload-Image-Jhipster"
)

type BlobStore struct {
	WriteFn func(slot upload.Slot, filename string, content io.Reader) (string, error)

	OpenFn func(slot upload.Slot, filename string) (io.ReadCloser, error)

	ListFn func(slot upload.Slot) ([]string, error)

	PurgeFn func() error

	EnsureDirFn func(slot upload.Slot) error
}

func (s BlobStore) Write(slot upload.Slot, filename string, content io.Reader) (string, error) {
	return s.WriteFn(slot, filename, content)
}

func (s BlobStore) Open(slot upload.Slot, filename string) (io.ReadCloser, error) {
	return s.OpenFn(slot, filename)
}

func (s BlobStore) List(slot upload.Slot) ([]string, error) {
	return s.ListFn(slot)
}

func (s BlobStore) Purge() error {
	return s.PurgeFn()
}

func (s BlobStore) EnsureDir(slot upload.Slot) error {
	return s.EnsureDirFn(slot)
}
