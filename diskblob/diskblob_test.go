package diskblob

import (
	"io/ioutil"
	"strings"
	"testing"

	upload "github.com/creolew/Upload-Image-Jhipster"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *Store {
	store := &Store{Root: t.TempDir()}
	if err := store.EnsureDir(upload.SlotFront); err != nil {
		t.Fatal(err)
	}
	if err := store.EnsureDir(upload.SlotBack); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestWriteAndOpen(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	ref, err := store.Write(upload.SlotFront, "front.jpg", strings.NewReader("front bytes"))
	if !assert.NoError(err) {
		return
	}
	assert.Equal("uploadsFrontImage/front.jpg", ref)

	blob, err := store.Open(upload.SlotFront, "front.jpg")
	if !assert.NoError(err) {
		return
	}
	defer blob.Close()
	content, err := ioutil.ReadAll(blob)
	assert.NoError(err)
	assert.Equal("front bytes", string(content))
}

func TestWriteBackLandsInBackSlot(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	ref, err := store.Write(upload.SlotBack, "back.jpg", strings.NewReader("back bytes"))
	if !assert.NoError(err) {
		return
	}
	assert.Equal("uploadsBackImage/back.jpg", ref)

	backNames, err := store.List(upload.SlotBack)
	assert.NoError(err)
	assert.Equal([]string{"back.jpg"}, backNames)

	frontNames, err := store.List(upload.SlotFront)
	assert.NoError(err)
	assert.Empty(frontNames)
}

func TestWriteDuplicate(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	_, err := store.Write(upload.SlotFront, "id.png", strings.NewReader("first"))
	assert.NoError(err)

	_, err = store.Write(upload.SlotFront, "id.png", strings.NewReader("second"))
	assert.ErrorIs(err, upload.ErrBlobExists)

	// the loser must not clobber the stored content
	blob, err := store.Open(upload.SlotFront, "id.png")
	if !assert.NoError(err) {
		return
	}
	defer blob.Close()
	content, err := ioutil.ReadAll(blob)
	assert.NoError(err)
	assert.Equal("first", string(content))
}

func TestWriteSameNameDifferentSlots(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	_, err := store.Write(upload.SlotFront, "scan.jpg", strings.NewReader("front"))
	assert.NoError(err)
	_, err = store.Write(upload.SlotBack, "scan.jpg", strings.NewReader("back"))
	assert.NoError(err)
}

func TestWriteInvalidName(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	cases := []string{"", ".", "..", "../escape.jpg", "nested/name.jpg"}
	for _, name := range cases {
		_, err := store.Write(upload.SlotFront, name, strings.NewReader("x"))
		assert.ErrorIs(err, upload.ErrBlobNameInvalid, "name: "+name)
	}
}

func TestOpenMissing(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	_, err := store.Open(upload.SlotFront, "nope.jpg")
	assert.ErrorIs(err, upload.ErrBlobNotFound)
}

func TestListReflectsCurrentState(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	names, err := store.List(upload.SlotFront)
	assert.NoError(err)
	assert.Empty(names)

	_, err = store.Write(upload.SlotFront, "a.jpg", strings.NewReader("a"))
	assert.NoError(err)
	_, err = store.Write(upload.SlotFront, "b.jpg", strings.NewReader("b"))
	assert.NoError(err)

	names, err = store.List(upload.SlotFront)
	assert.NoError(err)
	assert.ElementsMatch([]string{"a.jpg", "b.jpg"}, names)
}

func TestPurgeIdempotent(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	_, err := store.Write(upload.SlotFront, "front.jpg", strings.NewReader("f"))
	assert.NoError(err)
	_, err = store.Write(upload.SlotBack, "back.jpg", strings.NewReader("b"))
	assert.NoError(err)

	assert.NoError(store.Purge())

	names, err := store.List(upload.SlotFront)
	assert.NoError(err)
	assert.Empty(names)
	names, err = store.List(upload.SlotBack)
	assert.NoError(err)
	assert.Empty(names)

	// second purge over absent directories must not error
	assert.NoError(store.Purge())
}

func TestEnsureDirIdempotent(t *testing.T) {
	assert := assert.New(t)
	store := &Store{Root: t.TempDir()}

	assert.NoError(store.EnsureDir(upload.SlotFront))
	assert.NoError(store.EnsureDir(upload.SlotFront))
}
