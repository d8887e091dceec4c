package persistent

import (
	"context"
	"testing"

	upload "github.com/creolew/Upload-Image-Jhipster"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/buntdb"
)

func newTestSessionStore(t *testing.T) *SessionStore {
	t.Helper()
	bdb, err := buntdb.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { bdb.Close() })
	store := &SessionStore{Buntdb: bdb}
	store.CreateIndexes()
	return store
}

func TestSessionRegisterAndRefresh(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := newTestSessionStore(t)

	session, err := store.RegisterNew(ctx, 7, "192.168.0.101", "Chrome/openBased")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(upload.UserId(7), session.UserId)
	assert.Equal("192.168.0.101", session.Ip)
	assert.NotEmpty(session.Token)

	exists, err := store.Exists(session.Token)
	assert.NoError(err)
	assert.True(exists)

	refreshed, err := store.AcquireAndRefresh(ctx, session.Token, "10.0.0.2", "Firefox/ok")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(session.Id, refreshed.Id)
	assert.Equal("10.0.0.2", refreshed.Ip)
	assert.Equal("Firefox/ok", refreshed.UserAgent)
}

func TestSessionInvalidate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := newTestSessionStore(t)

	session, err := store.RegisterNew(ctx, 3, "127.0.0.1", "curl/7.81")
	if !assert.NoError(err) {
		return
	}

	assert.NoError(store.InvalidateByAuthToken(session.Token))

	_, err = store.ByToken(session.Token)
	assert.ErrorIs(err, upload.ErrSessionNotFound)

	_, err = store.AcquireAndRefresh(ctx, session.Token, "127.0.0.1", "curl/7.81")
	assert.ErrorIs(err, upload.ErrSessionNotFound)
}
