package persistent

import (
	"context"
	"testing"

	upload "github.com/creolew/Upload-Image-Jhipster"
	"github.com/stretchr/testify/assert"
)

func insertTestUser(t *testing.T, store UserStore, login string) upload.User {
	t.Helper()
	ctx := context.Background()
	user := &User{Login: login, Email: login + "@extra.test"}
	_, err := store.DB.NewInsert().
		Model(user).
		Ignore().
		Exec(ctx)
	if err != nil {
		t.Fatal(err)
	}
	sel, err := store.ByLogin(ctx, login)
	if err != nil {
		t.Fatal(err)
	}
	return sel
}

func TestLinkImages(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := PgOpenTest(ctx)
	defer db.Close()
	users := UserStore{DB: db}
	extras := UserExtraStore{DB: db}

	user := insertTestUser(t, users, "link_images_user")
	extra, err := extras.Create(ctx, upload.UserExtra{UserId: user.Id})
	if !assert.NoError(err) {
		return
	}

	linked, err := extras.LinkImages(ctx, user.Login,
		"uploadsFrontImage/front.jpg", "uploadsBackImage/back.jpg")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(extra.Id, linked.Id)
	assert.Equal("uploadsFrontImage/front.jpg", linked.FrontImage)
	assert.Equal("uploadsBackImage/back.jpg", linked.BackImage)

	sel, err := extras.ByUserId(ctx, user.Id)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(linked, sel)

	// both fields are overwritten unconditionally on the next link
	relinked, err := extras.LinkImages(ctx, user.Login,
		"uploadsFrontImage/front2.jpg", "uploadsBackImage/back2.jpg")
	if !assert.NoError(err) {
		return
	}
	assert.Equal("uploadsFrontImage/front2.jpg", relinked.FrontImage)
	assert.Equal("uploadsBackImage/back2.jpg", relinked.BackImage)
}

func TestLinkImagesNoPrincipal(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := PgOpenTest(ctx)
	defer db.Close()
	extras := UserExtraStore{DB: db}

	_, err := extras.LinkImages(ctx, "", "uploadsFrontImage/a.jpg", "uploadsBackImage/b.jpg")
	assert.ErrorIs(err, upload.ErrAuthenticationRequired)
}

func TestLinkImagesUnknownUser(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := PgOpenTest(ctx)
	defer db.Close()
	extras := UserExtraStore{DB: db}

	_, err := extras.LinkImages(ctx, "link_ghost",
		"uploadsFrontImage/a.jpg", "uploadsBackImage/b.jpg")
	assert.ErrorIs(err, upload.ErrUserNotFound)
}

func TestLinkImagesWithoutExtraRecord(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := PgOpenTest(ctx)
	defer db.Close()
	users := UserStore{DB: db}
	extras := UserExtraStore{DB: db}

	user := insertTestUser(t, users, "link_without_extra")

	// the extra record is never created on demand
	_, err := extras.LinkImages(ctx, user.Login,
		"uploadsFrontImage/a.jpg", "uploadsBackImage/b.jpg")
	assert.ErrorIs(err, upload.ErrUserExtraNotFound)

	_, err = extras.ByUserId(ctx, user.Id)
	assert.ErrorIs(err, upload.ErrUserExtraNotFound)
}

func TestUserExtraCrud(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := PgOpenTest(ctx)
	defer db.Close()
	users := UserStore{DB: db}
	extras := UserExtraStore{DB: db}

	user := insertTestUser(t, users, "extra_crud_user")
	created, err := extras.Create(ctx, upload.UserExtra{
		UserId:     user.Id,
		FrontImage: "uploadsFrontImage/crud.jpg",
	})
	if !assert.NoError(err) {
		return
	}
	assert.NotZero(created.Id)

	created.BackImage = "uploadsBackImage/crud.jpg"
	updated, err := extras.Update(ctx, created)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created, updated)

	patched, err := extras.Patch(ctx, upload.UserExtra{
		Id:         created.Id,
		FrontImage: "uploadsFrontImage/patched.jpg",
	})
	if !assert.NoError(err) {
		return
	}
	assert.Equal("uploadsFrontImage/patched.jpg", patched.FrontImage)
	// empty fields are left alone by Patch
	assert.Equal("uploadsBackImage/crud.jpg", patched.BackImage)

	all, err := extras.All(ctx)
	if !assert.NoError(err) {
		return
	}
	assert.Contains(all, patched)

	assert.NoError(extras.DeleteById(ctx, created.Id))
	_, err = extras.ById(ctx, created.Id)
	assert.ErrorIs(err, upload.ErrUserExtraNotFound)
}

func TestUserExtraUpdateMissing(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := PgOpenTest(ctx)
	defer db.Close()
	extras := UserExtraStore{DB: db}

	_, err := extras.Update(ctx, upload.UserExtra{Id: 919191, UserId: 919191})
	assert.ErrorIs(err, upload.ErrUserExtraNotFound)

	_, err = extras.Update(ctx, upload.UserExtra{})
	assert.ErrorIs(err, upload.ErrUserExtraIdRequired)
}
