package mock

import (
	"context"

	upload "github.com/creolew/Upload-Image-Jhipster"
)

type UserExtraStore struct {
	ByIdFn func(ctx context.Context, id int64) (upload.UserExtra, error)

	ByUserIdFn func(ctx context.Context, userId upload.UserId) (upload.UserExtra, error)

	AllFn func(ctx context.Context) ([]upload.UserExtra, error)

	CreateFn func(ctx context.Context, extra upload.UserExtra) (upload.UserExtra, error)

	UpdateFn func(ctx context.Context, extra upload.UserExtra) (upload.UserExtra, error)

	PatchFn func(ctx context.Context, extra upload.UserExtra) (upload.UserExtra, error)

	DeleteByIdFn func(ctx context.Context, id int64) error

	LinkImagesFn func(ctx context.Context, login string, frontRef string, backRef string) (upload.UserExtra, error)
}

func (s UserExtraStore) ById(ctx context.Context, id int64) (upload.UserExtra, error) {
	return s.ByIdFn(ctx, id)
}

func (s UserExtraStore) ByUserId(ctx context.Context, userId upload.UserId) (upload.UserExtra, error) {
	return s.ByUserIdFn(ctx, userId)
}

func (s UserExtraStore) All(ctx context.Context) ([]upload.UserExtra, error) {
	return s.AllFn(ctx)
}

func (s UserExtraStore) Create(ctx context.Context, extra upload.UserExtra) (upload.UserExtra, error) {
	return s.CreateFn(ctx, extra)
}

func (s UserExtraStore) Update(ctx context.Context, extra upload.UserExtra) (upload.UserExtra, error) {
	return s.UpdateFn(ctx, extra)
}

func (s UserExtraStore) Patch(ctx context.Context, extra upload.UserExtra) (upload.UserExtra, error) {
	return s.PatchFn(ctx, extra)
}

func (s UserExtraStore) DeleteById(ctx context.Context, id int64) error {
	return s.DeleteByIdFn(ctx, id)
}

func (s UserExtraStore) LinkImages(ctx context.Context, login string, frontRef string, backRef string) (upload.UserExtra, error) {
	return s.LinkImagesFn(ctx, login, frontRef, backRef)
}
