package mock

import (
	"context"

	upload "github.com/creolew/Upload-Image-Jhipster"
)

type UserStore struct {
	ByLoginFn func(ctx context.Context, login string) (upload.User, error)

	ByIdFn func(ctx context.Context, userId upload.UserId) (upload.User, error)
}

func (s UserStore) ByLogin(ctx context.Context, login string) (upload.User, error) {
	return s.ByLoginFn(ctx, login)
}

func (s UserStore) ById(ctx context.Context, userId upload.UserId) (upload.User, error) {
	return s.ByIdFn(ctx, userId)
}
