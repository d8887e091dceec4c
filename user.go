package upload

import (
	"context"
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

type UserId int64

type Email string

type User struct {
	Id        UserId
	CreatedAt time.Time
	Login     string
	Email     Email
}

type UserStore interface {
	ByLogin(ctx context.Context, login string) (User, error)

	ById(ctx context.Context, userId UserId) (User, error)
}
