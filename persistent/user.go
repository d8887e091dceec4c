package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	upload "github.com/creolew/Upload-Image-Jhipster"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:jhi_user"`

	Id        int64      `bun:",pk,autoincrement"`
	CreatedAt time.Time  `bun:",nullzero,notnull,default:current_timestamp"`
	Login     string     `bun:",notnull,unique"`
	Email     string     `bun:"email,notnull"`
	Extra     *UserExtra `bun:"rel:has-one,join:id=user_id"`
}

func (u User) ToDomain() upload.User {
	return upload.User{
		Id:        upload.UserId(u.Id),
		CreatedAt: u.CreatedAt,
		Login:     u.Login,
		Email:     upload.Email(u.Email),
	}
}

type UserStore struct {
	DB *bun.DB
}

var _ upload.UserStore = (*UserStore)(nil)

func (s *UserStore) ByLogin(ctx context.Context, login string) (upload.User, error) {
	user := new(User)
	err := s.DB.NewSelect().
		Model(user).
		Where(`login=?`, login).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return upload.User{}, upload.ErrUserNotFound
		}
		return upload.User{}, fmt.Errorf("select user: %w", err)
	}
	return user.ToDomain(), nil
}

func (s *UserStore) ById(ctx context.Context, userId upload.UserId) (upload.User, error) {
	user := new(User)
	err := s.DB.NewSelect().
		Model(user).
		Where(`id=?`, userId).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return upload.User{}, upload.ErrUserNotFound
		}
		return upload.User{}, fmt.Errorf("select user: %w", err)
	}
	return user.ToDomain(), nil
}
