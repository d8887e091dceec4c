package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	upload "github.com/creolew/Upload-Image-Jhipster"
	"github.com/uptrace/bun"
)

type UserExtra struct {
	bun.BaseModel `bun:"table:user_extra"`

	Id         int64  `bun:",pk,autoincrement"`
	UserId     int64  `bun:",unique,notnull"`
	User       *User  `bun:"rel:belongs-to"`
	FrontImage string `bun:"front_image"`
	BackImage  string `bun:"back_image"`
}

func (e UserExtra) ToDomain() upload.UserExtra {
	return upload.UserExtra{
		Id:         e.Id,
		UserId:     upload.UserId(e.UserId),
		FrontImage: e.FrontImage,
		BackImage:  e.BackImage,
	}
}

func fromDomain(extra upload.UserExtra) *UserExtra {
	return &UserExtra{
		Id:         extra.Id,
		UserId:     int64(extra.UserId),
		FrontImage: extra.FrontImage,
		BackImage:  extra.BackImage,
	}
}

type UserExtraStore struct {
	DB *bun.DB
}

var _ upload.UserExtraStore = (*UserExtraStore)(nil)

func (s *UserExtraStore) ById(ctx context.Context, id int64) (upload.UserExtra, error) {
	extra := new(UserExtra)
	err := s.DB.NewSelect().
		Model(extra).
		Where(`id=?`, id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return upload.UserExtra{}, upload.ErrUserExtraNotFound
		}
		return upload.UserExtra{}, fmt.Errorf("select user extra: %w", err)
	}
	return extra.ToDomain(), nil
}

func (s *UserExtraStore) ByUserId(ctx context.Context, userId upload.UserId) (upload.UserExtra, error) {
	extra := new(UserExtra)
	err := s.DB.NewSelect().
		Model(extra).
		Where(`user_id=?`, userId).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return upload.UserExtra{}, upload.ErrUserExtraNotFound
		}
		return upload.UserExtra{}, fmt.Errorf("select user extra: %w", err)
	}
	return extra.ToDomain(), nil
}

func (s *UserExtraStore) All(ctx context.Context) ([]upload.UserExtra, error) {
	var extras []UserExtra
	err := s.DB.NewSelect().
		Model(&extras).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select user extras: %w", err)
	}
	mapped := make([]upload.UserExtra, len(extras))
	for i, e := range extras {
		mapped[i] = e.ToDomain()
	}
	return mapped, nil
}

func (s *UserExtraStore) Create(ctx context.Context, extra upload.UserExtra) (upload.UserExtra, error) {
	model := fromDomain(extra)
	model.Id = 0
	_, err := s.DB.NewInsert().
		Model(model).
		Exec(ctx)
	if err != nil {
		return upload.UserExtra{}, fmt.Errorf("insert user extra: %w", err)
	}
	return model.ToDomain(), nil
}

func (s *UserExtraStore) Update(ctx context.Context, extra upload.UserExtra) (upload.UserExtra, error) {
	if extra.Id == 0 {
		return upload.UserExtra{}, upload.ErrUserExtraIdRequired
	}
	model := fromDomain(extra)
	res, err := s.DB.NewUpdate().
		Model(model).
		WherePK().
		Exec(ctx)
	if err != nil {
		return upload.UserExtra{}, fmt.Errorf("update user extra: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return upload.UserExtra{}, fmt.Errorf("update user extra rows affected: %w", err)
	}
	if affected == 0 {
		return upload.UserExtra{}, upload.ErrUserExtraNotFound
	}
	return model.ToDomain(), nil
}

func (s *UserExtraStore) Patch(ctx context.Context, extra upload.UserExtra) (upload.UserExtra, error) {
	if extra.Id == 0 {
		return upload.UserExtra{}, upload.ErrUserExtraIdRequired
	}

	var patched upload.UserExtra
	err := s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		existing := new(UserExtra)
		err := tx.NewSelect().
			Model(existing).
			Where(`id=?`, extra.Id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return upload.ErrUserExtraNotFound
			}
			return fmt.Errorf("select user extra: %w", err)
		}

		if extra.FrontImage != "" {
			existing.FrontImage = extra.FrontImage
		}
		if extra.BackImage != "" {
			existing.BackImage = extra.BackImage
		}

		_, err = tx.NewUpdate().
			Model(existing).
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update user extra: %w", err)
		}
		patched = existing.ToDomain()
		return nil
	})
	if err != nil {
		return upload.UserExtra{}, err
	}
	return patched, nil
}

func (s *UserExtraStore) DeleteById(ctx context.Context, id int64) error {
	_, err := s.DB.NewDelete().
		Model((*UserExtra)(nil)).
		Where(`id=?`, id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete user extra: %w", err)
	}
	return nil
}

// LinkImages resolves the user record from the explicitly supplied login
// and rewrites both image references in one transaction. Either both
// fields are persisted or nothing changes; there is no retry.
func (s *UserExtraStore) LinkImages(ctx context.Context, login string, frontRef string, backRef string) (upload.UserExtra, error) {
	if login == "" {
		return upload.UserExtra{}, upload.ErrAuthenticationRequired
	}

	var linked upload.UserExtra
	err := s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		user := new(User)
		err := tx.NewSelect().
			Model(user).
			Where(`login=?`, login).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return upload.ErrUserNotFound
			}
			return fmt.Errorf("select user: %w", err)
		}

		extra := new(UserExtra)
		err = tx.NewSelect().
			Model(extra).
			Where(`user_id=?`, user.Id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// the record must already exist, it is never created here
				return upload.ErrUserExtraNotFound
			}
			return fmt.Errorf("select user extra: %w", err)
		}

		extra.FrontImage = frontRef
		extra.BackImage = backRef
		_, err = tx.NewUpdate().
			Model(extra).
			Column("front_image", "back_image").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update user extra images: %w", err)
		}
		linked = extra.ToDomain()
		return nil
	})
	if err != nil {
		return upload.UserExtra{}, err
	}
	return linked, nil
}
