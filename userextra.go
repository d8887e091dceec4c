package upload

import (
	"context"
	"errors"
)

var (
	ErrUserExtraNotFound      = errors.New("user extra not found")
	ErrUserExtraIdRequired    = errors.New("user extra id required")
	ErrAuthenticationRequired = errors.New("authentication required")
)

// Per-user record holding the identity document image references.
// Exactly one per user, created independently of uploads and never
// created on demand by the linker.
type UserExtra struct {
	Id         int64
	UserId     UserId
	FrontImage string
	BackImage  string
}

type UserExtraStore interface {
	ById(ctx context.Context, id int64) (UserExtra, error)

	ByUserId(ctx context.Context, userId UserId) (UserExtra, error)

	All(ctx context.Context) ([]UserExtra, error)

	Create(ctx context.Context, extra UserExtra) (UserExtra, error)

	Update(ctx context.Context, extra UserExtra) (UserExtra, error)

	// Patch merges non-empty image fields into an existing record.
	Patch(ctx context.Context, extra UserExtra) (UserExtra, error)

	DeleteById(ctx context.Context, id int64) error

	// LinkImages binds freshly stored blob references to the record of
	// the user identified by login. Both fields are overwritten
	// unconditionally and persisted in one transaction. The caller
	// supplies the authenticated login explicitly; an empty login fails
	// with ErrAuthenticationRequired before anything is touched.
	LinkImages(ctx context.Context, login string, frontRef string, backRef string) (UserExtra, error)
}
