package inmem

import (
	"context"
	"sort"
	"sync"

	upload "github.com/creolew/Upload-Image-Jhipster"
)

type UserExtraStore struct {
	Users *UserStore

	lastId int64
	extras map[int64]upload.UserExtra
	mutex  sync.RWMutex
}

func NewUserExtraStore(users *UserStore) UserExtraStore {
	return UserExtraStore{
		Users:  users,
		lastId: 0,
		extras: map[int64]upload.UserExtra{},
		mutex:  sync.RWMutex{},
	}
}

func (s *UserExtraStore) ById(ctx context.Context, id int64) (upload.UserExtra, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	extra, ok := s.extras[id]
	if !ok {
		return upload.UserExtra{}, upload.ErrUserExtraNotFound
	}
	return extra, nil
}

func (s *UserExtraStore) ByUserId(ctx context.Context, userId upload.UserId) (upload.UserExtra, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.byUserIdLocked(userId)
}

func (s *UserExtraStore) byUserIdLocked(userId upload.UserId) (upload.UserExtra, error) {
	for _, extra := range s.extras {
		if extra.UserId == userId {
			return extra, nil
		}
	}
	return upload.UserExtra{}, upload.ErrUserExtraNotFound
}

func (s *UserExtraStore) All(ctx context.Context) ([]upload.UserExtra, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	all := make([]upload.UserExtra, 0, len(s.extras))
	for _, extra := range s.extras {
		all = append(all, extra)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Id < all[j].Id })
	return all, nil
}

func (s *UserExtraStore) Create(ctx context.Context, extra upload.UserExtra) (upload.UserExtra, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.lastId++
	extra.Id = s.lastId
	s.extras[extra.Id] = extra
	return extra, nil
}

func (s *UserExtraStore) Update(ctx context.Context, extra upload.UserExtra) (upload.UserExtra, error) {
	if extra.Id == 0 {
		return upload.UserExtra{}, upload.ErrUserExtraIdRequired
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.extras[extra.Id]; !ok {
		return upload.UserExtra{}, upload.ErrUserExtraNotFound
	}
	s.extras[extra.Id] = extra
	return extra, nil
}

func (s *UserExtraStore) Patch(ctx context.Context, extra upload.UserExtra) (upload.UserExtra, error) {
	if extra.Id == 0 {
		return upload.UserExtra{}, upload.ErrUserExtraIdRequired
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()

	existing, ok := s.extras[extra.Id]
	if !ok {
		return upload.UserExtra{}, upload.ErrUserExtraNotFound
	}
	if extra.FrontImage != "" {
		existing.FrontImage = extra.FrontImage
	}
	if extra.BackImage != "" {
		existing.BackImage = extra.BackImage
	}
	s.extras[existing.Id] = existing
	return existing, nil
}

func (s *UserExtraStore) DeleteById(ctx context.Context, id int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.extras, id)
	return nil
}

func (s *UserExtraStore) LinkImages(ctx context.Context, login string, frontRef string, backRef string) (upload.UserExtra, error) {
	if login == "" {
		return upload.UserExtra{}, upload.ErrAuthenticationRequired
	}

	user, err := s.Users.ByLogin(ctx, login)
	if err != nil {
		return upload.UserExtra{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	extra, err := s.byUserIdLocked(user.Id)
	if err != nil {
		return upload.UserExtra{}, err
	}
	extra.FrontImage = frontRef
	extra.BackImage = backRef
	s.extras[extra.Id] = extra
	return extra, nil
}
