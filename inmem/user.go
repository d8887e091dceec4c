package inmem

import (
	"context"
	"sync"
	"time"

	upload "github.com/creolew/Upload-Image-Jhipster"
)

type UserStore struct {
	lastId int64
	users  map[upload.UserId]upload.User
	mutex  sync.RWMutex
}

func NewUserStore() UserStore {
	return UserStore{
		lastId: 0,
		users:  map[upload.UserId]upload.User{},
		mutex:  sync.RWMutex{},
	}
}

func (s *UserStore) Add(login string, email upload.Email) upload.User {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.lastId++
	user := upload.User{
		Id:        upload.UserId(s.lastId),
		CreatedAt: time.Now(),
		Login:     login,
		Email:     email,
	}
	s.users[user.Id] = user
	return user
}

func (s *UserStore) ByLogin(ctx context.Context, login string) (upload.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, u := range s.users {
		if u.Login == login {
			return u, nil
		}
	}
	return upload.User{}, upload.ErrUserNotFound
}

func (s *UserStore) ById(ctx context.Context, userId upload.UserId) (upload.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	u, ok := s.users[userId]
	if !ok {
		return u, upload.ErrUserNotFound
	}
	return u, nil
}
