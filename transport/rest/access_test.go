package rest

import (
	"context"
	"net/http/httptest"
	"testing"

	upload "github.com/creolew/Upload-Image-Jhipster"
	"github.com/creolew/Upload-Image-Jhipster/mock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRequestAuthorizer(t *testing.T) {
	assert := assert.New(t)

	sessionStore := mock.SessionStore{
		AcquireAndRefreshFn: func(ctx context.Context, token, ip, userAgent string) (upload.Session, error) {
			if token != "valid-token" {
				return upload.Session{}, upload.ErrSessionNotFound
			}
			return upload.Session{Id: "sid", UserId: 7, Token: token}, nil
		},
	}
	userStore := mock.UserStore{
		ByIdFn: func(ctx context.Context, userId upload.UserId) (upload.User, error) {
			return upload.User{Id: userId, Login: "alice"}, nil
		},
	}

	var seenUser upload.User
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/guarded", CombineHandlers(
		RequestAuthorizer(sessionStore, userStore),
		func(ctx *fiber.Ctx) error {
			seenUser, _ = ctx.Locals(userLocalsKey).(upload.User)
			return ctx.SendString("ok")
		}))

	cases := []struct {
		name       string
		auth       string
		returnCode int
	}{
		{"no header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusBadRequest},
		{"unknown token", "Bearer nope", fiber.StatusUnauthorized},
		{"valid", "Bearer valid-token", fiber.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/guarded", nil)
		if tc.auth != "" {
			req.Header.Set(fiber.HeaderAuthorization, tc.auth)
		}
		resp, err := app.Test(req)
		if !assert.NoError(err, tc.name) {
			return
		}
		resp.Body.Close()
		assert.Equal(tc.returnCode, resp.StatusCode, tc.name)
	}

	assert.Equal(upload.UserId(7), seenUser.Id)
	assert.Equal("alice", seenUser.Login)
}
