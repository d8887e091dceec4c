package rest

import (
	"errors"
	"fmt"
	"strings"

	upload "github.com/creolew/Upload-Image-Jhipster"
	"github.com/gofiber/fiber/v2"
)

const (
	sessionLocalsKey = "session"
	userLocalsKey    = "user"
)

// RequestAuthorizer resolves the Bearer token to a session and its user,
// and stores both in request locals. Controllers read the user from
// locals and pass its login on explicitly; nothing below the transport
// layer reaches into ambient security state.
func RequestAuthorizer(sessionStore upload.SessionStore, userStore upload.UserStore) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		auth := ctx.Get(fiber.HeaderAuthorization)
		if auth == "" {
			return fiber.ErrUnauthorized
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			return fiber.NewError(fiber.ErrBadRequest.Code, "invalid auth type")
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		session, err := sessionStore.AcquireAndRefresh(ctx.Context(), token, ctx.IP(),
			string(ctx.Request().Header.UserAgent()))
		if err != nil {
			if errors.Is(err, upload.ErrSessionNotFound) {
				return fiber.ErrUnauthorized
			}
			return fmt.Errorf("acquire and refresh session: %w", err)
		}
		user, err := userStore.ById(ctx.Context(), session.UserId)
		if err != nil {
			return fmt.Errorf("retrieve user by id: %w", err)
		}

		RequestLog(ctx).
			WithField("user_id", user.Id).
			Infoln("Authorized access.")

		ctx.Locals(sessionLocalsKey, session)
		ctx.Locals(userLocalsKey, user)
		return nil
	}
}
