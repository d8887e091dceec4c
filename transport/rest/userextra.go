package rest

import (
	"errors"
	"fmt"
	"strconv"

	upload "github.com/creolew/Upload-Image-Jhipster"
	"github.com/gofiber/fiber/v2"
)

type UserExtraController struct {
	Store upload.UserExtraStore
}

func (c *UserExtraController) InstallTo(app *fiber.App) {
	app.Post("/user-extras", c.serveCreate)
	app.Get("/user-extras", c.serveAll)
	app.Get("/user-extras/:id", c.serveById)
	app.Put("/user-extras/:id", c.serveUpdate)
	app.Patch("/user-extras/:id", c.servePatch)
	app.Delete("/user-extras/:id", c.serveDelete)
}

type userExtraBody struct {
	Id         int64  `json:"id"`
	UserId     int64  `json:"userId"`
	FrontImage string `json:"frontImage"`
	BackImage  string `json:"backImage"`
}

func (b userExtraBody) toDomain() upload.UserExtra {
	return upload.UserExtra{
		Id:         b.Id,
		UserId:     upload.UserId(b.UserId),
		FrontImage: b.FrontImage,
		BackImage:  b.BackImage,
	}
}

func userExtraResponse(extra upload.UserExtra) userExtraBody {
	return userExtraBody{
		Id:         extra.Id,
		UserId:     int64(extra.UserId),
		FrontImage: extra.FrontImage,
		BackImage:  extra.BackImage,
	}
}

func parseIdParam(ctx *fiber.Ctx) (int64, error) {
	idStr := ctx.Params("id")
	if idStr == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "no id")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (c *UserExtraController) serveCreate(ctx *fiber.Ctx) error {
	var body userExtraBody
	if err := ctx.BodyParser(&body); err != nil {
		RequestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.Id != 0 {
		return fiber.NewError(fiber.StatusBadRequest, "a new user extra cannot already have an id")
	}

	created, err := c.Store.Create(ctx.Context(), body.toDomain())
	if err != nil {
		return fmt.Errorf("create user extra: %w", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(userExtraResponse(created))
}

func (c *UserExtraController) serveAll(ctx *fiber.Ctx) error {
	extras, err := c.Store.All(ctx.Context())
	if err != nil {
		return fmt.Errorf("get all user extras: %w", err)
	}
	mapped := make([]userExtraBody, len(extras))
	for i, extra := range extras {
		mapped[i] = userExtraResponse(extra)
	}
	return ctx.JSON(mapped)
}

func (c *UserExtraController) serveById(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}
	extra, err := c.Store.ById(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, upload.ErrUserExtraNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user extra not found")
		}
		return fmt.Errorf("get user extra by id: %w", err)
	}
	return ctx.JSON(userExtraResponse(extra))
}

func (c *UserExtraController) serveUpdate(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}
	var body userExtraBody
	if err := ctx.BodyParser(&body); err != nil {
		RequestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.Id == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no id in body")
	}
	if body.Id != id {
		return fiber.NewError(fiber.StatusBadRequest, "id mismatch")
	}

	updated, err := c.Store.Update(ctx.Context(), body.toDomain())
	if err != nil {
		if errors.Is(err, upload.ErrUserExtraNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "user extra not found")
		}
		return fmt.Errorf("update user extra: %w", err)
	}
	return ctx.JSON(userExtraResponse(updated))
}

func (c *UserExtraController) servePatch(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}
	var body userExtraBody
	if err := ctx.BodyParser(&body); err != nil {
		RequestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.Id == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no id in body")
	}
	if body.Id != id {
		return fiber.NewError(fiber.StatusBadRequest, "id mismatch")
	}

	patched, err := c.Store.Patch(ctx.Context(), body.toDomain())
	if err != nil {
		if errors.Is(err, upload.ErrUserExtraNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user extra not found")
		}
		return fmt.Errorf("patch user extra: %w", err)
	}
	return ctx.JSON(userExtraResponse(patched))
}

func (c *UserExtraController) serveDelete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}
	if err := c.Store.DeleteById(ctx.Context(), id); err != nil {
		return fmt.Errorf("delete user extra: %w", err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
