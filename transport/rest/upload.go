package rest

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	upload "github.com/creolew/Upload-Image-Jhipster"
	"github.com/gofiber/fiber/v2"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type UploadController struct {
	Blobs  upload.BlobStore
	Extras upload.UserExtraStore
}

func (c *UploadController) InstallTo(requestAuthorizer fiber.Handler, app *fiber.App) {
	app.Post("/upload/user-extra/image", CombineHandlers(requestAuthorizer, c.serveUploadImages))
	app.Get("/upload/user-extra/image/files", c.serveListFiles)
	app.Get("/upload/user-extra/image/files/:slot/:filename", c.serveFile)
}

// serveUploadImages handles one upload-and-link request: write the
// front blob, write the back blob, rewrite both references on the
// caller's user-extra record. Any failure past part validation keeps
// the documented client contract: 417 with a generic message, the
// error kind stays in the server log. Already written blobs are not
// rolled back.
func (c *UploadController) serveUploadImages(ctx *fiber.Ctx) error {
	front, err := ctx.FormFile("frontImage")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing frontImage part")
	}
	back, err := ctx.FormFile("backImage")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing backImage part")
	}
	user, ok := ctx.Locals(userLocalsKey).(upload.User)
	if !ok {
		return fiber.ErrUnauthorized
	}

	err = c.saveAndLink(ctx.Context(), user.Login, front, back)
	if err != nil {
		RequestLog(ctx).
			WithError(err).
			WithField("filename", front.Filename).
			WithField("error_kind", uploadErrorKind(err)).
			Warningln("Image upload failed.")
		return ctx.
			Status(fiber.StatusExpectationFailed).
			JSON(MessageResponse{Message: "Could not upload the file: " + front.Filename + "!"})
	}
	return ctx.JSON(MessageResponse{Message: "Uploaded the file successfully: " + front.Filename})
}

func (c *UploadController) saveAndLink(ctx context.Context, login string,
	front *multipart.FileHeader, back *multipart.FileHeader) error {
	frontRef, err := c.storeImage(upload.SlotFront, front)
	if err != nil {
		return err
	}
	backRef, err := c.storeImage(upload.SlotBack, back)
	if err != nil {
		return err
	}
	_, err = c.Extras.LinkImages(ctx, login, frontRef, backRef)
	if err != nil {
		return fmt.Errorf("link images: %w", err)
	}
	return nil
}

func (c *UploadController) storeImage(slot upload.Slot, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open %s image part: %w", slot, err)
	}
	defer file.Close()

	ref, err := c.Blobs.Write(slot, header.Filename, file)
	if err != nil {
		return "", fmt.Errorf("store %s image: %w", slot, err)
	}
	return ref, nil
}

func uploadErrorKind(err error) string {
	switch {
	case errors.Is(err, upload.ErrBlobExists):
		return "duplicate_blob"
	case errors.Is(err, upload.ErrBlobNameInvalid):
		return "invalid_blob_name"
	case errors.Is(err, upload.ErrAuthenticationRequired):
		return "authentication_required"
	case errors.Is(err, upload.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, upload.ErrUserExtraNotFound):
		return "user_extra_not_found"
	default:
		return "persistence"
	}
}

func (c *UploadController) serveListFiles(ctx *fiber.Ctx) error {
	frontNames, err := c.Blobs.List(upload.SlotFront)
	if err != nil {
		return fmt.Errorf("list front slot: %w", err)
	}
	backNames, err := c.Blobs.List(upload.SlotBack)
	if err != nil {
		return fmt.Errorf("list back slot: %w", err)
	}

	type FilesResponse struct {
		Front []string `json:"front"`
		Back  []string `json:"back"`
	}
	return ctx.JSON(FilesResponse{Front: frontNames, Back: backNames})
}

func (c *UploadController) serveFile(ctx *fiber.Ctx) error {
	slot, err := parseSlot(ctx.Params("slot"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid slot")
	}
	filename := ctx.Params("filename")

	blob, err := c.Blobs.Open(slot, filename)
	if err != nil {
		if errors.Is(err, upload.ErrBlobNotFound) || errors.Is(err, upload.ErrBlobNameInvalid) {
			return fiber.NewError(fiber.StatusNotFound, "file not found")
		}
		return fmt.Errorf("open blob: %w", err)
	}
	// fasthttp closes the stream after the response is sent.
	return ctx.SendStream(blob)
}

func parseSlot(name string) (upload.Slot, error) {
	switch name {
	case "front":
		return upload.SlotFront, nil
	case "back":
		return upload.SlotBack, nil
	default:
		return 0, fmt.Errorf("unknown slot %q", name)
	}
}
