package controller

import (
	"os"
	"path/filepath"

	"esg-questionnaire-be/internal/pkg/serverutils"
	"esg-questionnaire-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type uploadController struct {
	ingestionService service.IIngestionService
	uploadDir        string
}

func NewUploadController(ingestionService service.IIngestionService, uploadDir string) IUploadController {
	return &uploadController{
		ingestionService: ingestionService,
		uploadDir:        uploadDir,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/upload/v1")
	h.Post("", c.Upload)
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart form expected")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "at least one file is required")
	}

	// a missing session id starts a fresh session
	sessionId := uuid.New()
	if raw := ctx.FormValue("session_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid session_id")
		}
		sessionId = parsed
	}

	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return err
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		// prefix with a uuid so same-named uploads never collide
		dest := filepath.Join(c.uploadDir, uuid.New().String()+"_"+filepath.Base(file.Filename))
		if err := ctx.SaveFile(file, dest); err != nil {
			return err
		}
		paths = append(paths, dest)
	}

	res, err := c.ingestionService.Upload(ctx.Context(), sessionId, paths)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload files", res))
}
