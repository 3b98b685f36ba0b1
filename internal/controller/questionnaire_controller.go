package controller

import (
	"esg-questionnaire-be/internal/dto"
	"esg-questionnaire-be/internal/pkg/serverutils"
	"esg-questionnaire-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IQuestionnaireController interface {
	RegisterRoutes(r fiber.Router)
	GetAnswers(ctx *fiber.Ctx) error
	Extract(ctx *fiber.Ctx) error
	OverwriteAnswers(ctx *fiber.Ctx) error
	VisionExtract(ctx *fiber.Ctx) error
	ModuleSummary(ctx *fiber.Ctx) error
}

type questionnaireController struct {
	questionnaireService service.IQuestionnaireService
}

func NewQuestionnaireController(questionnaireService service.IQuestionnaireService) IQuestionnaireController {
	return &questionnaireController{
		questionnaireService: questionnaireService,
	}
}

func (c *questionnaireController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/questionnaire/v1")
	h.Get("", c.GetAnswers)
	h.Post("extract", c.Extract)
	h.Post("answers", c.OverwriteAnswers)
	h.Post("vision", c.VisionExtract)
	h.Post("module-summary", c.ModuleSummary)
}

func (c *questionnaireController) GetAnswers(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Query("session_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session_id")
	}

	res, err := c.questionnaireService.GetAnswers(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get answers", res))
}

func (c *questionnaireController) Extract(ctx *fiber.Ctx) error {
	var req dto.ExtractRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.questionnaireService.Extract(ctx.Context(), req.SessionId, req.Key)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success extract answers", res))
}

func (c *questionnaireController) OverwriteAnswers(ctx *fiber.Ctx) error {
	var req dto.OverwriteAnswersRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.questionnaireService.OverwriteValues(ctx.Context(), req.SessionId, req.Values)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save answers", res))
}

func (c *questionnaireController) VisionExtract(ctx *fiber.Ctx) error {
	var req dto.VisionExtractRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.questionnaireService.VisionExtract(ctx.Context(), req.SessionId, req.Key)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success vision extract", res))
}

func (c *questionnaireController) ModuleSummary(ctx *fiber.Ctx) error {
	var req dto.ModuleSummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.questionnaireService.ModuleSummary(ctx.Context(), req.SessionId, req.Key)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success module summary", res))
}
