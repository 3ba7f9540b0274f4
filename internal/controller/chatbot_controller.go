package controller

import (
	"errors"

	"portfolio-ai-be/internal/apperror"
	"portfolio-ai-be/internal/dto"
	"portfolio-ai-be/internal/pkg/serverutils"
	"portfolio-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IChatbotController serves the public widget endpoints.
// Responses use the bare {"response"} / {"error"} shapes the widget expects.
type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetConfig(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatbotService
}

func NewChatbotController(service service.IChatbotService) IChatbotController {
	return &chatbotController{service: service}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("/message", c.SendMessage)
	h.Get("/config", c.GetConfig)
}

func (c *chatbotController) SendMessage(ctx *fiber.Ctx) error {
	// A malformed body still goes through the service so rate limiting runs first;
	// the zero request then fails validation.
	var req dto.SendChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		req = dto.SendChatMessageRequest{}
	}

	res, err := c.service.SendChatMessage(ctx.UserContext(), ctx.IP(), req)
	if err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *chatbotController) GetConfig(ctx *fiber.Ctx) error {
	res, err := c.service.GetPublicConfig(ctx.UserContext())
	if err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(res)
}

// chatError writes typed errors as {"error"}; anything else goes to the error handler
func chatError(ctx *fiber.Ctx, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return ctx.Status(appErr.HTTPStatus()).JSON(serverutils.ErrorBody{Error: appErr.Message})
	}
	return err
}
