package controller

import (
	"strconv"

	"portfolio-ai-be/internal/dto"
	"portfolio-ai-be/internal/pkg/serverutils"
	"portfolio-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)

	// AI Configuration
	GetAiConfig(ctx *fiber.Ctx) error
	UpdateAiConfig(ctx *fiber.Ctx) error
	TestConnection(ctx *fiber.Ctx) error

	// Conversations
	GetConversations(ctx *fiber.Ctx) error
	GetConversation(ctx *fiber.Ctx) error

	// Logs
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	service        service.IAdminService
	chatbotService service.IChatbotService
	jwtSecret      string
}

func NewAdminController(service service.IAdminService, chatbotService service.IChatbotService, jwtSecret string) IAdminController {
	return &adminController{
		service:        service,
		chatbotService: chatbotService,
		jwtSecret:      jwtSecret,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")

	// Every admin route requires an admin bearer token
	h.Use(serverutils.AdminJwtMiddleware(c.jwtSecret))

	// AI Configuration
	h.Get("/ai-config", c.GetAiConfig)
	h.Put("/ai-config", c.UpdateAiConfig)
	h.Post("/ai-config/test", c.TestConnection)

	// Conversations
	h.Get("/conversations", c.GetConversations)
	h.Get("/conversations/:sessionId", c.GetConversation)

	// Logs
	h.Get("/logs", c.GetLogs)
}

func (c *adminController) GetAiConfig(ctx *fiber.Ctx) error {
	config, err := c.service.GetAiConfig(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Failed to load AI configuration"))
	}
	return ctx.JSON(serverutils.SuccessResponse("AI configuration", config))
}

func (c *adminController) UpdateAiConfig(ctx *fiber.Ctx) error {
	var req dto.UpdateAiConfigRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	config, err := c.service.UpdateAiConfig(ctx.UserContext(), ctx.IP(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("AI configuration updated", config))
}

// TestConnection answers with the bare {success, message, models} or {error} shape
func (c *adminController) TestConnection(ctx *fiber.Ctx) error {
	var req dto.TestConnectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: "Invalid request body"})
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody{Error: err.Error()})
	}

	res, err := c.chatbotService.TestProviderConnection(ctx.UserContext(), ctx.IP(), req)
	if err != nil {
		return chatError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *adminController) GetConversations(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))

	conversations, err := c.service.GetConversations(ctx.UserContext(), page, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Failed to load conversations"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversations", conversations))
}

func (c *adminController) GetConversation(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")

	conversation, err := c.service.GetConversation(ctx.UserContext(), sessionId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Failed to load conversation"))
	}
	if conversation == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Conversation not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation", conversation))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	level := ctx.Query("level", "")

	logs, err := c.service.GetSystemLogs(ctx.UserContext(), page, limit, level)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Failed to load system logs"))
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}
