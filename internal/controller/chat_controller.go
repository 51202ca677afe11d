package controller

import (
	"errors"
	"fmt"

	"corp-learning-be/internal/dto"
	"corp-learning-be/internal/pkg/serverutils"
	"corp-learning-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetSessions(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	SubmitFeedback(ctx *fiber.Ctx) error
	GetAnalytics(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/message", c.SendMessage)
	h.Get("/history/:sessionId", c.GetHistory)
	h.Get("/sessions", c.GetSessions)
	h.Delete("/sessions/:sessionId", c.DeleteSession)
	h.Post("/feedback", c.SubmitFeedback)
	h.Get("/analytics", c.GetAnalytics)
}

// currentUserId extracts the authenticated user id set by the JWT middleware.
func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing user identity")
	}
	return uuid.Parse(raw)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user identity"))
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.SendMessage(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat response", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user identity"))
	}

	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	res, err := c.service.GetHistory(ctx.Context(), userId, sessionId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat history", res))
}

func (c *chatController) GetSessions(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user identity"))
	}

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.GetSessions(ctx.Context(), userId, limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat sessions", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user identity"))
	}

	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	if err := c.service.DeleteSession(ctx.Context(), userId, sessionId); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session deleted", nil))
}

func (c *chatController) SubmitFeedback(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user identity"))
	}

	var req dto.SubmitFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.service.SubmitFeedback(ctx.Context(), userId, &req); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		if errors.Is(err, service.ErrFeedbackAlreadySubmitted) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Feedback submitted", nil))
}

func (c *chatController) GetAnalytics(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user identity"))
	}

	periodDays := ctx.QueryInt("period_days", 30)

	res, err := c.service.Analytics(ctx.Context(), userId, periodDays)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat analytics", res))
}
