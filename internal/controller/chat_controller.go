package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pdf-explainer-be/internal/dto"
	"pdf-explainer-be/internal/pkg/serverutils"
	"pdf-explainer-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Progress(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("send", c.Send)
	h.Get("progress/:id", c.Progress)
}

// Send answers 202 in both outcomes: the exchange result always arrives
// through the session history, and a rejected duplicate send is reported in
// the ack body, not as an error.
func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ack, err := c.chatService.Send(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Prompt accepted", ack))
}

func (c *chatController) Progress(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, found := c.chatService.Progress(id)
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get progress", res))
}
