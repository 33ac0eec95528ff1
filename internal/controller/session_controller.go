package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pdf-explainer-be/internal/pkg/serverutils"
	"pdf-explainer-be/internal/service"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id/select", c.Select)
	h.Delete(":id", c.Delete)
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", c.sessionService.List()))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, found := c.sessionService.Show(id)
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

// Select is a no-op for unknown ids: the active pointer never moves to a
// session that is not in the store.
func (c *sessionController) Select(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	selected := c.sessionService.Select(id)
	return ctx.JSON(serverutils.SuccessResponse("Success select session", fiber.Map{
		"selected": selected,
	}))
}

// Delete returns the refreshed list so the client immediately knows the new
// active session, or that none remains.
func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	if !c.sessionService.Delete(id) {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", c.sessionService.List()))
}
