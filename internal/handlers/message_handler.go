package handlers

import (
	"strconv"

	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/httpx"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/policy"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/service"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func actorFromCtx(c *fiber.Ctx) (policy.Actor, error) {
	userID, err := httpx.LocalUint(c, "userID")
	if err != nil {
		return policy.Actor{}, err
	}
	return policy.Actor{ID: userID, Role: httpx.LocalString(c, "role")}, nil
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	var input service.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	message, err := h.messageService.Send(actor.ID, input)
	if err != nil {
		return httpx.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message.ToResponse())
}

// GetMessages serves two shapes the frontend polls:
// with ?peer_id= it returns one chronological thread page (and clears the
// unread backlog from that peer); without it, the actor's own messages,
// newest first.
func (h *MessageHandler) GetMessages(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	page := validation.ParsePage(c.Query("page"))

	if peerIDStr := c.Query("peer_id"); peerIDStr != "" {
		peerID, err := strconv.ParseUint(peerIDStr, 10, 32)
		if err != nil || peerID == 0 {
			return httpx.BadRequest(c, "invalid_peer", "Invalid peer_id")
		}
		pageSize := validation.ParsePageSize(c.Query("page_size"), service.DefaultThreadPageSize, service.MaxPageSize)

		thread, err := h.messageService.Thread(actor.ID, uint(peerID), page, pageSize)
		if err != nil {
			return httpx.FromError(c, err)
		}
		return c.JSON(pageResponse(thread))
	}

	pageSize := validation.ParsePageSize(c.Query("page_size"), service.DefaultListPageSize, service.MaxPageSize)
	list, err := h.messageService.ListOwn(actor.ID, page, pageSize)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(pageResponse(list))
}

func (h *MessageHandler) GetMessage(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return httpx.BadRequest(c, "invalid_message_id", "Invalid message id")
	}

	message, err := h.messageService.Get(actor, uint(id))
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(message.ToResponse())
}

func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return httpx.BadRequest(c, "invalid_message_id", "Invalid message id")
	}

	if err := h.messageService.Delete(actor, uint(id)); err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Message deleted"})
}

func (h *MessageHandler) GetConversations(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	conversations, err := h.messageService.Conversations(actor.ID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(conversations)
}

func (h *MessageHandler) MarkConversationRead(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	peerID, err := strconv.ParseUint(c.Params("peer_id"), 10, 32)
	if err != nil || peerID == 0 {
		return httpx.BadRequest(c, "invalid_peer", "Invalid peer_id")
	}

	updated, err := h.messageService.MarkThreadRead(actor.ID, uint(peerID))
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}

// ListAllMessages is the administrator oversight view. The route is behind
// RequireRole("admin"); the service gate rejects again on its own.
func (h *MessageHandler) ListAllMessages(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return httpx.Unauthorized(c, "unauthorized", "Unauthorized")
	}

	page := validation.ParsePage(c.Query("page"))
	pageSize := validation.ParsePageSize(c.Query("page_size"), service.DefaultListPageSize, service.MaxPageSize)

	list, err := h.messageService.ListAll(actor, page, pageSize)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(pageResponse(list))
}

func pageResponse(page *service.MessagePage) fiber.Map {
	responses := make([]interface{}, len(page.Messages))
	for i := range page.Messages {
		responses[i] = page.Messages[i].ToResponse()
	}
	return fiber.Map{
		"messages":  responses,
		"total":     page.Total,
		"page":      page.Page,
		"page_size": page.PageSize,
	}
}
