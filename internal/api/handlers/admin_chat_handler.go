package handlers

import (
	"net/http"
	"strconv"

	"farm_market_service/internal/chat/app"
	"farm_market_service/internal/chat/domain"
	errprocess "farm_market_service/pkg/err"
	"farm_market_service/pkg/logger"
	"farm_market_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// AdminChatHandler definition admin chat handler
type AdminChatHandler struct {
	ConversationUC *app.ConversationUseCase
}

// NewAdminChatHandler create a AdminChatHandler
func NewAdminChatHandler(conversationUC *app.ConversationUseCase) *AdminChatHandler {
	return &AdminChatHandler{ConversationUC: conversationUC}
}

// ListConversations 後台對話列表
func (h *AdminChatHandler) ListConversations(c *fiber.Ctx) error {
	status := c.Query("status", "all")
	limit, _ := strconv.ParseInt(c.Query("limit", "50"), 10, 64)
	skip, _ := strconv.ParseInt(c.Query("skip", "0"), 10, 64)

	convs, total, page, err := h.ConversationUC.ListConversations(c.Context(), status, limit, skip)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"conversations": convs,
		"total":         total,
		"pagination":    page,
	})
}

// Stats 客服儀表板統計
func (h *AdminChatHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.ConversationUC.Stats(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}

// GetConversation 取得單一對話
func (h *AdminChatHandler) GetConversation(c *fiber.Ctx) error {
	conv, err := h.ConversationUC.GetConversation(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"conversation": conv,
	})
}

type adminReplyReq struct {
	Message     string             `json:"message"`
	MessageType domain.MessageType `json:"messageType"`
}

// Reply 管理員回覆訊息
func (h *AdminChatHandler) Reply(c *fiber.Ctx) error {
	var req adminReplyReq
	if err := c.BodyParser(&req); err != nil {
		logger.Log.Error("parse admin reply body fail : " + err.Error())
		return fail(c, errprocess.Validation("invalid request body"))
	}

	adminID, _ := c.Locals(middlewares.TokenAccountID).(string)
	adminName, _ := c.Locals(middlewares.TokenAccountName).(string)

	conv, msg, err := h.ConversationUC.SubmitAdminReply(c.Context(), c.Params("id"), adminID, adminName, req.Message, req.MessageType)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"conversation": conv,
		"message":      msg,
	})
}

type updateMetaReq struct {
	Status     *domain.ConversationStatus `json:"status"`
	Priority   *domain.Priority           `json:"priority"`
	AssignedTo *string                    `json:"assignedTo"`
	Tags       []string                   `json:"tags"`
}

// UpdateMeta 更新對話狀態、優先度、指派與標籤
func (h *AdminChatHandler) UpdateMeta(c *fiber.Ctx) error {
	var req updateMetaReq
	if err := c.BodyParser(&req); err != nil {
		logger.Log.Error("parse update meta body fail : " + err.Error())
		return fail(c, errprocess.Validation("invalid request body"))
	}

	conv, err := h.ConversationUC.UpdateConversationMeta(c.Context(), c.Params("id"), domain.MetaPatch{
		Status:     req.Status,
		Priority:   req.Priority,
		AssignedTo: req.AssignedTo,
		Tags:       req.Tags,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"conversation": conv,
	})
}

// MarkRead 將對話內使用者訊息標為已讀
func (h *AdminChatHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.ConversationUC.MarkMessagesRead(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
