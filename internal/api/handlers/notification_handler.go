package handlers

import (
	"strconv"

	"farm_market_service/internal/notification/app"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler definition admin notification handler
type NotificationHandler struct {
	NotificationUC *app.NotificationUseCase
}

// NewNotificationHandler create a NotificationHandler
func NewNotificationHandler(notificationUC *app.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{NotificationUC: notificationUC}
}

// List 後台通知列表
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	unreadOnly := c.Query("unread") == "true"
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	skip, _ := strconv.ParseInt(c.Query("skip", "0"), 10, 64)

	notifications, total, err := h.NotificationUC.List(c.Context(), unreadOnly, limit, skip)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"notifications": notifications,
		"total":         total,
	})
}

// UnreadCount 未讀通知數
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.NotificationUC.CountUnread(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   count,
	})
}

// MarkRead 單筆通知已讀
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.NotificationUC.MarkRead(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// MarkAllRead 全部通知已讀
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	modified, err := h.NotificationUC.MarkAllRead(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"modified": modified,
	})
}

// Delete 刪除通知
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	if err := h.NotificationUC.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
