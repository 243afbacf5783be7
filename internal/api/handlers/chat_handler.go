package handlers

import (
	"net/http"

	accountapp "farm_market_service/internal/account/app"
	"farm_market_service/internal/chat/app"
	"farm_market_service/internal/chat/domain"
	errprocess "farm_market_service/pkg/err"
	"farm_market_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler definition chat handler
type ChatHandler struct {
	ConversationUC *app.ConversationUseCase
	AccountUC      *accountapp.AccountUseCase
}

// NewChatHandler create a ChatHandler
func NewChatHandler(conversationUC *app.ConversationUseCase, accountUC *accountapp.AccountUseCase) *ChatHandler {
	return &ChatHandler{ConversationUC: conversationUC, AccountUC: accountUC}
}

type postMessageReq struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	GuestID string `json:"guestId"`
}

// PostMessage 接收使用者訊息並回覆自動應答
func (h *ChatHandler) PostMessage(c *fiber.Ctx) error {
	var req postMessageReq
	if err := c.BodyParser(&req); err != nil {
		logger.Log.Error("parse chat message body fail : " + err.Error())
		return fail(c, errprocess.Validation("invalid request body"))
	}

	party, name, email := requestParty(c, req.GuestID)
	if name == "" {
		name = req.Name
	}
	if email == "" {
		email = req.Email
	}

	// token 沒帶顯示資訊時補查帳號資料
	if party.Kind == domain.PartyUser && (name == "" || email == "") && h.AccountUC != nil {
		if account, err := h.AccountUC.GetByAccountID(c.Context(), party.ID); err == nil {
			if name == "" {
				name = account.Name
			}
			if email == "" {
				email = account.Email
			}
		}
	}

	msgs, err := h.ConversationUC.SubmitUserMessage(c.Context(), party, name, email, req.Message)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"messages": msgs,
	})
}

// GetHistory 取得自己的訊息歷史
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	party, _, _ := requestParty(c, "")

	msgs, err := h.ConversationUC.GetHistory(c.Context(), party)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"messages": msgs,
	})
}
