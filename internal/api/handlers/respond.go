package handlers

import (
	"errors"
	"net/http"

	"farm_market_service/internal/chat/domain"
	errprocess "farm_market_service/pkg/err"
	"farm_market_service/pkg/middlewares"
	"farm_market_service/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// fail 依錯誤類型決定 HTTP 狀態碼
func fail(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errprocess.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errprocess.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errprocess.ErrAuth):
		status = http.StatusUnauthorized
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
}

// requestParty 從 token locals 或 guestId 解出請求身份與顯示資訊
func requestParty(c *fiber.Ctx, bodyGuestID string) (domain.Party, string, string) {
	name, _ := c.Locals(middlewares.TokenAccountName).(string)
	email, _ := c.Locals(middlewares.TokenAccountEmail).(string)

	if accountID, ok := c.Locals(middlewares.TokenAccountID).(string); ok && accountID != "" {
		kind := domain.PartyUser
		if role, ok := c.Locals(middlewares.TokenRole).(string); ok && role == string(token.RoleAdmin) {
			kind = domain.PartyAdmin
		}
		return domain.Party{Kind: kind, ID: accountID}, name, email
	}

	guestID := bodyGuestID
	if guestID == "" {
		guestID = c.Query("guestId")
	}
	if guestID == "" {
		return domain.Party{}, "", ""
	}
	return domain.Party{Kind: domain.PartyGuest, ID: guestID}, "", ""
}
