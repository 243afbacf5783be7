package handlers

import (
	accountapp "farm_market_service/internal/account/app"
	accountdomain "farm_market_service/internal/account/domain"
	errprocess "farm_market_service/pkg/err"
	"farm_market_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler definition account handler
type AccountHandler struct {
	AccountUC *accountapp.AccountUseCase
}

// NewAccountHandler create a AccountHandler
func NewAccountHandler(accountUC *accountapp.AccountUseCase) *AccountHandler {
	return &AccountHandler{AccountUC: accountUC}
}

type updateAccountStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus 後台停用或恢復帳號
func (h *AccountHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateAccountStatusReq
	if err := c.BodyParser(&req); err != nil {
		logger.Log.Error("parse update account status body fail : " + err.Error())
		return fail(c, errprocess.Validation("invalid request body"))
	}

	status, ok := accountdomain.ParseAccountStatus(req.Status)
	if !ok {
		return fail(c, errprocess.Validation("invalid account status"))
	}

	account, err := h.AccountUC.SetAccountStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"accountId": account.AccountID,
		"status":    account.Status,
	})
}
