package handlers

import (
	"net/http"

	"farm_market_service/internal/support/app"
	"farm_market_service/internal/support/domain"
	errprocess "farm_market_service/pkg/err"
	"farm_market_service/pkg/logger"
	"farm_market_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// SupportHandler definition support ticket handler
type SupportHandler struct {
	TicketUC *app.TicketUseCase
}

// NewSupportHandler create a SupportHandler
func NewSupportHandler(ticketUC *app.TicketUseCase) *SupportHandler {
	return &SupportHandler{TicketUC: ticketUC}
}

type createTicketReq struct {
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
}

// CreateTicket 建立客服工單
func (h *SupportHandler) CreateTicket(c *fiber.Ctx) error {
	var req createTicketReq
	if err := c.BodyParser(&req); err != nil {
		logger.Log.Error("parse create ticket body fail : " + err.Error())
		return fail(c, errprocess.Validation("invalid request body"))
	}

	accountID, _ := c.Locals(middlewares.TokenAccountID).(string)
	ticket, err := h.TicketUC.CreateTicket(domain.CreateTicketReq{
		Subject:   req.Subject,
		Message:   req.Message,
		Name:      req.Name,
		Email:     req.Email,
		Category:  req.Category,
		AccountID: accountID,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"ticket":  ticket,
	})
}

// MyTickets 查詢自己的工單，登入者用 token 信箱，訪客帶 query 信箱
func (h *SupportHandler) MyTickets(c *fiber.Ctx) error {
	email, _ := c.Locals(middlewares.TokenAccountEmail).(string)
	if email == "" {
		email = c.Query("email")
	}

	tickets, err := h.TicketUC.MyTickets(email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"tickets": tickets,
	})
}

// ListTickets 後台工單列表
func (h *SupportHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.TicketUC.ListTickets(domain.TicketStatus(c.Query("status")))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"tickets": tickets,
	})
}

// GetTicket 查詢單一工單
func (h *SupportHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.TicketUC.GetTicket(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"ticket":  ticket,
	})
}

type updateTicketStatusReq struct {
	Status domain.TicketStatus `json:"status"`
}

// UpdateTicketStatus 更新工單狀態
func (h *SupportHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	var req updateTicketStatusReq
	if err := c.BodyParser(&req); err != nil {
		logger.Log.Error("parse update ticket status body fail : " + err.Error())
		return fail(c, errprocess.Validation("invalid request body"))
	}

	ticket, err := h.TicketUC.UpdateTicketStatus(c.Params("id"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"ticket":  ticket,
	})
}
