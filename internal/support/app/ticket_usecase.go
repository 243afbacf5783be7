package app

import (
	"strings"
	"time"

	notifdomain "farm_market_service/internal/notification/domain"
	"farm_market_service/internal/support/domain"
	"farm_market_service/internal/support/repository"
	errprocess "farm_market_service/pkg/err"
	"farm_market_service/pkg/logger"
)

// NotifyQueue definition support 對後台通知 queue 的依賴
type NotifyQueue interface {
	Enqueue(job notifdomain.NotificationJob) error
}

// TicketUseCase definition support ticket usecase
type TicketUseCase struct {
	ticketRepo repository.TicketRepo
	notify     NotifyQueue
}

// NewTicketUseCase create a TicketUseCase
func NewTicketUseCase(ticketRepo repository.TicketRepo, notify NotifyQueue) *TicketUseCase {
	return &TicketUseCase{ticketRepo: ticketRepo, notify: notify}
}

// CreateTicket 建立工單並發出後台通知
func (uc *TicketUseCase) CreateTicket(req domain.CreateTicketReq) (*domain.Ticket, error) {
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, errprocess.Validation("subject and message are required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, errprocess.Validation("email is required")
	}

	now := time.Now()
	ticket := &domain.Ticket{
		TicketID:  domain.NewTicketID(now),
		Subject:   req.Subject,
		Message:   req.Message,
		Name:      req.Name,
		Email:     req.Email,
		Category:  req.Category,
		Status:    domain.TicketOpen,
		Priority:  "medium",
		AccountID: req.AccountID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.ticketRepo.Create(ticket); err != nil {
		logger.Log.Error("create ticket fail : " + err.Error())
		return nil, errprocess.Set("create ticket fail")
	}

	// 通知失敗只記 log，不影響建單
	if uc.notify != nil {
		job := notifdomain.NotificationJob{
			Title:         "新的客服工單 " + ticket.TicketID,
			Message:       ticket.Subject,
			Type:          notifdomain.TypeTicket,
			Priority:      ticket.Priority,
			RelatedTicket: ticket.TicketID,
		}
		if err := uc.notify.Enqueue(job); err != nil {
			logger.Log.Warn("enqueue ticket notification fail : " + err.Error())
		}
	}

	return ticket, nil
}

// GetTicket 依工單編號查詢
func (uc *TicketUseCase) GetTicket(ticketID string) (*domain.Ticket, error) {
	ticket, err := uc.ticketRepo.GetByTicketID(ticketID)
	if err != nil {
		logger.Log.Error("find ticket fail : " + err.Error())
		return nil, errprocess.Set("find ticket fail")
	}
	if ticket == nil {
		return nil, errprocess.NotFound("ticket not found")
	}
	return ticket, nil
}

// UpdateTicketStatus 更新工單狀態
func (uc *TicketUseCase) UpdateTicketStatus(ticketID string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !domain.ValidTicketStatus(status) {
		return nil, errprocess.Validation("invalid ticket status")
	}
	ticket, err := uc.GetTicket(ticketID)
	if err != nil {
		return nil, err
	}
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	if err := uc.ticketRepo.Update(ticket); err != nil {
		logger.Log.Error("update ticket fail : " + err.Error())
		return nil, errprocess.Set("update ticket fail")
	}
	return ticket, nil
}

// MyTickets 依信箱列出自己的工單
func (uc *TicketUseCase) MyTickets(email string) ([]domain.Ticket, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errprocess.Validation("email is required")
	}
	tickets, err := uc.ticketRepo.FindByEmail(email)
	if err != nil {
		logger.Log.Error("list my tickets fail : " + err.Error())
		return nil, errprocess.Set("list my tickets fail")
	}
	return tickets, nil
}

// ListTickets 依狀態列出工單，空狀態回傳 open
func (uc *TicketUseCase) ListTickets(status domain.TicketStatus) ([]domain.Ticket, error) {
	if status == "" {
		status = domain.TicketOpen
	}
	if !domain.ValidTicketStatus(status) {
		return nil, errprocess.Validation("invalid ticket status")
	}
	tickets, err := uc.ticketRepo.FindByStatus(status)
	if err != nil {
		logger.Log.Error("list tickets fail : " + err.Error())
		return nil, errprocess.Set("list tickets fail")
	}
	return tickets, nil
}
