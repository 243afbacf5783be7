package domain

import (
	"strconv"
	"time"

	"farm_market_service/pkg"
)

// TicketStatus definition ticket status
type TicketStatus string

const (
	// TicketOpen ticket status is open
	TicketOpen TicketStatus = "open"
	// TicketInProgress ticket status is in-progress
	TicketInProgress TicketStatus = "in-progress"
	// TicketClosed ticket status is closed
	TicketClosed TicketStatus = "closed"
)

// ValidTicketStatus 檢查工單狀態是否合法
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketClosed:
		return true
	}
	return false
}

// Ticket 定義客服工單模型
type Ticket struct {
	ID        uint         `gorm:"primaryKey" json:"-"`
	TicketID  string       `gorm:"uniqueIndex" json:"ticketId"`
	Subject   string       `json:"subject"`
	Message   string       `json:"message"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Category  string       `json:"category"`
	Status    TicketStatus `json:"status"`
	Priority  string       `json:"priority"`
	AccountID string       `json:"accountId,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewTicketID 以時間戳尾碼產生工單編號
func NewTicketID(at time.Time) string {
	ms := strconv.FormatInt(at.UnixMilli(), 10)
	return "WF-" + pkg.LastN(ms, 6)
}

// CreateTicketReq usecase create ticket request
type CreateTicketReq struct {
	Subject   string
	Message   string
	Name      string
	Email     string
	Category  string
	AccountID string
}
