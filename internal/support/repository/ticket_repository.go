package repository

import (
	"errors"

	"farm_market_service/internal/support/domain"

	"gorm.io/gorm"
)

// TicketRepo definition get ticket info
type TicketRepo interface {
	AutoMigrate() error
	Create(ticket *domain.Ticket) error
	GetByTicketID(ticketID string) (*domain.Ticket, error)
	Update(ticket *domain.Ticket) error
	FindByStatus(status domain.TicketStatus) ([]domain.Ticket, error)
	FindByEmail(email string) ([]domain.Ticket, error)
	// 其他 CRUD ...
}

type ticketRepo struct {
	db *gorm.DB
}

// NewTicketRepo create TicketRepo
func NewTicketRepo(db *gorm.DB) TicketRepo {
	return &ticketRepo{db: db}
}

func (r *ticketRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Ticket{})
}

func (r *ticketRepo) Create(ticket *domain.Ticket) error {
	return r.db.Create(ticket).Error
}

// GetByTicketID 查不到回傳 nil,nil
func (r *ticketRepo) GetByTicketID(ticketID string) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := r.db.Where("ticket_id = ?", ticketID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepo) Update(ticket *domain.Ticket) error {
	return r.db.Save(ticket).Error
}

func (r *ticketRepo) FindByStatus(status domain.TicketStatus) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	if err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepo) FindByEmail(email string) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	if err := r.db.Where("email = ?", email).Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}
