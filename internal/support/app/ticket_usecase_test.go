package app

import (
	"errors"
	"os"
	"strings"
	"testing"

	notifdomain "farm_market_service/internal/notification/domain"
	"farm_market_service/internal/support/domain"
	errprocess "farm_market_service/pkg/err"
	"farm_market_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.SetNewNop()
	os.Exit(m.Run())
}

// MockTicketRepo Mock TicketRepo
type MockTicketRepo struct {
	mock.Mock
}

// AutoMigrate moke auto migrate
func (m *MockTicketRepo) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

// Create moke create ticket
func (m *MockTicketRepo) Create(ticket *domain.Ticket) error {
	args := m.Called(ticket)
	return args.Error(0)
}

// GetByTicketID moke get ticket by id
func (m *MockTicketRepo) GetByTicketID(ticketID string) (*domain.Ticket, error) {
	args := m.Called(ticketID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

// Update moke update ticket
func (m *MockTicketRepo) Update(ticket *domain.Ticket) error {
	args := m.Called(ticket)
	return args.Error(0)
}

// FindByStatus moke find tickets by status
func (m *MockTicketRepo) FindByStatus(status domain.TicketStatus) ([]domain.Ticket, error) {
	args := m.Called(status)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByEmail moke find tickets by email
func (m *MockTicketRepo) FindByEmail(email string) ([]domain.Ticket, error) {
	args := m.Called(email)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockNotifyQueue Mock NotifyQueue
type MockNotifyQueue struct {
	mock.Mock
}

// Enqueue moke enqueue notification job
func (m *MockNotifyQueue) Enqueue(job notifdomain.NotificationJob) error {
	args := m.Called(job)
	return args.Error(0)
}

// 測試建立工單會產生編號並發通知
func TestCreateTicket(t *testing.T) {
	repo := new(MockTicketRepo)
	notify := new(MockNotifyQueue)

	repo.On("Create", mock.MatchedBy(func(tk *domain.Ticket) bool {
		return strings.HasPrefix(tk.TicketID, "WF-") && tk.Status == domain.TicketOpen
	})).Return(nil)
	notify.On("Enqueue", mock.MatchedBy(func(job notifdomain.NotificationJob) bool {
		return job.Type == notifdomain.TypeTicket && job.RelatedTicket != ""
	})).Return(nil)

	uc := NewTicketUseCase(repo, notify)
	ticket, err := uc.CreateTicket(domain.CreateTicketReq{
		Subject: "缺貨查詢",
		Message: "請問 A 級蛋何時補貨",
		Name:    "Amy",
		Email:   "amy@mail.com",
	})

	assert.NoError(t, err)
	assert.Len(t, ticket.TicketID, 9)
	repo.AssertExpectations(t)
	notify.AssertExpectations(t)
}

// 測試必填欄位驗證
func TestCreateTicket_Validation(t *testing.T) {
	uc := NewTicketUseCase(new(MockTicketRepo), new(MockNotifyQueue))

	_, err := uc.CreateTicket(domain.CreateTicketReq{Subject: " ", Message: "x", Email: "a@b.c"})
	assert.True(t, errors.Is(err, errprocess.ErrValidation))

	_, err = uc.CreateTicket(domain.CreateTicketReq{Subject: "x", Message: "y", Email: ""})
	assert.True(t, errors.Is(err, errprocess.ErrValidation))
}

// 測試通知失敗不影響建單
func TestCreateTicket_NotifyFailureIgnored(t *testing.T) {
	repo := new(MockTicketRepo)
	notify := new(MockNotifyQueue)
	repo.On("Create", mock.Anything).Return(nil)
	notify.On("Enqueue", mock.Anything).Return(errors.New("mq down"))

	uc := NewTicketUseCase(repo, notify)
	_, err := uc.CreateTicket(domain.CreateTicketReq{Subject: "s", Message: "m", Email: "a@b.c"})

	assert.NoError(t, err)
}

// 測試狀態更新與非法狀態
func TestUpdateTicketStatus(t *testing.T) {
	repo := new(MockTicketRepo)
	uc := NewTicketUseCase(repo, nil)

	_, err := uc.UpdateTicketStatus("WF-000001", "archived")
	assert.True(t, errors.Is(err, errprocess.ErrValidation))

	repo.On("GetByTicketID", "WF-000001").Return(&domain.Ticket{TicketID: "WF-000001", Status: domain.TicketOpen}, nil)
	repo.On("Update", mock.MatchedBy(func(tk *domain.Ticket) bool {
		return tk.Status == domain.TicketClosed
	})).Return(nil)

	ticket, err := uc.UpdateTicketStatus("WF-000001", domain.TicketClosed)
	assert.NoError(t, err)
	assert.Equal(t, domain.TicketClosed, ticket.Status)
	repo.AssertExpectations(t)
}

// 測試查無工單回 NotFound
func TestGetTicket_NotFound(t *testing.T) {
	repo := new(MockTicketRepo)
	repo.On("GetByTicketID", "WF-missing").Return(nil, nil)

	uc := NewTicketUseCase(repo, nil)
	_, err := uc.GetTicket("WF-missing")

	assert.True(t, errors.Is(err, errprocess.ErrNotFound))
}

// 測試依信箱列出自己的工單
func TestMyTickets(t *testing.T) {
	repo := new(MockTicketRepo)
	repo.On("FindByEmail", "buyer@mail.com").Return([]domain.Ticket{
		{TicketID: "WF-000001", Email: "buyer@mail.com"},
	}, nil)

	uc := NewTicketUseCase(repo, nil)
	tickets, err := uc.MyTickets("buyer@mail.com")

	assert.NoError(t, err)
	assert.Len(t, tickets, 1)
	repo.AssertExpectations(t)
}

// 測試沒帶信箱時擋下查詢
func TestMyTickets_MissingEmail(t *testing.T) {
	repo := new(MockTicketRepo)
	uc := NewTicketUseCase(repo, nil)

	_, err := uc.MyTickets("  ")

	assert.True(t, errors.Is(err, errprocess.ErrValidation))
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything)
}
