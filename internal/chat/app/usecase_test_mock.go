package app

import (
	"context"
	"time"

	"farm_market_service/internal/chat/domain"
	notifdomain "farm_market_service/internal/notification/domain"

	"github.com/stretchr/testify/mock"
)

// MockConversationRepository Mock ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

// FindOpenByParty moke find open conversation by identity
func (m *MockConversationRepository) FindOpenByParty(ctx context.Context, party domain.Party) (*domain.Conversation, error) {
	args := m.Called(ctx, party)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByID moke find conversation by id
func (m *MockConversationRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// Insert moke insert conversation
func (m *MockConversationRepository) Insert(ctx context.Context, conv *domain.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

// AppendUserMessage moke append user message
func (m *MockConversationRepository) AppendUserMessage(ctx context.Context, id string, msg domain.ConversationMessage) (*domain.Conversation, error) {
	args := m.Called(ctx, id, msg)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// AppendAdminMessage moke append admin message
func (m *MockConversationRepository) AppendAdminMessage(ctx context.Context, id string, msg domain.ConversationMessage, status domain.ConversationStatus) (*domain.Conversation, error) {
	args := m.Called(ctx, id, msg, status)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateMeta moke update conversation meta
func (m *MockConversationRepository) UpdateMeta(ctx context.Context, id string, patch domain.MetaPatch) (*domain.Conversation, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkAllRead moke mark all user messages read
func (m *MockConversationRepository) MarkAllRead(ctx context.Context, id string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

// List moke list conversations
func (m *MockConversationRepository) List(ctx context.Context, status string, limit, skip int64) ([]domain.Conversation, int64, error) {
	args := m.Called(ctx, status, limit, skip)
	var convs []domain.Conversation
	if args.Get(0) != nil {
		convs = args.Get(0).([]domain.Conversation)
	}
	return convs, args.Get(1).(int64), args.Error(2)
}

// Stats moke conversation stats
func (m *MockConversationRepository) Stats(ctx context.Context, onlineWindow time.Duration) (*domain.ChatStats, error) {
	args := m.Called(ctx, onlineWindow)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ChatStats), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockHistoryRepository Mock HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

// Insert moke insert history message
func (m *MockHistoryRepository) Insert(ctx context.Context, msg *domain.HistoryMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// FindByParty moke find history by identity
func (m *MockHistoryRepository) FindByParty(ctx context.Context, party domain.Party) ([]domain.HistoryMessage, error) {
	args := m.Called(ctx, party)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.HistoryMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPublisher Mock Publisher
type MockPublisher struct {
	mock.Mock
}

// Publish moke publish event to room
func (m *MockPublisher) Publish(room, event string, payload map[string]interface{}) error {
	args := m.Called(room, event, payload)
	return args.Error(0)
}

// Subscribe moke subscribe room
func (m *MockPublisher) Subscribe(ctx context.Context, room string, handler func(domain.ChatEvent)) error {
	args := m.Called(ctx, room, handler)
	return args.Error(0)
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
