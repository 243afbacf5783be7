package app

import (
	"context"
	"strings"
	"time"

	"farm_market_service/internal/chat/domain"
	"farm_market_service/internal/chat/repository"
	notifdomain "farm_market_service/internal/notification/domain"
	errprocess "farm_market_service/pkg/err"
	"farm_market_service/pkg/logger"

	"github.com/google/uuid"
)

// NotifyQueue definition chat 對後台通知 queue 的依賴
type NotifyQueue interface {
	Enqueue(job notifdomain.NotificationJob) error
}

// onlineWindow 最近活動視為在線的時間窗
const onlineWindow = 5 * time.Minute

// defaultListLimit 後台列表預設筆數
const defaultListLimit = 50

// ConversationUseCase definition conversation usecase
type ConversationUseCase struct {
	conv    repository.ConversationRepository
	history repository.HistoryRepository
	pub     repository.Publisher
	notify  NotifyQueue
}

// NewConversationUseCase creates a ConversationUseCase
func NewConversationUseCase(
	conv repository.ConversationRepository,
	history repository.HistoryRepository,
	pub repository.Publisher,
	notify NotifyQueue,
) *ConversationUseCase {
	return &ConversationUseCase{
		conv:    conv,
		history: history,
		pub:     pub,
		notify:  notify,
	}
}

// SubmitUserMessage 接收使用者訊息：找或建對話、寫入訊息、廣播給後台並回覆自動應答
func (uc *ConversationUseCase) SubmitUserMessage(ctx context.Context, party domain.Party, name, email, text string) ([]domain.HistoryMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errprocess.Validation("message text is required")
	}
	if party.IsZero() {
		return nil, errprocess.Validation("guest id or authenticated user is required")
	}

	now := time.Now()
	msg := domain.ConversationMessage{
		ID:          uuid.New().String(),
		Sender:      domain.SenderUser,
		SenderID:    party.ID,
		SenderKind:  party.Kind,
		Message:     text,
		MessageType: domain.MessageText,
		Read:        false,
		CreatedAt:   now,
	}

	conv, err := uc.conv.FindOpenByParty(ctx, party)
	if err != nil {
		logger.Log.Error("find open conversation fail : " + err.Error())
		return nil, errprocess.Set("find conversation fail")
	}

	created := false
	if conv == nil {
		// resolved 的對話不再沿用，開新的一筆
		created = true
		conv = &domain.Conversation{
			Status:          domain.StatusPending,
			Priority:        domain.PriorityMedium,
			UserName:        name,
			UserEmail:       email,
			LastMessage:     text,
			LastMessageTime: now,
			UnreadCount:     1,
			Messages:        []domain.ConversationMessage{msg},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		switch party.Kind {
		case domain.PartyUser:
			conv.UserID = party.ID
		case domain.PartyGuest:
			conv.GuestID = party.ID
			if conv.UserName == "" {
				conv.UserName = domain.GuestLabel(party.ID)
			}
		}
		if err := uc.conv.Insert(ctx, conv); err != nil {
			logger.Log.Error("insert conversation fail : " + err.Error())
			return nil, errprocess.Set("create conversation fail")
		}
	} else {
		updated, err := uc.conv.AppendUserMessage(ctx, conv.ID.Hex(), msg)
		if err != nil {
			logger.Log.Error("append user message fail : " + err.Error())
			return nil, errprocess.Set("append message fail")
		}
		if updated == nil {
			return nil, errprocess.NotFound("chat conversation not found")
		}
		conv = updated
	}

	// 使用者訊息與自動應答各留一筆歷史紀錄
	userRec := domain.HistoryMessage{Text: text, IsBot: false, CreatedAt: now}
	botRec := domain.HistoryMessage{Text: domain.AckText, IsBot: true, CreatedAt: now}
	switch party.Kind {
	case domain.PartyUser:
		userRec.UserID, botRec.UserID = party.ID, party.ID
	case domain.PartyGuest:
		userRec.GuestID, botRec.GuestID = party.ID, party.ID
	}
	if err := uc.history.Insert(ctx, &userRec); err != nil {
		logger.Log.Error("insert chat history fail : " + err.Error())
		return nil, errprocess.Set("save message fail")
	}
	if err := uc.history.Insert(ctx, &botRec); err != nil {
		logger.Log.Error("insert chat history fail : " + err.Error())
		return nil, errprocess.Set("save message fail")
	}

	// 廣播失敗只記 log，不影響回應
	if err := uc.pub.Publish(domain.AdminRoom, domain.EventNewUserMessage, map[string]interface{}{
		"conversationId": conv.ID.Hex(),
		"message":        msg,
		"userName":       conv.UserName,
		"userEmail":      conv.UserEmail,
		"status":         conv.Status,
	}); err != nil {
		logger.Log.Warn("publish admin room fail : " + err.Error())
	}

	if created && uc.notify != nil {
		job := notifdomain.NotificationJob{
			Title:               "新的客服對話",
			Message:             conv.UserName + " 開啟了新的對話",
			Type:                notifdomain.TypeUser,
			Priority:            string(domain.PriorityMedium),
			RelatedConversation: conv.ID.Hex(),
		}
		if err := uc.notify.Enqueue(job); err != nil {
			logger.Log.Warn("enqueue admin notification fail : " + err.Error())
		}
	}

	return []domain.HistoryMessage{userRec, botRec}, nil
}

// SubmitAdminReply 後台回覆訊息，已結案的對話回覆後重新轉為 active
func (uc *ConversationUseCase) SubmitAdminReply(ctx context.Context, conversationID, adminID, adminName, text string, messageType domain.MessageType) (*domain.Conversation, *domain.ConversationMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, errprocess.Validation("message text is required")
	}
	if messageType == "" {
		messageType = domain.MessageText
	}
	if !domain.ValidMessageType(messageType) {
		return nil, nil, errprocess.Validation("invalid message type")
	}

	conv, err := uc.conv.FindByID(ctx, conversationID)
	if err != nil {
		logger.Log.Error("find conversation fail : " + err.Error())
		return nil, nil, errprocess.Set("find conversation fail")
	}
	if conv == nil {
		return nil, nil, errprocess.NotFound("chat conversation not found")
	}

	status := conv.Status
	if status == domain.StatusResolved {
		status = domain.StatusActive
	}

	now := time.Now()
	msg := domain.ConversationMessage{
		ID:          uuid.New().String(),
		Sender:      domain.SenderAdmin,
		SenderID:    adminID,
		SenderKind:  domain.PartyAdmin,
		Message:     text,
		MessageType: messageType,
		Read:        false,
		CreatedAt:   now,
	}

	updated, err := uc.conv.AppendAdminMessage(ctx, conversationID, msg, status)
	if err != nil {
		logger.Log.Error("append admin message fail : " + err.Error())
		return nil, nil, errprocess.Set("append message fail")
	}
	if updated == nil {
		return nil, nil, errprocess.NotFound("chat conversation not found")
	}

	owner := updated.Owner()
	if !owner.IsZero() {
		if err := uc.pub.Publish(domain.UserRoom(owner.ID), domain.EventAdminMessage, map[string]interface{}{
			"conversationId": updated.ID.Hex(),
			"message":        msg,
			"adminName":      adminName,
		}); err != nil {
			logger.Log.Warn("publish user room fail : " + err.Error())
		}
	}

	return updated, &msg, nil
}

// UpdateConversationMeta 更新狀態、優先度、指派與標籤
func (uc *ConversationUseCase) UpdateConversationMeta(ctx context.Context, conversationID string, patch domain.MetaPatch) (*domain.Conversation, error) {
	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		return nil, errprocess.Validation("invalid conversation status")
	}
	if patch.Priority != nil && !domain.ValidPriority(*patch.Priority) {
		return nil, errprocess.Validation("invalid conversation priority")
	}

	updated, err := uc.conv.UpdateMeta(ctx, conversationID, patch)
	if err != nil {
		logger.Log.Error("update conversation meta fail : " + err.Error())
		return nil, errprocess.Set("update conversation fail")
	}
	if updated == nil {
		return nil, errprocess.NotFound("chat conversation not found")
	}
	return updated, nil
}

// MarkMessagesRead 將對話內使用者訊息全部標為已讀並歸零未讀數
func (uc *ConversationUseCase) MarkMessagesRead(ctx context.Context, conversationID string) error {
	matched, err := uc.conv.MarkAllRead(ctx, conversationID, time.Now())
	if err != nil {
		logger.Log.Error("mark messages read fail : " + err.Error())
		return errprocess.Set("mark messages read fail")
	}
	if !matched {
		return errprocess.NotFound("chat conversation not found")
	}
	return nil
}

// Stats 取得客服儀表板統計
func (uc *ConversationUseCase) Stats(ctx context.Context) (*domain.ChatStats, error) {
	stats, err := uc.conv.Stats(ctx, onlineWindow)
	if err != nil {
		logger.Log.Error("conversation stats fail : " + err.Error())
		return nil, errprocess.Set("get chat stats fail")
	}
	return stats, nil
}

// ListConversations 後台對話列表，支援狀態過濾與分頁
func (uc *ConversationUseCase) ListConversations(ctx context.Context, status string, limit, skip int64) ([]domain.Conversation, int64, domain.Pagination, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if skip < 0 {
		skip = 0
	}

	convs, total, err := uc.conv.List(ctx, status, limit, skip)
	if err != nil {
		logger.Log.Error("list conversations fail : " + err.Error())
		return nil, 0, domain.Pagination{}, errprocess.Set("list conversations fail")
	}
	page := domain.Pagination{
		Limit:   limit,
		Skip:    skip,
		HasMore: total > skip+limit,
	}
	return convs, total, page, nil
}

// GetConversation 取得單一對話完整內容
func (uc *ConversationUseCase) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	conv, err := uc.conv.FindByID(ctx, conversationID)
	if err != nil {
		logger.Log.Error("find conversation fail : " + err.Error())
		return nil, errprocess.Set("find conversation fail")
	}
	if conv == nil {
		return nil, errprocess.NotFound("chat conversation not found")
	}
	return conv, nil
}

// GetHistory 取得身份對應的訊息歷史，未帶身份時回傳空集合
func (uc *ConversationUseCase) GetHistory(ctx context.Context, party domain.Party) ([]domain.HistoryMessage, error) {
	if party.IsZero() {
		return []domain.HistoryMessage{}, nil
	}
	msgs, err := uc.history.FindByParty(ctx, party)
	if err != nil {
		logger.Log.Error("find chat history fail : " + err.Error())
		return nil, errprocess.Set("get chat history fail")
	}
	if msgs == nil {
		msgs = []domain.HistoryMessage{}
	}
	return msgs, nil
}
