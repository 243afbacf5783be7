package domain

import (
	"time"

	"farm_market_service/pkg"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConversationStatus definition conversation status
type ConversationStatus string

const (
	// StatusPending 新對話等待客服接手
	StatusPending ConversationStatus = "pending"
	// StatusActive 對話進行中
	StatusActive ConversationStatus = "active"
	// StatusResolved 已結案，可被回覆重新開啟
	StatusResolved ConversationStatus = "resolved"
)

// ValidStatus check status value
func ValidStatus(s ConversationStatus) bool {
	switch s {
	case StatusPending, StatusActive, StatusResolved:
		return true
	}
	return false
}

// Priority definition conversation priority
type Priority string

const (
	// PriorityLow low priority
	PriorityLow Priority = "low"
	// PriorityMedium medium priority
	PriorityMedium Priority = "medium"
	// PriorityHigh high priority
	PriorityHigh Priority = "high"
)

// ValidPriority check priority value
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// SenderRole definition message sender role
type SenderRole string

const (
	// SenderUser message from participant
	SenderUser SenderRole = "user"
	// SenderAdmin message from staff
	SenderAdmin SenderRole = "admin"
)

// MessageType definition message payload type
type MessageType string

const (
	// MessageText text payload
	MessageText MessageType = "text"
	// MessageImage image payload
	MessageImage MessageType = "image"
	// MessageFile file payload
	MessageFile MessageType = "file"
)

// ValidMessageType check message type value
func ValidMessageType(t MessageType) bool {
	switch t {
	case MessageText, MessageImage, MessageFile:
		return true
	}
	return false
}

// PartyKind definition identity kind
type PartyKind string

const (
	// PartyUser authenticated account
	PartyUser PartyKind = "user"
	// PartyGuest opaque guest identifier
	PartyGuest PartyKind = "guest"
	// PartyAdmin staff account
	PartyAdmin PartyKind = "admin"
)

// Party 發送者身份，取代來源的 senderId/senderModel 鑑別欄位
type Party struct {
	Kind PartyKind
	ID   string
}

// IsZero check party is empty
func (p Party) IsZero() bool {
	return p.ID == ""
}

// ConversationMessage 內嵌在 Conversation 的一則訊息
type ConversationMessage struct {
	ID          string      `bson:"id" json:"id"`
	Sender      SenderRole  `bson:"sender" json:"sender"`
	SenderID    string      `bson:"sender_id" json:"senderId"`
	SenderKind  PartyKind   `bson:"sender_kind" json:"senderKind"`
	Message     string      `bson:"message" json:"message"`
	MessageType MessageType `bson:"message_type" json:"messageType"`
	Read        bool        `bson:"read" json:"read"`
	ReadAt      *time.Time  `bson:"read_at,omitempty" json:"readAt,omitempty"`
	CreatedAt   time.Time   `bson:"created_at" json:"createdAt"`
}

// Conversation 一位參與者(會員或訪客)與客服之間的對話
// user_id 與 guest_id 只會設定其中一個
type Conversation struct {
	ID              primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	UserID          string                `bson:"user_id,omitempty" json:"userId,omitempty"`
	GuestID         string                `bson:"guest_id,omitempty" json:"guestId,omitempty"`
	UserName        string                `bson:"user_name" json:"userName"`
	UserEmail       string                `bson:"user_email,omitempty" json:"userEmail,omitempty"`
	Status          ConversationStatus    `bson:"status" json:"status"`
	Priority        Priority              `bson:"priority" json:"priority"`
	LastMessage     string                `bson:"last_message" json:"lastMessage"`
	LastMessageTime time.Time             `bson:"last_message_time" json:"lastMessageTime"`
	UnreadCount     int                   `bson:"unread_count" json:"unreadCount"`
	AssignedTo      string                `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	Tags            []string              `bson:"tags,omitempty" json:"tags,omitempty"`
	Messages        []ConversationMessage `bson:"messages" json:"messages"`
	CreatedAt       time.Time             `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time             `bson:"updated_at" json:"updatedAt"`
}

// Owner 對話所屬身份
func (c *Conversation) Owner() Party {
	if c.UserID != "" {
		return Party{Kind: PartyUser, ID: c.UserID}
	}
	return Party{Kind: PartyGuest, ID: c.GuestID}
}

// MetaPatch 部分更新欄位，nil 表示不變更
type MetaPatch struct {
	Status     *ConversationStatus `json:"status,omitempty"`
	Priority   *Priority           `json:"priority,omitempty"`
	AssignedTo *string             `json:"assignedTo,omitempty"`
	Tags       []string            `json:"tags,omitempty"`
}

// IsEmpty check patch have any field
func (p MetaPatch) IsEmpty() bool {
	return p.Status == nil && p.Priority == nil && p.AssignedTo == nil && p.Tags == nil
}

// StatusBreakdown 各狀態的統計
type StatusBreakdown struct {
	Status      ConversationStatus `bson:"_id" json:"status"`
	Count       int64              `bson:"count" json:"count"`
	TotalUnread int64              `bson:"total_unread" json:"totalUnread"`
}

// ChatStats 對話統計
type ChatStats struct {
	TotalConversations int64             `json:"totalConversations"`
	ActiveChats        int64             `json:"activeChats"`
	OnlineUsers        int64             `json:"onlineUsers"`
	StatusBreakdown    []StatusBreakdown `json:"statusBreakdown"`
}

// Pagination 列表分頁資訊
type Pagination struct {
	Limit   int64 `json:"limit"`
	Skip    int64 `json:"skip"`
	HasMore bool  `json:"hasMore"`
}

// GuestLabel 由訪客識別碼尾端最多 4 個字元產生顯示名稱
func GuestLabel(guestID string) string {
	if guestID == "" {
		return "Guest"
	}
	return "Guest-" + pkg.LastN(guestID, 4)
}
