package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QueueName 後台通知工作使用的 RabbitMQ queue
const QueueName = "admin_notifications"

// NotificationType definition notification type
type NotificationType string

const (
	// TypeOrder order notification
	TypeOrder NotificationType = "order"
	// TypePayment payment notification
	TypePayment NotificationType = "payment"
	// TypeAlert alert notification
	TypeAlert NotificationType = "alert"
	// TypeTicket support ticket notification
	TypeTicket NotificationType = "ticket"
	// TypeUser user notification
	TypeUser NotificationType = "user"
	// TypeSystem system notification
	TypeSystem NotificationType = "system"
	// TypePromotion promotion notification
	TypePromotion NotificationType = "promotion"
)

// AdminNotification 後台通知紀錄
type AdminNotification struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title               string             `bson:"title" json:"title"`
	Message             string             `bson:"message" json:"message"`
	Type                NotificationType   `bson:"type" json:"type"`
	Priority            string             `bson:"priority" json:"priority"`
	Read                bool               `bson:"read" json:"read"`
	ReadAt              *time.Time         `bson:"read_at,omitempty" json:"readAt,omitempty"`
	RelatedConversation string             `bson:"related_conversation,omitempty" json:"relatedConversation,omitempty"`
	RelatedTicket       string             `bson:"related_ticket,omitempty" json:"relatedTicket,omitempty"`
	CreatedAt           time.Time          `bson:"created_at" json:"createdAt"`
}

// NotificationJob queue 上的通知工作
type NotificationJob struct {
	Title               string           `json:"title"`
	Message             string           `json:"message"`
	Type                NotificationType `json:"type"`
	Priority            string           `json:"priority"`
	RelatedConversation string           `json:"related_conversation,omitempty"`
	RelatedTicket       string           `json:"related_ticket,omitempty"`
}
