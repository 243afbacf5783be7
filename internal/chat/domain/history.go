package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AckText 機器人固定回覆內容
const AckText = "Thanks for your message! One of our farm specialists will be with you shortly. In the meantime, feel free to browse our fresh produce!"

// HistoryMessage 聊天小工具用的獨立訊息紀錄
// 機器人回覆存在這裡，不會進 Conversation.Messages，
// 後台的訊息數因此只反映真人流量
type HistoryMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id,omitempty" json:"userId,omitempty"`
	GuestID   string             `bson:"guest_id,omitempty" json:"guestId,omitempty"`
	Text      string             `bson:"text" json:"text"`
	IsBot     bool               `bson:"is_bot" json:"isBot"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
