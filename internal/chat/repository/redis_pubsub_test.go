package repository

import (
	"encoding/json"
	"testing"

	"farm_market_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 測試事件封包序列化與反序列化一致，訂閱端拿到的內容要跟發布端相同
func TestChatEventEnvelopeRoundTrip(t *testing.T) {
	ev := domain.ChatEvent{
		Event: domain.EventNewUserMessage,
		Payload: map[string]interface{}{
			"conversationId": "abc123",
			"message":        "有機蔬菜有現貨嗎",
			"userName":       "Guest-1234",
			"status":         string(domain.StatusPending),
		},
	}

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var got domain.ChatEvent
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, domain.EventNewUserMessage, got.Event)
	assert.Equal(t, "abc123", got.Payload["conversationId"])
	assert.Equal(t, "Guest-1234", got.Payload["userName"])
	assert.Equal(t, "pending", got.Payload["status"])
}

// 測試房間命名規則
func TestRoomNames(t *testing.T) {
	assert.Equal(t, "chat:admin", domain.AdminRoom)
	assert.Equal(t, "chat:user:u-1", domain.UserRoom("u-1"))
}
