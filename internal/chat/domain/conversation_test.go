package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 測試訪客顯示名稱取 id 尾碼
func TestGuestLabel(t *testing.T) {
	assert.Equal(t, "Guest-1234", GuestLabel("guest-abcd1234"))
	assert.Equal(t, "Guest-abc", GuestLabel("abc"))
	assert.Equal(t, "Guest", GuestLabel(""))
}

// 測試狀態與優先度驗證
func TestValidStatusAndPriority(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusActive))
	assert.True(t, ValidStatus(StatusResolved))
	assert.False(t, ValidStatus("archived"))

	assert.True(t, ValidPriority(PriorityLow))
	assert.True(t, ValidPriority(PriorityMedium))
	assert.True(t, ValidPriority(PriorityHigh))
	assert.False(t, ValidPriority("critical"))
}

// 測試對話擁有者判斷
func TestConversationOwner(t *testing.T) {
	byUser := Conversation{UserID: "u-1"}
	assert.Equal(t, Party{Kind: PartyUser, ID: "u-1"}, byUser.Owner())

	byGuest := Conversation{GuestID: "g-1"}
	assert.Equal(t, Party{Kind: PartyGuest, ID: "g-1"}, byGuest.Owner())

	var empty Conversation
	assert.True(t, empty.Owner().IsZero())
}

// 測試房間命名
func TestRooms(t *testing.T) {
	assert.Equal(t, "chat:admin", AdminRoom)
	assert.Equal(t, "chat:user:g-1", UserRoom("g-1"))
}
