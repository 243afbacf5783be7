package repository

import (
	"testing"
	"time"

	"farm_market_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
)

// 測試未結案查詢排除 resolved,已結案的對話不會被使用者新訊息撈到,而是另開新對話
func TestOpenByPartyFilterExcludesResolved(t *testing.T) {
	filter := openByPartyFilter(domain.Party{Kind: domain.PartyGuest, ID: "guest-1"})

	assert.Equal(t, "guest-1", filter["guest_id"])

	statusCond, ok := filter["status"].(bson.M)
	require.True(t, ok)
	in, ok := statusCond["$in"].(bson.A)
	require.True(t, ok)

	assert.Contains(t, in, domain.StatusPending)
	assert.Contains(t, in, domain.StatusActive)
	assert.NotContains(t, in, domain.StatusResolved)
}

// 測試身份條件 user 與 guest 互斥
func TestOpenByPartyFilterIdentity(t *testing.T) {
	userFilter := openByPartyFilter(domain.Party{Kind: domain.PartyUser, ID: "u-1"})
	assert.Equal(t, "u-1", userFilter["user_id"])
	assert.NotContains(t, userFilter, "guest_id")

	guestFilter := openByPartyFilter(domain.Party{Kind: domain.PartyGuest, ID: "g-1"})
	assert.Equal(t, "g-1", guestFilter["guest_id"])
	assert.NotContains(t, guestFilter, "user_id")
}

// 測試已讀掃描條件只掃未讀的參與者訊息,重複呼叫時已讀訊息的 read_at 不會被改寫
func TestMarkAllReadSweepOnlyUnreadUserMessages(t *testing.T) {
	arrayFilter := markAllReadArrayFilter()
	assert.Equal(t, domain.SenderUser, arrayFilter["m.sender"])
	assert.Equal(t, false, arrayFilter["m.read"])

	at := time.Now()
	update := markAllReadUpdate(at)
	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, true, set["messages.$[m].read"])
	assert.Equal(t, at, set["messages.$[m].read_at"])
	assert.Equal(t, 0, set["unread_count"])
}
