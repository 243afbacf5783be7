package bdd

import "github.com/cucumber/godog"

// godog run ./tests/bdd/featureFiles/customer_chat.feature
// Use of godog CLI is deprecated, please use *testing.T instead.
// See https://github.com/cucumber/godog/discussions/478 for details.
// Feature: 客服對話
//   In order to get help about products and orders
//   As guests, customers and admins
//   I want to exchange messages and manage conversation state

//   Background:
//     Given "admin" 已登入並取得 Token "adminToken"
//     And 訪客持有 guestId "guest-1234"

//   Scenario: 訪客第一次留言建立新對話
//     When 訪客 "guest-1234" 發送訊息 "請問有雞蛋嗎?"
//     Then 應該建立狀態為 "pending" 的對話
//     And 訪客應收到自動應答

//   Scenario: 管理員回覆已結案對話會重新開啟
//     Given 對話 "conv-1" 狀態為 "resolved"
//     When "admin" 回覆 "conv-1" 訊息 "已補貨"
//     Then 對話 "conv-1" 狀態應為 "active"

//   Scenario: 已結案對話的使用者留言開新對話
//     Given 對話 "conv-1" 狀態為 "resolved"
//     When 訪客 "guest-1234" 發送訊息 "再問一次"
//     Then 應該建立新的對話

//   Scenario: 管理員標記已讀
//     Given 對話 "conv-1" 有 3 則未讀訊息
//     When "admin" 將對話 "conv-1" 標為已讀
//     Then 對話 "conv-1" 未讀數應為 0

func guestSendsMessage(arg1, arg2 string) error {
	return godog.ErrPending
}

func conversationCreatedWithStatus(arg1 string) error {
	return godog.ErrPending
}

func guestReceivesAutoReply() error {
	return godog.ErrPending
}

func conversationHasStatus(arg1, arg2 string) error {
	return godog.ErrPending
}

func adminReplies(arg1, arg2, arg3 string) error {
	return godog.ErrPending
}

func conversationStatusShouldBe(arg1, arg2 string) error {
	return godog.ErrPending
}

func newConversationCreated() error {
	return godog.ErrPending
}

func conversationHasUnread(arg1 string, arg2 int) error {
	return godog.ErrPending
}

func adminMarksRead(arg1, arg2 string) error {
	return godog.ErrPending
}

func conversationUnreadShouldBe(arg1 string, arg2 int) error {
	return godog.ErrPending
}

func loginToken(arg1, arg2 string) error {
	return godog.ErrPending
}

func guestHasID(arg1 string) error {
	return godog.ErrPending
}

func InitializeCustomerChatScenario(ctx *godog.ScenarioContext) {
	ctx.Step(`^"([^"]*)" 已登入並取得 Token "([^"]*)"$`, loginToken)
	ctx.Step(`^訪客持有 guestId "([^"]*)"$`, guestHasID)
	ctx.Step(`^訪客 "([^"]*)" 發送訊息 "([^"]*)"$`, guestSendsMessage)
	ctx.Step(`^應該建立狀態為 "([^"]*)" 的對話$`, conversationCreatedWithStatus)
	ctx.Step(`^訪客應收到自動應答$`, guestReceivesAutoReply)
	ctx.Step(`^對話 "([^"]*)" 狀態為 "([^"]*)"$`, conversationHasStatus)
	ctx.Step(`^"([^"]*)" 回覆 "([^"]*)" 訊息 "([^"]*)"$`, adminReplies)
	ctx.Step(`^對話 "([^"]*)" 狀態應為 "([^"]*)"$`, conversationStatusShouldBe)
	ctx.Step(`^應該建立新的對話$`, newConversationCreated)
	ctx.Step(`^對話 "([^"]*)" 有 (\d+) 則未讀訊息$`, conversationHasUnread)
	ctx.Step(`^"([^"]*)" 將對話 "([^"]*)" 標為已讀$`, adminMarksRead)
	ctx.Step(`^對話 "([^"]*)" 未讀數應為 (\d+)$`, conversationUnreadShouldBe)
}
