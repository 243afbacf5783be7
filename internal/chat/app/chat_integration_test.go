package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"farm_market_service/internal/chat/domain"
	"farm_market_service/internal/chat/repository"
	"farm_market_service/pkg/database"
	"farm_market_service/pkg/logger"
	"farm_market_service/pkg/middlewares"
	"farm_market_service/pkg/token"
	testtool "farm_market_service/pkg/test_tool"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// **測試用的容器**
var mongoContainer testcontainers.Container
var redisContainer testcontainers.Container
var chatApp *fiber.App
var chatHandler *ChatWebsocketHandler
var integrationUC *ConversationUseCase
var integrationConvRepo repository.ConversationRepository

// **TestMain 初始化測試環境**
func TestMain(m *testing.M) {
	ctx := context.Background()
	logger.SetNewNop()
	var err error

	if os.Getenv("INTEGRATION") == "" {
		// 沒有 docker 環境時只跑單元測試
		os.Exit(m.Run())
	}

	// **啟動 MongoDB**
	mongoContainer, mongoHost, mongoPort, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image:        "mongo:latest",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	})
	if err != nil {
		log.Fatalf("❌ Failed to start MongoDB container: %v", err)
	}
	fmt.Printf("✅ MongoDB running at %s:%s\n", mongoHost, mongoPort)

	// **啟動 Redis**
	redisContainer, redisHost, redisPort, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image:        "redis:latest",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	})
	if err != nil {
		log.Fatalf("❌ Failed to start Redis container: %v", err)
	}
	fmt.Printf("✅ Redis running at %s:%s\n", redisHost, redisPort)

	// **設定環境變數**
	os.Setenv("MONGO_URL", fmt.Sprintf("mongodb://%s:%s", mongoHost, mongoPort))
	os.Setenv("REDIS_URL", fmt.Sprintf("%s:%s", redisHost, redisPort))

	// **初始化 MongoDB**
	mongo, err := database.NewMongoDB(ctx, database.Connection{
		ConnectStr:    os.Getenv("MONGO_URL"),
		RetryCount:    5,
		RetryInterval: 5,
	}, "test_chat_db")
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer mongo.Close(ctx)

	// **初始化 Redis**
	redisClient := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_URL"),
		DB:   0,
	})

	// **初始化 Repository**
	convRepo := repository.NewMongoConversationRepository(mongo.Database)
	historyRepo := repository.NewMongoHistoryRepository(mongo.Database)
	pub := repository.NewRedisPubSub(redisClient)

	// 初始化 UseCases，通知 queue 在整合測試不接 RabbitMQ
	conversationUC := NewConversationUseCase(convRepo, historyRepo, pub, nil)
	integrationUC = conversationUC
	integrationConvRepo = convRepo

	// **初始化 Fiber WebSocket Server**
	chatHandler = NewChatWebsocketHandler(conversationUC, pub)

	chatApp = fiber.New()
	chatApp.Use(middlewares.OptionalAuth())
	chatApp.Get("/ws", websocket.New(func(c *websocket.Conn) {
		// 這裡可以建立一個「執行個體」，將 UseCase 等注入
		chatHandler.HandleConnection(context.Background(), c)
	}))

	// **啟動 WebSocket Server**
	go func() {
		err := chatApp.Listen(":8082")
		if err != nil {
			log.Fatalf("❌ Failed to start WebSocket server: %v", err)
		}
	}()
	fmt.Println("✅ WebSocket Server started at ws://localhost:8082/ws")

	// **等待 WebSocket Server 啟動**
	time.Sleep(5 * time.Second)

	// **執行測試**
	code := m.Run()

	// **清理測試環境**
	_ = mongoContainer.Terminate(ctx)
	_ = redisContainer.Terminate(ctx)
	chatApp.Shutdown()

	os.Exit(code)
}

// ✅ 1️⃣ 訪客送出訊息，拿到本人訊息與自動應答
func TestWebSocketGuestSendMessage(t *testing.T) {
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("integration environment not available")
	}
	wsURL := "ws://127.0.0.1:8082/ws?guestId=guest-itest-0001"

	dialer := gws.DefaultDialer
	conn, _, err := dialer.Dial(wsURL, nil)
	assert.NoError(t, err, "WebSocket 連線失敗")
	defer conn.Close()

	// 發送訊息
	messageReq := []byte(`{"action": "send-message", "text": "請問有雞蛋嗎?"}`)
	err = conn.WriteMessage(gws.TextMessage, messageReq)
	assert.NoError(t, err, "發送訊息請求失敗")

	// 接收回應
	_, response, err := conn.ReadMessage()
	assert.NoError(t, err, "發送訊息回應失敗")

	var resp domain.WSResponse
	assert.NoError(t, json.Unmarshal(response, &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, ActionSendMessage, resp.Action)
	fmt.Println("✅ 發送訊息回應:", string(response))
}

// ✅ 2️⃣ 管理員連線收到使用者訊息廣播
func TestWebSocketAdminReceivesBroadcast(t *testing.T) {
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("integration environment not available")
	}

	adminToken, err := token.GenerateJWT("admin-itest-1", "Admin", "admin@test.local", string(token.RoleAdmin), "farm_market_service")
	assert.NoError(t, err)

	dialer := gws.DefaultDialer
	adminConn, _, err := dialer.Dial("ws://127.0.0.1:8082/ws?auth="+adminToken, nil)
	assert.NoError(t, err, "管理員 WebSocket 連線失敗")
	defer adminConn.Close()

	// 等待訂閱生效
	time.Sleep(2 * time.Second)

	guestConn, _, err := dialer.Dial("ws://127.0.0.1:8082/ws?guestId=guest-itest-0002", nil)
	assert.NoError(t, err, "訪客 WebSocket 連線失敗")
	defer guestConn.Close()

	messageReq := []byte(`{"action": "send-message", "text": "缺貨了嗎?"}`)
	assert.NoError(t, guestConn.WriteMessage(gws.TextMessage, messageReq))

	// 管理員應收到 new-user-message 事件
	adminConn.SetReadDeadline(time.Now().Add(10 * time.Second))
	_, raw, err := adminConn.ReadMessage()
	assert.NoError(t, err, "管理員接收廣播失敗")

	var ev domain.ChatEvent
	assert.NoError(t, json.Unmarshal(raw, &ev))
	assert.Equal(t, domain.EventNewUserMessage, ev.Event)
	fmt.Println("✅ 管理員收到廣播:", string(raw))
}

// ✅ 3️⃣ 歷史訊息查詢
func TestWebSocketGetHistory(t *testing.T) {
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("integration environment not available")
	}
	wsURL := "ws://127.0.0.1:8082/ws?guestId=guest-itest-0001"

	dialer := gws.DefaultDialer
	conn, _, err := dialer.Dial(wsURL, nil)
	assert.NoError(t, err, "WebSocket 連線失敗")
	defer conn.Close()

	getHistoryReq := []byte(`{"action": "get-history"}`)
	assert.NoError(t, conn.WriteMessage(gws.TextMessage, getHistoryReq))

	_, response, err := conn.ReadMessage()
	assert.NoError(t, err, "歷史訊息回應失敗")

	var resp domain.WSResponse
	assert.NoError(t, json.Unmarshal(response, &resp))
	assert.True(t, resp.Success)
	fmt.Println("✅ 歷史訊息回應:", string(response))
}

// ✅ 4️⃣ 已結案的對話不會被新訊息重啟，而是另開新對話
func TestResolvedConversationStartsNewOne(t *testing.T) {
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("integration environment not available")
	}
	ctx := context.Background()
	party := domain.Party{Kind: domain.PartyGuest, ID: "guest-itest-resolved"}

	_, err := integrationUC.SubmitUserMessage(ctx, party, "", "", "冷凍宅配怎麼算運費?")
	require.NoError(t, err)

	first, err := integrationConvRepo.FindOpenByParty(ctx, party)
	require.NoError(t, err)
	require.NotNil(t, first)

	// 客服結案
	resolved := domain.StatusResolved
	_, err = integrationUC.UpdateConversationMeta(ctx, first.ID.Hex(), domain.MetaPatch{Status: &resolved})
	require.NoError(t, err)

	// 同一位訪客再送訊息，應另開新對話而非重啟舊的
	_, err = integrationUC.SubmitUserMessage(ctx, party, "", "", "補充一下，我住外島")
	require.NoError(t, err)

	second, err := integrationConvRepo.FindOpenByParty(ctx, party)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID.Hex(), second.ID.Hex())
	assert.Equal(t, domain.StatusPending, second.Status)

	// 原對話維持 resolved，訊息數不變
	old, err := integrationUC.GetConversation(ctx, first.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, old.Status)
	assert.Len(t, old.Messages, len(first.Messages))
	fmt.Println("✅ 結案後另開新對話:", second.ID.Hex())
}

// ✅ 5️⃣ 重複標記已讀結果相同，第二次不會改寫 read_at
func TestMarkMessagesReadIdempotent(t *testing.T) {
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("integration environment not available")
	}
	ctx := context.Background()
	party := domain.Party{Kind: domain.PartyGuest, ID: "guest-itest-read"}

	_, err := integrationUC.SubmitUserMessage(ctx, party, "", "", "想訂一箱芭樂")
	require.NoError(t, err)
	_, err = integrationUC.SubmitUserMessage(ctx, party, "", "", "再加一盒雞蛋")
	require.NoError(t, err)

	conv, err := integrationConvRepo.FindOpenByParty(ctx, party)
	require.NoError(t, err)
	require.NotNil(t, conv)
	require.Equal(t, 2, conv.UnreadCount)

	require.NoError(t, integrationUC.MarkMessagesRead(ctx, conv.ID.Hex()))

	afterFirst, err := integrationUC.GetConversation(ctx, conv.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, afterFirst.UnreadCount)
	for _, m := range afterFirst.Messages {
		if m.Sender == domain.SenderUser {
			assert.True(t, m.Read)
			require.NotNil(t, m.ReadAt)
		}
	}

	// 隔一段時間再標一次，read_at 不應該被改寫
	time.Sleep(1 * time.Second)
	require.NoError(t, integrationUC.MarkMessagesRead(ctx, conv.ID.Hex()))

	afterSecond, err := integrationUC.GetConversation(ctx, conv.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, afterSecond.UnreadCount)
	require.Len(t, afterSecond.Messages, len(afterFirst.Messages))
	for i, m := range afterSecond.Messages {
		if m.Sender != domain.SenderUser {
			continue
		}
		require.NotNil(t, m.ReadAt)
		assert.True(t, m.ReadAt.Equal(*afterFirst.Messages[i].ReadAt))
	}
	fmt.Println("✅ 重複標記已讀 read_at 不變")
}
