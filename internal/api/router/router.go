package router

import (
	"context"

	"farm_market_service/internal/api/handlers"
	chatapp "farm_market_service/internal/chat/app"
	"farm_market_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes 注册聊天、工單與後台通知路由
func RegisterRoutes(
	r *fiber.App,
	chatHandler *handlers.ChatHandler,
	adminChatHandler *handlers.AdminChatHandler,
	supportHandler *handlers.SupportHandler,
	notificationHandler *handlers.NotificationHandler,
	accountHandler *handlers.AccountHandler,
	chatWebsocket *chatapp.ChatWebsocketHandler,
) {
	// 訪客與登入者共用的入口，token 可有可無
	public := r.Group("/", middlewares.OptionalAuth())
	public.Post("/chat", chatHandler.PostMessage)
	public.Get("/chat", chatHandler.GetHistory)
	public.Post("/support/tickets", supportHandler.CreateTicket)
	public.Get("/support/tickets", supportHandler.MyTickets)

	public.Get("/ws", websocket.New(func(c *websocket.Conn) {
		// 這裡可以建立一個「執行個體」，將 UseCase 等注入
		chatWebsocket.HandleConnection(context.Background(), c)
	}))

	// 後台路由，需要管理員 token
	admin := r.Group("/admin", middlewares.JWTMiddleware(), middlewares.AdminRequired())

	// stats 要放在 :id 前面，避免被參數路由吃掉
	admin.Get("/chat-conversations/stats", adminChatHandler.Stats)
	admin.Get("/chat-conversations", adminChatHandler.ListConversations)
	admin.Get("/chat-conversations/:id", adminChatHandler.GetConversation)
	admin.Post("/chat-conversations/:id/messages", adminChatHandler.Reply)
	admin.Patch("/chat-conversations/:id/status", adminChatHandler.UpdateMeta)
	admin.Patch("/chat-conversations/:id/read", adminChatHandler.MarkRead)

	admin.Get("/support/tickets", supportHandler.ListTickets)
	admin.Get("/support/tickets/:id", supportHandler.GetTicket)
	admin.Patch("/support/tickets/:id/status", supportHandler.UpdateTicketStatus)

	admin.Patch("/accounts/:id/status", accountHandler.UpdateStatus)

	admin.Get("/notifications/unread-count", notificationHandler.UnreadCount)
	admin.Get("/notifications", notificationHandler.List)
	admin.Patch("/notifications/read-all", notificationHandler.MarkAllRead)
	admin.Patch("/notifications/:id/read", notificationHandler.MarkRead)
	admin.Delete("/notifications/:id", notificationHandler.Delete)
}
