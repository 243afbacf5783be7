package app

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"farm_market_service/internal/chat/domain"
	"farm_market_service/internal/chat/repository"
	"farm_market_service/pkg/logger"
	"farm_market_service/pkg/middlewares"
	"farm_market_service/pkg/token"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// ChatWebsocketHandler 可包含所有需要的 UseCase
type ChatWebsocketHandler struct {
	conversationUC *ConversationUseCase
	pubsub         repository.Publisher
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(
	conversationUC *ConversationUseCase,
	pubsub repository.Publisher,
) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		conversationUC: conversationUC,
		pubsub:         pubsub,
	}
}

// wsWriter websocket 寫入端
type wsWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// safeWriter 同一條連線的寫入要序列化
// 訂閱 callback、ping goroutine 與 read loop 會同時寫入，並發寫會讓 frame 交錯
type safeWriter struct {
	mu sync.Mutex
	w  wsWriter
}

func (s *safeWriter) WriteMessage(mt int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.WriteMessage(mt, data)
}

// HandleConnection 是 WebSocket 連線的進入點
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	party, name, email, role := connIdentity(conn)
	writer := &safeWriter{w: conn}
	logger.Log.Info("websocket handle connection",
		zap.String("identity", party.ID),
		zap.String("role", string(role)))

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		logger.Log.Info("websocket close", zap.String("identity", party.ID))
		conn.Close()
		cancel()
	}()

	//client發出close
	//fiber會自動處理(在read msg 回傳err),故需要SetCloseHandler另外接出
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	//server發出ping之後client連線正常會回pong
	//fiber會自動處理回傳pong,故需要SetPongHandler另外接出
	conn.SetPongHandler(func(appData string) error {
		logger.Log.Infof("Received PONG:", appData)
		return nil
	})

	//client發出ping
	//fiber會自動處理ping,故需要SetPingHandler另外接出
	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	//管理員訂閱共用後台頻道，一般使用者訂閱自己的頻道
	room := domain.UserRoom(party.ID)
	if role == token.RoleAdmin {
		room = domain.AdminRoom
	}
	h.pubsub.Subscribe(ctxClose, room, func(ev domain.ChatEvent) {
		h.sendEvent(writer, ev)
	})

	// 定期發送 Ping
	go func() {
		for {
			select {
			case <-ticker.C:
				pingMsg := "ping message"
				if err := writer.WriteMessage(websocket.PingMessage, []byte(pingMsg)); err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
			case <-ctxClose.Done():
				logger.Log.Infof("Ping goroutine cancelled for:", party.ID)
				return
			}
		}
	}()

	for {
		// 1. 讀取前端訊息
		mt, message, err := conn.ReadMessage()
		if err != nil {
			// 檢查是否為 Close 正常結束
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived, //1005 c.WriteMessage(websocket.CloseMessage, []byte{})
			) {
				logger.Log.Errorf("Connection closed:", err)
			} else {
				//直接斷線 1006
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctx, writer, party, name, email, role, mt, message)
	}
}

// connIdentity 從 locals 或 query 解出此連線的身份
func connIdentity(conn *websocket.Conn) (domain.Party, string, string, token.RoleType) {
	role := token.RoleGuest
	if r, ok := conn.Locals(middlewares.TokenRole).(string); ok && r != "" {
		role = token.RoleType(r)
	}
	name, _ := conn.Locals(middlewares.TokenAccountName).(string)
	email, _ := conn.Locals(middlewares.TokenAccountEmail).(string)

	if accountID, ok := conn.Locals(middlewares.TokenAccountID).(string); ok && accountID != "" {
		kind := domain.PartyUser
		if role == token.RoleAdmin {
			kind = domain.PartyAdmin
		}
		return domain.Party{Kind: kind, ID: accountID}, name, email, role
	}

	guestID := conn.Query("guestId")
	if guestID == "" {
		return domain.Party{}, "", "", token.RoleGuest
	}
	return domain.Party{Kind: domain.PartyGuest, ID: guestID}, domain.GuestLabel(guestID), "", token.RoleGuest
}

func (h *ChatWebsocketHandler) execWebsocketAction(ctx context.Context, w *safeWriter, party domain.Party, name, email string, role token.RoleType, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageAction(ctx, w, party, name, email, role, msg)

	//! close ping pong fiber會自動處理，故需使用setHandler處理
	default:
		h.sendError(w, "unknown action")
	}
}

// WSRequest websocket 上行訊息
type WSRequest struct {
	Action         string             `json:"action"`
	Text           string             `json:"text"`
	ConversationID string             `json:"conversation_id"`
	MessageType    domain.MessageType `json:"message_type"`
}

const (
	// ActionSendMessage 使用者送出訊息
	ActionSendMessage = "send-message"
	// ActionAdminReply 管理員回覆訊息
	ActionAdminReply = "admin-reply"
	// ActionGetHistory 取得歷史訊息
	ActionGetHistory = "get-history"
)

func (h *ChatWebsocketHandler) textMessageAction(ctx context.Context, w *safeWriter, party domain.Party, name, email string, role token.RoleType, msg []byte) {
	var req WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		log.Printf("json unmarshal error: %v", err)
		return
	}

	resp := domain.WSResponse{Action: req.Action, Success: false, Payload: map[string]interface{}{}}
	switch req.Action {
	//使用者送出訊息,寫入對話並廣播給後台
	case ActionSendMessage:
		msgs, err := h.conversationUC.SubmitUserMessage(ctx, party, name, email, req.Text)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["messages"] = msgs
		}

	//管理員回覆,廣播給對話擁有者
	case ActionAdminReply:
		if role != token.RoleAdmin {
			resp.Error = "admin role required"
			break
		}
		conv, sent, err := h.conversationUC.SubmitAdminReply(ctx, req.ConversationID, party.ID, name, req.Text, req.MessageType)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["conversation_id"] = conv.ID.Hex()
			resp.Payload["message"] = sent
		}

	//取得自己的歷史訊息
	case ActionGetHistory:
		msgs, err := h.conversationUC.GetHistory(ctx, party)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["messages"] = msgs
		}

	default:
		h.sendError(w, "unknown message types ")
	}

	if resp.Error != "" {
		logger.Log.Error("websocket err ",
			zap.String("identity", party.ID),
			zap.String("Action", req.Action),
			zap.String("err", resp.Error))
	}
	h.sendResponse(w, resp)
}

// sendResponse - 發送 JSON 給前端
func (h *ChatWebsocketHandler) sendResponse(w *safeWriter, resp domain.WSResponse) {
	b, _ := json.Marshal(resp)
	if err := w.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write message error:", err)
	}
}

func (h *ChatWebsocketHandler) sendEvent(w *safeWriter, ev domain.ChatEvent) {
	b, _ := json.Marshal(ev)
	if err := w.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write event error:", err)
	}
}

func (h *ChatWebsocketHandler) sendError(w *safeWriter, errorMsg string) {
	resp := domain.WSResponse{
		Action:  "error",
		Success: false,
		Payload: map[string]interface{}{
			"error": errorMsg,
		},
	}
	h.sendResponse(w, resp)
}
