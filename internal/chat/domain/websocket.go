package domain

// 房間名稱：所有客服共用一個 admin room，參與者各自有自己的 room，
// 監聽端只能加入自己身份對應的房間
const (
	// AdminRoom shared room for all admin listeners
	AdminRoom = "chat:admin"

	userRoomPrefix = "chat:user:"
)

// UserRoom room for one participant identity
func UserRoom(identity string) string {
	return userRoomPrefix + identity
}

// Event names pushed through the fan-out channel
const (
	// EventNewUserMessage 參與者新訊息，推給 admin room
	EventNewUserMessage = "new-user-message"
	// EventAdminMessage 客服回覆，推給參與者的 room
	EventAdminMessage = "admin-message"
	// EventNotification 後台通知，推給 admin room
	EventNotification = "notification"
)

// ChatEvent pub/sub 傳輸封包
type ChatEvent struct {
	Event   string                 `json:"event"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// WSResponse websocket Response
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}
