package models

// Wire event kinds exchanged over the websocket connection. The JSON field
// names are camelCase because they are the contract with the web client.
const (
	EventMessage      = "MESSAGE"
	EventMessageRead  = "MESSAGE_READ"
	EventTyping       = "TYPING"
	EventNotification = "NOTIFICATION"
	EventUserStatus   = "USER_STATUS"
)

// ClientEvent is the envelope a connected client sends to the relay.
type ClientEvent struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId"`
	RecipientID    uint   `json:"recipientId"`
	Content        string `json:"content"`
	MessageID      string `json:"messageId"`
}

// Envelope is the tagged payload the relay pushes to clients.
type Envelope struct {
	Type           string        `json:"type"`
	Message        *Message      `json:"message,omitempty"`
	Notification   *Notification `json:"notification,omitempty"`
	ConversationID string        `json:"conversationId,omitempty"`
	MessageID      string        `json:"messageId,omitempty"`
	ReadBy         []uint        `json:"readBy,omitempty"`
	SenderID       uint          `json:"senderId,omitempty"`
	UserID         uint          `json:"userId,omitempty"`
	IsTyping       bool          `json:"isTyping,omitempty"`
	IsOwnMessage   bool          `json:"isOwnMessage,omitempty"`
	IsOnline       *bool         `json:"isOnline,omitempty"`
	Timestamp      string        `json:"timestamp"`
}
