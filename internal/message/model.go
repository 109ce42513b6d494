package message

import (
	"errors"
	"time"

	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
)

var (
	ErrEmptyMessage      = errors.New("message text is required")
	ErrSelfMessage       = errors.New("cannot message yourself")
	ErrRecipientNotFound = errors.New("recipient not found")
)

// Message est un message direct entre deux profils
type Message struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt       time.Time  `json:"created_at"`
	SenderID        string     `json:"sender_id" gorm:"type:uuid"`
	RecipientID     string     `json:"recipient_id" gorm:"type:uuid"`
	ConversationKey string     `json:"conversation_key" gorm:"index"`
	Content         string     `json:"content" gorm:"type:text"`
	ReadAt          *time.Time `json:"read_at"`
}

func (Message) TableName() string {
	return "messages"
}

// CreateMessageInput structure pour envoyer un message
type CreateMessageInput struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	Content     string `json:"content"`
}

// ConversationResponse résume une conversation pour la liste
type ConversationResponse struct {
	ConversationKey string         `json:"conversation_key"`
	Partner         profile.Author `json:"partner"`
	LastMessage     Message        `json:"last_message"`
	UnreadCount     int64          `json:"unread_count"`
}
