package notification

import (
	"time"

	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
)

// Type définit les types de notifications possibles
type Type string

const (
	TypeLike    Type = "like"
	TypeComment Type = "comment"
	TypeRemix   Type = "remix"
	TypeFollow  Type = "follow"
	TypeMessage Type = "message"
)

type Notification struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt     time.Time  `json:"created_at"`
	UserID        string     `json:"user_id" gorm:"index"`
	Type          Type       `json:"type"`
	RelatedUserID string     `json:"related_user_id"`
	RelatedPostID *string    `json:"related_post_id"`
	ReadAt        *time.Time `json:"read_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// View est la notification telle que renvoyée au client
type View struct {
	Notification
	Profiles profile.Author `json:"profiles"`
	Text     string         `json:"text"`
}

// Text reproduit le libellé affiché pour chaque type
func Text(t Type, username string) string {
	switch t {
	case TypeLike:
		return username + " liked your post"
	case TypeComment:
		return username + " commented on your post"
	case TypeRemix:
		return username + " remixed your post"
	case TypeFollow:
		return username + " started following you"
	case TypeMessage:
		return username + " sent you a message"
	default:
		return username + " interacted with you"
	}
}
