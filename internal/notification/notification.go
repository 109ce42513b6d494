package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/realtime"
)

var now = time.Now

// New prépare une notification destinée à ownerID, déclenchée par actorID
func New(t Type, ownerID, actorID string, postID *string) Notification {
	return Notification{
		ID:            uuid.New().String(),
		CreatedAt:     now(),
		UserID:        ownerID,
		Type:          t,
		RelatedUserID: actorID,
		RelatedPostID: postID,
	}
}

// Insert écrit la notification dans la transaction fournie
func Insert(tx *gorm.DB, n *Notification) error {
	return tx.Create(n).Error
}

// Publish diffuse la notification aux abonnés ; à appeler après le commit
func Publish(n Notification) {
	realtime.Publish(realtime.Event{
		Table:  "notifications",
		Record: n,
		Columns: map[string]string{
			"user_id": n.UserID,
			"type":    string(n.Type),
		},
	})
}
