package message

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/notification"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
	"github.com/ArthurDelaporte/Loopz-Back/internal/realtime"
)

var now = time.Now

// ConversationKey identifie la paire non ordonnée (a, b)
func ConversationKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}

// PartnerOf renvoie l'autre participant du message du point de vue de userID
func PartnerOf(m Message, userID string) string {
	if m.SenderID == userID {
		return m.RecipientID
	}
	return m.SenderID
}

// Dedup réduit une liste triée du plus récent au plus ancien à une ligne par
// partenaire, en gardant la première occurrence
func Dedup(messages []Message, userID string) []Message {
	return lo.UniqBy(messages, func(m Message) string {
		return PartnerOf(m, userID)
	})
}

// Send insère le message et la notification "message" dans une transaction
func Send(db *gorm.DB, senderID, recipientID, content string) (Message, notification.Notification, error) {
	if strings.TrimSpace(content) == "" {
		return Message{}, notification.Notification{}, ErrEmptyMessage
	}
	if senderID == recipientID {
		return Message{}, notification.Notification{}, ErrSelfMessage
	}

	msg := Message{
		ID:              uuid.New().String(),
		CreatedAt:       now(),
		SenderID:        senderID,
		RecipientID:     recipientID,
		ConversationKey: ConversationKey(senderID, recipientID),
		Content:         content,
	}

	var n notification.Notification
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&profile.Profile{}).Where("id = ?", recipientID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrRecipientNotFound
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		n = notification.New(notification.TypeMessage, recipientID, senderID, nil)
		return notification.Insert(tx, &n)
	})
	if err != nil {
		return Message{}, notification.Notification{}, err
	}
	return msg, n, nil
}

// Publish pousse le message aux conversations ouvertes sur la paire
func Publish(m Message) {
	realtime.Publish(realtime.Event{
		Table:  "messages",
		Record: m,
		Columns: map[string]string{
			"sender_id":    m.SenderID,
			"recipient_id": m.RecipientID,
		},
	})
}

// Recent renvoie les messages impliquant userID, du plus récent au plus ancien
func Recent(db *gorm.DB, userID string) ([]Message, error) {
	var messages []Message
	err := db.Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

// History renvoie l'historique complet de la paire, par ordre chronologique
func History(db *gorm.DB, userID, partnerID string) ([]Message, error) {
	var messages []Message
	err := db.Where("conversation_key = ?", ConversationKey(userID, partnerID)).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// MarkRead marque comme lus les messages reçus de partnerID
func MarkRead(db *gorm.DB, userID, partnerID string) (int64, error) {
	result := db.Model(&Message{}).
		Where("sender_id = ? AND recipient_id = ? AND read_at IS NULL", partnerID, userID).
		Update("read_at", now())
	return result.RowsAffected, result.Error
}

// UnreadBySender compte les messages non lus reçus par userID, par expéditeur
func UnreadBySender(db *gorm.DB, userID string) (map[string]int64, error) {
	var rows []struct {
		SenderID string
		Unread   int64
	}
	if err := db.Model(&Message{}).
		Select("sender_id, count(*) AS unread").
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Group("sender_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.SenderID] = r.Unread
	}
	return counts, nil
}
