package remix

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/notification"
	"github.com/ArthurDelaporte/Loopz-Back/internal/post"
)

var now = time.Now

// Create enregistre le remix et notifie toujours l'auteur de l'original,
// y compris quand il remixe sa propre loop
func Create(db *gorm.DB, postID, userID, content string) (Remix, notification.Notification, error) {
	if strings.TrimSpace(content) == "" {
		return Remix{}, notification.Notification{}, ErrEmptyRemix
	}

	createdAt := now()
	r := Remix{
		ID:             uuid.New().String(),
		OriginalPostID: postID,
		UserID:         userID,
		Content:        content,
		CreatedAt:      createdAt,
		ExpiresAt:      createdAt.Add(post.TTL),
	}

	var n notification.Notification
	err := db.Transaction(func(tx *gorm.DB) error {
		authorID, err := post.AuthorOf(tx, postID)
		if err != nil {
			return err
		}
		if err := tx.Create(&r).Error; err != nil {
			return err
		}
		n = notification.New(notification.TypeRemix, authorID, userID, &postID)
		return notification.Insert(tx, &n)
	})
	if err != nil {
		return Remix{}, notification.Notification{}, err
	}
	return r, n, nil
}

// ListLive renvoie les remixes non expirés d'une loop, du plus récent au plus ancien
func ListLive(db *gorm.DB, postID string) ([]Remix, error) {
	var remixes []Remix
	err := db.Where("original_post_id = ? AND expires_at > ?", postID, now()).
		Order("created_at DESC").
		Find(&remixes).Error
	return remixes, err
}
