package like

import (
	"time"

	"github.com/google/uuid"
)

// Like lie un utilisateur à une loop ; la paire (post_id, user_id) est unique
// en base et sert de cible au ON CONFLICT de Toggle
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	PostID    string    `json:"post_id" gorm:"type:uuid;uniqueIndex:likes_post_id_user_id_key,priority:1"`
	UserID    string    `json:"user_id" gorm:"type:uuid;uniqueIndex:likes_post_id_user_id_key,priority:2"`
}

func (Like) TableName() string {
	return "likes"
}

func newLike(postID, userID string, at time.Time) Like {
	return Like{
		ID:        uuid.New().String(),
		CreatedAt: at,
		PostID:    postID,
		UserID:    userID,
	}
}

// State est l'état renvoyé au client après un toggle
type State struct {
	PostID    string `json:"post_id"`
	LikeCount int64  `json:"like_count"`
	IsLiked   bool   `json:"is_liked"`
}
