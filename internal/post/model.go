package post

import (
	"time"

	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
)

// Post est une "loop" : un post éphémère de 24h
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id" gorm:"type:uuid"`
	Content   string    `json:"content"`
	MediaURL  *string   `json:"media_url"`
	MediaType *string   `json:"media_type"`
	Mood      *string   `json:"mood"`
}

func (Post) TableName() string {
	return "posts"
}

// View ajoute au post les données dérivées affichées dans les feeds
type View struct {
	Post
	LikeCount int64          `json:"like_count"`
	IsLiked   bool           `json:"is_liked"`
	ExpiresIn int64          `json:"expires_in"` // secondes restantes
	Profiles  profile.Author `json:"profiles"`
}

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	PostID    string    `json:"post_id" gorm:"index"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"text" gorm:"column:content"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}

type CommentView struct {
	Comment
	Profiles profile.Author `json:"profiles"`
}
