package remix

import (
	"errors"
	"time"

	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
)

var ErrEmptyRemix = errors.New("remix text is required")

// Remix est une réinterprétation d'une loop ; elle expire comme un post
type Remix struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid"`
	OriginalPostID string    `json:"original_post_id" gorm:"type:uuid"`
	UserID         string    `json:"user_id" gorm:"type:uuid"`
	Content        string    `json:"content"`
	MediaURL       *string   `json:"media_url"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

func (Remix) TableName() string {
	return "remixes"
}

type View struct {
	Remix
	Profiles profile.Author `json:"profiles"`
}
