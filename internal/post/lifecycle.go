package post

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/mood"
	"github.com/ArthurDelaporte/Loopz-Back/internal/storage"
)

// TTL est la durée de vie d'une loop
const TTL = 24 * time.Hour

var now = time.Now

var (
	ErrEmptyPost = errors.New("post needs text or media")
	ErrNotFound  = errors.New("post not found")
)

type Input struct {
	AuthorID  string
	Content   string
	Mood      string
	MediaURL  string
	MediaKind storage.MediaKind
}

// New construit un post prêt à insérer, expirant exactement TTL après sa création
func New(in Input) (Post, error) {
	if strings.TrimSpace(in.Content) == "" && in.MediaURL == "" {
		return Post{}, ErrEmptyPost
	}

	m, err := mood.Parse(in.Mood)
	if err != nil {
		return Post{}, err
	}
	moodStr := string(m)

	createdAt := now()
	p := Post{
		ID:        uuid.New().String(),
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(TTL),
		UserID:    in.AuthorID,
		Content:   in.Content,
		Mood:      &moodStr,
	}

	if in.MediaURL != "" {
		if !in.MediaKind.IsValid() {
			return Post{}, storage.ErrInvalidMediaKind
		}
		url := in.MediaURL
		kind := string(in.MediaKind)
		p.MediaURL = &url
		p.MediaType = &kind
	}

	return p, nil
}

func (p Post) IsLive(at time.Time) bool {
	return at.Before(p.ExpiresAt)
}

// Remaining renvoie le temps restant avant expiration, jamais négatif
func (p Post) Remaining(at time.Time) time.Duration {
	left := p.ExpiresAt.Sub(at)
	if left < 0 {
		return 0
	}
	return left
}

// Live restreint une requête sur posts aux loops non expirées
func Live(db *gorm.DB) *gorm.DB {
	return db.Where("posts.expires_at > ?", now())
}
