package post

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
)

const likeCountColumn = "(SELECT count(*) FROM likes WHERE likes.post_id = posts.id) AS like_count"

type row struct {
	Post
	LikeCount int64
	IsLiked   bool
}

// Query prépare une requête sur les posts vivants avec compteur de likes
// et état "liké" pour le lecteur
func Query(viewerID string) *gorm.DB {
	q := database.DB.Table("posts")
	if viewerID == "" {
		q = q.Select("posts.*, " + likeCountColumn + ", false AS is_liked")
	} else {
		q = q.Select("posts.*, "+likeCountColumn+", EXISTS (SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS is_liked", viewerID)
	}
	return Live(q)
}

// LoadViews exécute la requête et joint les auteurs
func LoadViews(q *gorm.DB) ([]View, error) {
	var rows []row
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	authors, err := profile.AuthorsByID(ids)
	if err != nil {
		return nil, err
	}

	at := now()
	views := make([]View, 0, len(rows))
	for _, r := range rows {
		views = append(views, View{
			Post:      r.Post,
			LikeCount: r.LikeCount,
			IsLiked:   r.IsLiked,
			ExpiresIn: int64(r.Remaining(at).Seconds()),
			Profiles:  authors[r.UserID],
		})
	}
	return views, nil
}

// GetLive charge un post vivant ; ErrNotFound sinon
func GetLive(id, viewerID string) (View, error) {
	views, err := LoadViews(Query(viewerID).Where("posts.id = ?", id).Limit(1))
	if err != nil {
		return View{}, err
	}
	if len(views) == 0 {
		return View{}, ErrNotFound
	}
	return views[0], nil
}

// FindLive charge la ligne brute d'un post vivant ; ErrNotFound sinon
func FindLive(db *gorm.DB, id string) (Post, error) {
	var p Post
	if err := Live(db.Model(&Post{})).Where("posts.id = ?", id).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	return p, nil
}

// AuthorOf renvoie l'auteur d'un post vivant, dans la transaction fournie
func AuthorOf(tx *gorm.DB, postID string) (string, error) {
	var p Post
	err := Live(tx.Model(&Post{})).Select("id", "user_id").Where("posts.id = ?", postID).Take(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return p.UserID, nil
}
