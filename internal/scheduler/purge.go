package scheduler

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/post"
	"github.com/ArthurDelaporte/Loopz-Back/internal/remix"
	"github.com/ArthurDelaporte/Loopz-Back/internal/storage"
)

type PurgeResult struct {
	Posts   int64
	Remixes int64
	Media   int
}

// PurgeExpired supprime les loops et remixes expirés à la date at, puis leurs
// médias. Les souvenirs n'ont pas de clé étrangère vers posts et survivent.
func PurgeExpired(ctx context.Context, db *gorm.DB, at time.Time) (PurgeResult, error) {
	var result PurgeResult

	var mediaURLs []string
	if err := db.WithContext(ctx).Model(&post.Post{}).
		Where("expires_at <= ? AND media_url IS NOT NULL", at).
		Pluck("media_url", &mediaURLs).Error; err != nil {
		return result, err
	}

	remixes := db.WithContext(ctx).Where("expires_at <= ?", at).Delete(&remix.Remix{})
	if remixes.Error != nil {
		return result, remixes.Error
	}
	result.Remixes = remixes.RowsAffected

	posts := db.WithContext(ctx).Where("expires_at <= ?", at).Delete(&post.Post{})
	if posts.Error != nil {
		return result, posts.Error
	}
	result.Posts = posts.RowsAffected

	for _, url := range mediaURLs {
		key := storage.KeyFromURL(url)
		if key == "" {
			continue
		}
		if err := storage.Delete(ctx, key); err != nil {
			logs.LogJSON("WARN", "Error deleting expired media", map[string]interface{}{
				"error": err.Error(),
				"key":   key,
			})
			continue
		}
		result.Media++
	}

	return result, nil
}
