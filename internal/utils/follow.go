package utils

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
)

// Follower est une arête orientée follower -> following
type Follower struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt   time.Time `json:"created_at"`
	FollowerID  string    `json:"follower_id" gorm:"type:uuid"`
	FollowingID string    `json:"following_id" gorm:"type:uuid"`
}

func (Follower) TableName() string {
	return "followers"
}

func IsFollowing(followerID, followingID string) (bool, error) {
	return IsFollowingTx(database.DB, followerID, followingID)
}

func IsFollowingTx(db *gorm.DB, followerID, followingID string) (bool, error) {
	var follow Follower
	err := db.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil // L'utilisateur ne suit pas
		}
		return false, err // Une erreur s'est produite
	}

	return true, nil // L'utilisateur suit
}

// FollowCounts renvoie (followers, following) d'un profil
func FollowCounts(userID string) (int64, int64, error) {
	var followers, following int64
	if err := database.DB.Model(&Follower{}).Where("following_id = ?", userID).Count(&followers).Error; err != nil {
		return 0, 0, err
	}
	if err := database.DB.Model(&Follower{}).Where("follower_id = ?", userID).Count(&following).Error; err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
