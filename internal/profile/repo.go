package profile

import (
	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/mood"
)

func ExistsByUsername(username string) bool {
	var count int64
	database.DB.Model(&Profile{}).Where("username = ?", username).Count(&count)
	return count > 0
}

func Exists(id string) (bool, error) {
	var count int64
	if err := database.DB.Model(&Profile{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MoodOf renvoie l'humeur courante du profil, neutral s'il n'en a pas
func MoodOf(userID string) (mood.Mood, error) {
	var current string
	if err := database.DB.Model(&Profile{}).Select("mood").Where("id = ?", userID).Scan(&current).Error; err != nil {
		return mood.Default, err
	}
	return mood.OrDefault(&current), nil
}

// AuthorsByID charge les projections publiques d'une liste de profils
func AuthorsByID(ids []string) (map[string]Author, error) {
	authors := make(map[string]Author, len(ids))
	if len(ids) == 0 {
		return authors, nil
	}

	var profiles []Profile
	if err := database.DB.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		authors[p.ID] = p.Author()
	}
	return authors, nil
}
