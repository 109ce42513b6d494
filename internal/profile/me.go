package profile

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/mood"
	"github.com/ArthurDelaporte/Loopz-Back/internal/storage"
)

var (
	uploadObject = storage.Upload
	deleteObject = storage.Delete
)

// UpdateInput ne contient que les champs envoyés ; nil = inchangé
type UpdateInput struct {
	DisplayName *string `json:"display_name" form:"display_name"`
	Bio         *string `json:"bio" form:"bio"`
	Mood        *string `json:"mood" form:"mood"`
}

// Apply reporte les champs présents sur le profil
func (in UpdateInput) Apply(p *Profile) error {
	if in.Mood != nil {
		m, err := mood.Parse(*in.Mood)
		if err != nil {
			return err
		}
		p.Mood = string(m)
	}
	if in.DisplayName != nil {
		p.DisplayName = *in.DisplayName
	}
	if in.Bio != nil {
		p.Bio = in.Bio
	}
	return nil
}

func GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	var p Profile
	if err := database.DB.First(&p, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// UpdateMe PATCH /api/profiles/me, JSON ou multipart avec un champ "avatar"
func UpdateMe(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var p Profile
	if err := database.DB.First(&p, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var input UpdateInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := input.Apply(&p); err != nil {
		if errors.Is(err, mood.ErrInvalidMood) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mood"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Remplacement de l'avatar : l'ancien objet n'est supprimé qu'une fois le profil enregistré
	var newKey, oldKey string
	file, header, err := c.Request.FormFile("avatar")
	if err == nil {
		defer file.Close()

		if err := storage.ValidateMedia(storage.MediaImage, header.Filename, header.Size); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		newKey = storage.AvatarKey(userID, header.Filename)
		if p.AvatarURL != nil {
			oldKey = storage.KeyFromURL(*p.AvatarURL)
		}

		url, err := uploadObject(c.Request.Context(), file, newKey, header.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
			logs.LogJSON("ERROR", "Avatar upload failed", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
			})
			return
		}
		p.AvatarURL = &url
	}

	p.UpdatedAt = time.Now()
	if err := database.DB.Save(&p).Error; err != nil {
		// Même clé : l'upload a déjà écrasé l'ancien objet, rien à nettoyer
		if newKey != "" && newKey != oldKey {
			_ = deleteObject(c.Request.Context(), newKey)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		logs.LogJSON("ERROR", "Error updating profile", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	if oldKey != "" && oldKey != newKey {
		if err := deleteObject(c.Request.Context(), oldKey); err != nil {
			logs.LogJSON("WARN", "Error deleting previous avatar", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": p})
}
