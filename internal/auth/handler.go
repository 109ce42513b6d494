package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/mood"
	"github.com/ArthurDelaporte/Loopz-Back/internal/profile"
	"github.com/ArthurDelaporte/Loopz-Back/internal/supabase"
)

type signupInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Mood        string `json:"mood"`
}

// Signup : Inscription
func Signup(c *gin.Context) {
	route := c.FullPath()

	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	if input.Email == "" || input.Password == "" || input.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	m, err := mood.Parse(input.Mood)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mood"})
		return
	}

	if profile.ExistsByUsername(input.Username) {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}

	// Étape 1 – Appel à Supabase Auth
	userID, err := supabase.Default.SignUp(input.Email, input.Password)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.Status, gin.H{"error": "Auth error", "details": string(apiErr.Body)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Supabase Auth error"})
		logs.LogJSON("ERROR", "Supabase signup failed", map[string]interface{}{
			"error": err.Error(),
			"route": route,
		})
		return
	}

	// Étape 2 – Créer le profil
	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}
	newProfile := profile.Profile{
		ID:          userID,
		Username:    input.Username,
		DisplayName: displayName,
		Mood:        string(m),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := database.DB.Create(&newProfile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		logs.LogJSON("ERROR", "Profile insertion failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Welcome to Loopz",
		"profile": newProfile,
	})
	logs.LogJSON("INFO", "User signed up", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}

// Login relaie la demande de session à Supabase et renvoie sa réponse telle quelle
func Login(c *gin.Context) {
	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	status, respBody, err := supabase.Default.Token(body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Supabase connection error"})
		logs.LogJSON("ERROR", "Supabase login failed", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
		})
		return
	}

	c.Data(status, "application/json", respBody)
}
