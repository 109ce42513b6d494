package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ArthurDelaporte/Loopz-Back/internal/supabase"
)

// Options regroupe les secrets partagés par les middlewares d'authentification
type Options struct {
	JWTSecret string
}

var opts Options

func Configure(o Options) {
	opts = o
}

// tokenFrom lit le bearer de l'en-tête Authorization, ou à défaut le paramètre
// access_token (EventSource ne peut pas poser d'en-tête). Vide si aucun.
func tokenFrom(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ""
		}
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("access_token")
}

// isExpired lit exp sans vérifier la signature ; seul un exp passé compte
func isExpired(tokenStr string, at time.Time) bool {
	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := token.Claims.GetExpirationTime()
	return err == nil && exp != nil && exp.Before(at)
}

// parseToken valide un JWT Supabase signé en HS256 et renvoie son "sub"
func parseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		// Vérifie que Supabase a bien utilisé HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("signature invalide")
		}
		return []byte(opts.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("token invalide")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("claims invalides")
	}
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", errors.New("user ID manquant")
	}
	return userID, nil
}

// refreshAccessToken échange un refresh token Supabase contre un nouvel access token
func refreshAccessToken(refreshToken string) (string, error) {
	if supabase.Default == nil {
		return "", errors.New("client supabase non initialisé")
	}
	return supabase.Default.Refresh(refreshToken)
}
