// Package supabase appelle l'API REST de Supabase Auth.
package supabase

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrNoUserID = errors.New("supabase: no user id returned")

// APIError porte le statut et le corps renvoyés par Supabase
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: status %d: %s", e.Status, string(e.Body))
}

type Client struct {
	http    *resty.Client
	baseURL string
	anonKey string
}

func New(baseURL, anonKey string) *Client {
	return &Client{
		http:    resty.New().SetTimeout(15 * time.Second),
		baseURL: baseURL,
		anonKey: anonKey,
	}
}

var Default *Client

func Init(baseURL, anonKey string) {
	Default = New(baseURL, anonKey)
}

func (c *Client) request() *resty.Request {
	return c.http.R().
		SetHeader("apikey", c.anonKey).
		SetHeader("Content-Type", "application/json")
}

// SignUp crée le compte et renvoie l'id Supabase de l'utilisateur
func (c *Client) SignUp(email, password string) (string, error) {
	resp, err := c.request().
		SetBody(map[string]string{"email": email, "password": password}).
		Post(c.baseURL + "/auth/v1/signup")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", &APIError{Status: resp.StatusCode(), Body: resp.Body()}
	}

	// Sans confirmation par mail l'id est sous "user", avec confirmation à la racine
	var authResp struct {
		ID   string `json:"id"`
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(resp.Body(), &authResp); err != nil {
		return "", fmt.Errorf("supabase: parsing signup response: %w", err)
	}

	userID := authResp.User.ID
	if userID == "" {
		userID = authResp.ID
	}
	if userID == "" {
		return "", ErrNoUserID
	}
	return userID, nil
}

// Token relaie une demande de session (grant password) ; renvoie statut et corps bruts
func (c *Client) Token(credentials map[string]string) (int, []byte, error) {
	resp, err := c.request().
		SetBody(credentials).
		Post(c.baseURL + "/auth/v1/token?grant_type=password")
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), resp.Body(), nil
}

// Refresh échange un refresh token contre un nouvel access token
func (c *Client) Refresh(refreshToken string) (string, error) {
	var result struct {
		AccessToken string `json:"access_token"`
	}

	resp, err := c.request().
		SetBody(map[string]string{"refresh_token": refreshToken}).
		SetResult(&result).
		Post(c.baseURL + "/auth/v1/token?grant_type=refresh_token")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", &APIError{Status: resp.StatusCode(), Body: resp.Body()}
	}
	if result.AccessToken == "" {
		return "", errors.New("supabase: empty access token")
	}
	return result.AccessToken, nil
}
