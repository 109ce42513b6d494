// Package caption génère une légende courte pour une image via un
// fournisseur compatible OpenAI.
package caption

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"github.com/ArthurDelaporte/Loopz-Back/internal/retry"
)

const (
	MaxLength     = 280
	defaultPrompt = "Write a short, catchy social media caption under 280 characters for this image. The mood is %s. Reply with the caption only."
)

var ErrNoCaption = errors.New("provider returned no caption")

type Client struct {
	http   *resty.Client
	url    string
	apiKey string
	model  string
	prompt string
	retry  retry.Config
}

func NewClient(url, apiKey, model, prompt string) *Client {
	if prompt == "" {
		prompt = defaultPrompt
	}
	return &Client{
		http:   resty.New().SetTimeout(30 * time.Second),
		url:    url,
		apiKey: apiKey,
		model:  model,
		prompt: prompt,
		retry:  retry.DefaultConfig(),
	}
}

type chatContent struct {
	Type     string            `json:"type"`
	Text     string            `json:"text,omitempty"`
	ImageURL map[string]string `json:"image_url,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate demande une légende pour image (URL ou data URL) dans l'humeur m.
// Les erreurs réseau et 5xx sont retentées, les 4xx non.
func (c *Client) Generate(ctx context.Context, image, m string) (string, error) {
	if m == "" {
		m = "neutral"
	}

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []chatContent{
				{Type: "text", Text: fmt.Sprintf(c.prompt, m)},
				{Type: "image_url", ImageURL: map[string]string{"url": image}},
			},
		}},
		MaxTokens: 120,
	}

	var result chatResponse
	err := retry.Do(ctx, "generate_caption", func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Authorization", "Bearer "+c.apiKey).
			SetBody(body).
			SetResult(&result).
			Post(c.url)
		if err != nil {
			return err
		}
		if resp.StatusCode() >= 500 || resp.StatusCode() == 429 {
			return fmt.Errorf("caption provider: status %d", resp.StatusCode())
		}
		if resp.IsError() {
			return retry.Permanent(fmt.Errorf("caption provider: status %d: %s", resp.StatusCode(), resp.String()))
		}
		return nil
	}, c.retry)
	if err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", ErrNoCaption
	}
	text := Clean(result.Choices[0].Message.Content)
	if text == "" {
		return "", ErrNoCaption
	}
	return text, nil
}

// Clean retire les espaces et guillemets englobants et borne à MaxLength caractères
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxLength {
		s = string([]rune(s)[:MaxLength])
	}
	return s
}
