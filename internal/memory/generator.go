// Package memory transforme une loop en artefact animé durable.
package memory

import (
	"math"
	"unicode/utf8"

	"github.com/ArthurDelaporte/Loopz-Back/internal/mood"
)

const (
	AnimationType = "particle-burst"
	fallbackColor = "#9B5DE5"
	maxParticles  = 50
)

var palette = map[string]string{
	"happy":    "#FFD700",
	"sad":      "#4169E1",
	"excited":  "#FF6347",
	"calm":     "#98FB98",
	"neutral":  "#D3D3D3",
	"creative": "#9B5DE5",
}

type Keyframe struct {
	Time    float64 `json:"time"`
	Scale   float64 `json:"scale"`
	Opacity float64 `json:"opacity"`
}

type Animation struct {
	Type      string     `json:"type"`
	Color     string     `json:"color"`
	Duration  float64    `json:"duration"`
	Particles float64    `json:"particles"`
	Intensity string     `json:"intensity"`
	Pattern   string     `json:"pattern"`
	Keyframes []Keyframe `json:"keyframes"`
}

// Generate est une fonction pure de (contenu, humeur)
func Generate(content string, m *string) Animation {
	current := ""
	if m != nil {
		current = *m
	}

	length := float64(utf8.RuneCountInString(content))

	return Animation{
		Type:      AnimationType,
		Color:     ColorFor(current),
		Duration:  math.Min(math.Max(length/10, 2), 8),
		Particles: math.Min(length/5, maxParticles),
		Intensity: intensity(current),
		Pattern:   pattern(current),
		Keyframes: []Keyframe{
			{Time: 0, Scale: 0, Opacity: 1},
			{Time: 0.5, Scale: 1, Opacity: 1},
			{Time: 1, Scale: 0.5, Opacity: 0},
		},
	}
}

// ColorFor renvoie la couleur associée à une humeur ; vide = neutral
func ColorFor(m string) string {
	if m == "" {
		m = string(mood.Default)
	}
	if color, ok := palette[m]; ok {
		return color
	}
	return fallbackColor
}

func intensity(m string) string {
	switch mood.Mood(m) {
	case mood.Excited:
		return "high"
	case mood.Calm:
		return "low"
	default:
		return "medium"
	}
}

func pattern(m string) string {
	switch mood.Mood(m) {
	case mood.Happy:
		return "spiral"
	case mood.Sad:
		return "fall"
	default:
		return "burst"
	}
}
