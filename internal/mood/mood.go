// Package mood définit le vocabulaire fermé des humeurs de Loopz.
package mood

import (
	"errors"
	"strings"
)

type Mood string

const (
	Happy    Mood = "happy"
	Sad      Mood = "sad"
	Excited  Mood = "excited"
	Calm     Mood = "calm"
	Neutral  Mood = "neutral"
	Creative Mood = "creative"
)

const Default = Neutral

var ErrInvalidMood = errors.New("invalid mood")

var All = []Mood{Happy, Sad, Excited, Calm, Neutral, Creative}

func (m Mood) IsValid() bool {
	switch m {
	case Happy, Sad, Excited, Calm, Neutral, Creative:
		return true
	default:
		return false
	}
}

// Parse normalise une humeur saisie ; vide => neutral
func Parse(s string) (Mood, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default, nil
	}
	m := Mood(s)
	if !m.IsValid() {
		return "", ErrInvalidMood
	}
	return m, nil
}

// OrDefault renvoie neutral pour une humeur absente
func OrDefault(m *string) Mood {
	if m == nil || *m == "" {
		return Default
	}
	return Mood(*m)
}
