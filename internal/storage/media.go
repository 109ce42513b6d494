package storage

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

const mb = 1024 * 1024

var (
	ErrInvalidMediaKind = errors.New("invalid media type")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrFileTooLarge     = errors.New("file too large")
)

// Plafonds par type de média
var maxSizes = map[MediaKind]int64{
	MediaImage: 5 * mb,
	MediaVideo: 30 * mb,
	MediaAudio: 10 * mb,
}

func (k MediaKind) IsValid() bool {
	_, ok := maxSizes[k]
	return ok
}

func (k MediaKind) MaxSize() int64 {
	return maxSizes[k]
}

func validExtensions(kind MediaKind) map[string]bool {
	switch kind {
	case MediaImage:
		return map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".heic": true}
	case MediaVideo:
		return map[string]bool{".mp4": true, ".mov": true}
	case MediaAudio:
		return map[string]bool{".mp3": true, ".wav": true, ".aac": true, ".m4a": true}
	default:
		return map[string]bool{}
	}
}

// ValidateMedia vérifie le type, l'extension et la taille d'un fichier
func ValidateMedia(kind MediaKind, filename string, size int64) error {
	if !kind.IsValid() {
		return ErrInvalidMediaKind
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !validExtensions(kind)[ext] {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}

	if size > kind.MaxSize() {
		return fmt.Errorf("%w: max %dMB", ErrFileTooLarge, kind.MaxSize()/mb)
	}
	return nil
}

// PostMediaKey construit posts/{userID}/{millis}-{aléatoire}{ext}
func PostMediaKey(userID, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	suffix := strconv.FormatUint(rand.Uint64(), 36)
	if len(suffix) > 9 {
		suffix = suffix[:9]
	}
	return fmt.Sprintf("posts/%s/%d-%s%s", userID, now.UnixMilli(), suffix, ext)
}

func AvatarKey(userID, filename string) string {
	return fmt.Sprintf("avatars/user_%s%s", userID, strings.ToLower(filepath.Ext(filename)))
}
