package report

import (
	"errors"
	"time"
)

// TargetType définit les entités qui peuvent être signalées
type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
	TargetProfile TargetType = "profile"
)

type Reason string

const (
	ReasonInappropriateContent Reason = "inappropriate_content"
	ReasonSpam                 Reason = "spam"
	ReasonHateSpeech           Reason = "hate_speech"
	ReasonImpersonation        Reason = "impersonation"
	ReasonOther                Reason = "other"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusResolved Status = "resolved"
	StatusRejected Status = "rejected"
)

var (
	ErrInvalidTarget  = errors.New("invalid report target")
	ErrInvalidReason  = errors.New("invalid report reason")
	ErrInvalidStatus  = errors.New("invalid report status")
	ErrTargetNotFound = errors.New("report target not found")
	ErrAlreadyFiled   = errors.New("target already reported by this user")
	ErrNotFound       = errors.New("report not found")
)

// Report est un signalement déposé par un utilisateur, traité par un admin
type Report struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ReporterID  string     `json:"reporter_id" gorm:"type:uuid;index"`
	TargetType  TargetType `json:"target_type"`
	TargetID    string     `json:"target_id" gorm:"type:uuid"`
	Reason      Reason     `json:"reason"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	AdminID     *string    `json:"admin_id,omitempty" gorm:"type:uuid"`
	AdminNote   string     `json:"admin_note"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

type CreateInput struct {
	TargetType  TargetType `json:"target_type" binding:"required"`
	TargetID    string     `json:"target_id" binding:"required"`
	Reason      Reason     `json:"reason" binding:"required"`
	Description string     `json:"description"`
}

type UpdateInput struct {
	Status    Status `json:"status" binding:"required"`
	AdminNote string `json:"admin_note"`
}

// table renvoie la table qui porte la cible, vide si le type est inconnu
func (t TargetType) table() string {
	switch t {
	case TargetPost:
		return "posts"
	case TargetComment:
		return "comments"
	case TargetProfile:
		return "profiles"
	default:
		return ""
	}
}

func (r Reason) IsValid() bool {
	switch r {
	case ReasonInappropriateContent, ReasonSpam, ReasonHateSpeech,
		ReasonImpersonation, ReasonOther:
		return true
	default:
		return false
	}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusResolved, StatusRejected:
		return true
	default:
		return false
	}
}

// Closed indique un signalement traité définitivement
func (s Status) Closed() bool {
	return s == StatusResolved || s == StatusRejected
}
