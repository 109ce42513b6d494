package profile

import "time"

type Profile struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"` // UUID venant de auth.users
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Bio         *string   `json:"bio"`
	AvatarURL   *string   `json:"avatar_url"`
	Mood        string    `json:"mood"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Author est la projection publique jointe aux posts, messages, notifications
type Author struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

func (p Profile) Author() Author {
	return Author{ID: p.ID, Username: p.Username, AvatarURL: p.AvatarURL}
}
