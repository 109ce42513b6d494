package memory

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Memory struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid"`
	PostID        string    `json:"post_id" gorm:"type:uuid"`
	UserID        string    `json:"user_id" gorm:"type:uuid"`
	AnimationData Animation `json:"animation_data" gorm:"type:jsonb"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Memory) TableName() string {
	return "memories"
}

// Value stocke l'animation en jsonb
func (a Animation) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Animation) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = Animation{}
		return nil
	default:
		return fmt.Errorf("animation_data: type non supporté %T", src)
	}
}
