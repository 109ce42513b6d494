package admin

import (
	"time"

	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
)

type AdminUser struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// RoleOf renvoie le rôle du profil dans admin_users, vide s'il n'y figure pas
func RoleOf(userID string) (string, error) {
	var role string
	err := database.DB.Model(&AdminUser{}).Select("role").Where("id = ?", userID).Scan(&role).Error
	return role, err
}
