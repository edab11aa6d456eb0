package users

import "time"

const (
	RoleCollector = "collector"
	RoleArtist    = "artist"
	RoleAdmin     = "admin"
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `json:"name"`
	Lastname     string  `json:"lastname"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Password     *string `gorm:"" json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"-"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'collector'" json:"role"`

	WalletAddress *string `gorm:"column:wallet_address" json:"wallet_address,omitempty"`
	Bio           string  `json:"bio,omitempty"`
	AvatarURL     string  `gorm:"column:avatar_url" json:"avatar_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleCollector, RoleArtist, RoleAdmin:
		return true
	}
	return false
}
