package models

import (
	"time"

	"github.com/google/uuid"
)

// Role ของ user หลัง onboarding
const (
	RoleOrganizer = "organizer"
	RoleAffiliate = "affiliate"
	RoleAdmin     = "admin"
)

type User struct {
	ID            uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name          string    `gorm:"size:200;not null"`
	Email         string    `gorm:"size:100;uniqueIndex;not null"`
	EmailVerified bool      `gorm:"not null;default:false"`
	Password      string    `gorm:"not null"`
	// Image อ้างถึง asset id ของ avatar (nullable)
	Image      *uuid.UUID `gorm:"type:uuid"`
	Role       string     `gorm:"size:30"` // ว่างจนกว่าจะผ่าน onboarding
	Banned     bool       `gorm:"default:false"`
	BanReason  string     `gorm:"size:255"`
	BanExpires *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (User) TableName() string {
	return "users"
}

// Onboarded ผ่านขั้นตอนเลือก role แล้วหรือยัง
func (u *User) Onboarded() bool {
	return u.Role != ""
}
