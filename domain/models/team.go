package models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID      uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Owner   User      `gorm:"foreignKey:OwnerID"`
	// AffiliateID คือ affiliate ที่สร้าง team นี้ให้ organizer (nullable)
	AffiliateID *uuid.UUID `gorm:"type:uuid;index"`
	Name        string     `gorm:"size:100;not null"`
	Slug        string     `gorm:"size:100;uniqueIndex;not null"`
	Description string     `gorm:"size:300"`
	Logo        *uuid.UUID `gorm:"type:uuid"`
	Banner      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Team) TableName() string {
	return "teams"
}
