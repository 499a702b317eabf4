package models

import (
	"time"

	"github.com/google/uuid"
)

// สถานะของ event
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusArchived  = "archived"
)

type Event struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TeamID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Team        Team       `gorm:"foreignKey:TeamID"`
	CreatorID   uuid.UUID  `gorm:"type:uuid;not null"`
	Title       string     `gorm:"size:200;not null"`
	Slug        string     `gorm:"size:200;uniqueIndex;not null"`
	Description string     `gorm:"type:text"`
	Tags        []string   `gorm:"serializer:json;type:jsonb"`
	Logo        *uuid.UUID `gorm:"type:uuid"`
	Banner      *uuid.UUID `gorm:"type:uuid"`
	Poster      *uuid.UUID `gorm:"type:uuid"`
	Venue       string     `gorm:"size:500"`
	StartDate   *time.Time
	EndDate     *time.Time
	Status      string `gorm:"size:30;not null;default:draft"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Event) TableName() string {
	return "events"
}
