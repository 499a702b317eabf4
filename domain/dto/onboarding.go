package dto

import (
	"time"

	"github.com/google/uuid"
)

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=organizer affiliate"`
}

type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Slug        string `json:"slug" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=300"`
}

type CreateEventRequest struct {
	Title         string     `json:"title" validate:"required,min=2,max=200"`
	Slug          string     `json:"slug" validate:"required,min=2,max=200"`
	Description   string     `json:"description"`
	Tags          []string   `json:"tags" validate:"omitempty,max=10,dive,max=50"`
	Venue         string     `json:"venue" validate:"omitempty,max=500"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	LogoAssetID   *uuid.UUID `json:"logoAssetId"`
	BannerAssetID *uuid.UUID `json:"bannerAssetId"`
}

type VerifyAffiliateRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyAffiliateResponse struct {
	Approved bool `json:"approved"`
}

type SwitchEventRequest struct {
	EventID uuid.UUID `json:"eventId" validate:"required"`
}
