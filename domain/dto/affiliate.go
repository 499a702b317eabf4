package dto

import (
	"time"

	"github.com/google/uuid"
)

// ApplyRequest ใบสมัคร affiliate (public endpoint)
type ApplyRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Email       string `json:"email" validate:"required,email,max=100"`
	Phone       string `json:"phone" validate:"required,min=7,max=30"`
	Reason      string `json:"reason" validate:"omitempty,max=1000"`
	AcceptTerms bool   `json:"acceptTerms" validate:"required"`
}

// CreateAffiliateTeamRequest — affiliate สร้าง team พร้อม account ของ organizer
type CreateAffiliateTeamRequest struct {
	Name          string     `json:"name" validate:"required,min=2,max=100"`
	Slug          string     `json:"slug" validate:"required,min=2,max=100"`
	Description   string     `json:"description" validate:"omitempty,max=300"`
	AdminName     string     `json:"adminName" validate:"required,min=2,max=200"`
	AdminEmail    string     `json:"adminEmail" validate:"required,email,max=100"`
	LogoAssetID   *uuid.UUID `json:"logoAssetId"`
	BannerAssetID *uuid.UUID `json:"bannerAssetId"`
}

type UpdateTeamRequest struct {
	Name          *string    `json:"name" validate:"omitempty,min=2,max=100"`
	Description   *string    `json:"description" validate:"omitempty,max=300"`
	LogoAssetID   *uuid.UUID `json:"logoAssetId"`
	BannerAssetID *uuid.UUID `json:"bannerAssetId"`
}

type TeamResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Logo        *string   `json:"logo"`   // resolved URL
	Banner      *string   `json:"banner"` // resolved URL
	CreatedAt   time.Time `json:"createdAt"`
}

// StatPair ค่าปัจจุบันกับ % การเปลี่ยนแปลงเทียบช่วงก่อน
type StatPair struct {
	Current       float64 `json:"current"`
	ChangePercent float64 `json:"changePercent"`
}

type EarningsStatsResponse struct {
	TotalEarned    StatPair `json:"totalEarned"`
	CurrentBalance StatPair `json:"currentBalance"`
	EventsProfited int64    `json:"eventsProfited"`
}

type EarningsChartPoint struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
}

type EarningsChartResponse struct {
	Points []EarningsChartPoint `json:"points"`
}

type PortfolioStatsResponse struct {
	TotalTeams   int64 `json:"totalTeams"`
	TotalEvents  int64 `json:"totalEvents"`
	ActiveEvents int64 `json:"activeEvents"`
}
