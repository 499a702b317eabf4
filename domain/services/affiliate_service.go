package services

import (
	"context"

	"github.com/google/uuid"

	"tix4u-backend/domain/dto"
)

// AffiliateService งานของ affiliate program:
// ใบสมัคร, team ที่สร้างให้ organizer, รายได้, portfolio
type AffiliateService interface {
	// Apply ยื่นใบสมัคร — ส่ง email/sms ยืนยันแบบ fire-and-forget
	Apply(ctx context.Context, req *dto.ApplyRequest) error

	ListTeams(ctx context.Context, affiliateID uuid.UUID, offset, limit int) ([]*dto.TeamResponse, int64, error)
	GetTeam(ctx context.Context, affiliateID, teamID uuid.UUID) (*dto.TeamResponse, error)
	// CreateTeam สร้าง team พร้อม organizer account (generated password)
	// และส่ง welcome email ให้ owner ใหม่
	CreateTeam(ctx context.Context, affiliateID uuid.UUID, affiliateName string, req *dto.CreateAffiliateTeamRequest) (*dto.TeamResponse, error)
	UpdateTeam(ctx context.Context, affiliateID, teamID uuid.UUID, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error)

	EarningsStats(ctx context.Context, affiliateID uuid.UUID) (*dto.EarningsStatsResponse, error)
	EarningsChart(ctx context.Context, affiliateID uuid.UUID, months int) (*dto.EarningsChartResponse, error)
	PortfolioStats(ctx context.Context, affiliateID uuid.UUID) (*dto.PortfolioStatsResponse, error)
}
