package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tix4u-backend/domain/models"
)

type AffiliateApplicationRepository interface {
	Create(ctx context.Context, app *models.AffiliateApplication) error
	// FindActiveByEmail หาใบสมัคร pending หรือ approved ของ email นี้
	FindActiveByEmail(ctx context.Context, email string) (*models.AffiliateApplication, error)
	FindApprovedByEmail(ctx context.Context, email string) (*models.AffiliateApplication, error)
}

// EarningsBucket ยอดรวมรายเดือนสำหรับ chart
type EarningsBucket struct {
	Month time.Time `json:"month"`
	Total float64   `json:"total"`
}

type AffiliateEarningRepository interface {
	Create(ctx context.Context, earning *models.AffiliateEarning) error
	// SumByKind รวมยอดตาม kind ในช่วงเวลา [from, to)
	SumByKind(ctx context.Context, affiliateID uuid.UUID, kind string, from, to time.Time) (float64, error)
	// MonthlyTotals ยอด commission รายเดือนย้อนหลัง months เดือน
	MonthlyTotals(ctx context.Context, affiliateID uuid.UUID, months int) ([]EarningsBucket, error)
	CountEventsWithEarnings(ctx context.Context, affiliateID uuid.UUID) (int64, error)
}
