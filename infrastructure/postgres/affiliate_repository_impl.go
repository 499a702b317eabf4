package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tix4u-backend/domain/models"
	"tix4u-backend/domain/repositories"
)

type AffiliateApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewAffiliateApplicationRepository(db *gorm.DB) repositories.AffiliateApplicationRepository {
	return &AffiliateApplicationRepositoryImpl{db: db}
}

func (r *AffiliateApplicationRepositoryImpl) Create(ctx context.Context, app *models.AffiliateApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *AffiliateApplicationRepositoryImpl) FindActiveByEmail(ctx context.Context, email string) (*models.AffiliateApplication, error) {
	var app models.AffiliateApplication
	err := r.db.WithContext(ctx).
		Where("email = ? AND status IN ?", email, []string{models.ApplicationStatusPending, models.ApplicationStatusApproved}).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *AffiliateApplicationRepositoryImpl) FindApprovedByEmail(ctx context.Context, email string) (*models.AffiliateApplication, error) {
	var app models.AffiliateApplication
	err := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, models.ApplicationStatusApproved).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

type AffiliateEarningRepositoryImpl struct {
	db *gorm.DB
}

func NewAffiliateEarningRepository(db *gorm.DB) repositories.AffiliateEarningRepository {
	return &AffiliateEarningRepositoryImpl{db: db}
}

func (r *AffiliateEarningRepositoryImpl) Create(ctx context.Context, earning *models.AffiliateEarning) error {
	return r.db.WithContext(ctx).Create(earning).Error
}

func (r *AffiliateEarningRepositoryImpl) SumByKind(ctx context.Context, affiliateID uuid.UUID, kind string, from, to time.Time) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).Model(&models.AffiliateEarning{}).
		Select("SUM(amount)").
		Where("affiliate_id = ? AND kind = ? AND occurred_at >= ? AND occurred_at < ?", affiliateID, kind, from, to).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *AffiliateEarningRepositoryImpl) MonthlyTotals(ctx context.Context, affiliateID uuid.UUID, months int) ([]repositories.EarningsBucket, error) {
	since := time.Now().UTC().AddDate(0, -months, 0)

	var buckets []repositories.EarningsBucket
	err := r.db.WithContext(ctx).Model(&models.AffiliateEarning{}).
		Select("date_trunc('month', occurred_at) AS month, SUM(amount) AS total").
		Where("affiliate_id = ? AND kind = ? AND occurred_at >= ?", affiliateID, models.EarningKindCommission, since).
		Group("month").
		Order("month ASC").
		Scan(&buckets).Error
	return buckets, err
}

func (r *AffiliateEarningRepositoryImpl) CountEventsWithEarnings(ctx context.Context, affiliateID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AffiliateEarning{}).
		Where("affiliate_id = ? AND event_id IS NOT NULL", affiliateID).
		Distinct("event_id").
		Count(&count).Error
	return count, err
}
