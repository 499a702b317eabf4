package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tix4u-backend/domain/models"
	"tix4u-backend/domain/repositories"
)

type AssetRepositoryImpl struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) repositories.AssetRepository {
	return &AssetRepositoryImpl{db: db}
}

func (r *AssetRepositoryImpl) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *AssetRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *AssetRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Asset, error) {
	var assets []*models.Asset
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&assets).Error
	return assets, err
}

func (r *AssetRepositoryImpl) UpdateSize(ctx context.Context, id uuid.UUID, size string) error {
	return r.db.WithContext(ctx).Model(&models.Asset{}).Where("id = ?", id).Update("size", size).Error
}

func (r *AssetRepositoryImpl) MarkLinked(ctx context.Context, ids []uuid.UUID, linkedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Asset{}).Where("id IN ?", ids).Update("linked_at", linkedAt).Error
}

func (r *AssetRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Asset{}).Error
}

func (r *AssetRepositoryImpl) ListStaleUnconfirmed(ctx context.Context, cutoff time.Time, limit int) ([]*models.Asset, error) {
	var assets []*models.Asset
	err := r.db.WithContext(ctx).
		Where("size IS NULL AND created_at < ?", cutoff).
		Limit(limit).
		Find(&assets).Error
	return assets, err
}
