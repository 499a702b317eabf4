package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tix4u-backend/domain/models"
	"tix4u-backend/domain/repositories"
)

type TeamRepositoryImpl struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) repositories.TeamRepository {
	return &TeamRepositoryImpl{db: db}
}

func (r *TeamRepositoryImpl) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *TeamRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepositoryImpl) Update(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *TeamRepositoryImpl) ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.Team, error) {
	var teams []*models.Team
	err := r.db.WithContext(ctx).
		Where("owner_id = ? OR affiliate_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&teams).Error
	return teams, err
}

func (r *TeamRepositoryImpl) ListByAffiliate(ctx context.Context, affiliateID uuid.UUID, offset, limit int) ([]*models.Team, error) {
	var teams []*models.Team
	err := r.db.WithContext(ctx).
		Where("affiliate_id = ?", affiliateID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&teams).Error
	return teams, err
}

func (r *TeamRepositoryImpl) CountByAffiliate(ctx context.Context, affiliateID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Team{}).Where("affiliate_id = ?", affiliateID).Count(&count).Error
	return count, err
}
