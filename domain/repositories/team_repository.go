package repositories

import (
	"context"

	"github.com/google/uuid"

	"tix4u-backend/domain/models"
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetBySlug(ctx context.Context, slug string) (*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	// ListByMember คืน team ที่ user เป็น owner หรือเป็น affiliate ผู้สร้าง
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.Team, error)
	// ListByAffiliate คืน team ที่ affiliate คนนี้สร้างให้ organizer
	ListByAffiliate(ctx context.Context, affiliateID uuid.UUID, offset, limit int) ([]*models.Team, error)
	CountByAffiliate(ctx context.Context, affiliateID uuid.UUID) (int64, error)
}
