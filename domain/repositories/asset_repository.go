package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tix4u-backend/domain/models"
)

type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	// FindByIDs ดึงหลาย asset ใน query เดียว (สำหรับ bulk URL resolution)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Asset, error)
	UpdateSize(ctx context.Context, id uuid.UUID, size string) error
	// MarkLinked set linkedAt ให้ asset ที่ถูกผูกกับ entity อื่น
	MarkLinked(ctx context.Context, ids []uuid.UUID, linkedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListStaleUnconfirmed คืน asset ที่ยังไม่ confirm (size null) และเก่ากว่า cutoff
	ListStaleUnconfirmed(ctx context.Context, cutoff time.Time, limit int) ([]*models.Asset, error)
}
