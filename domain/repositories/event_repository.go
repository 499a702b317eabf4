package repositories

import (
	"context"

	"github.com/google/uuid"

	"tix4u-backend/domain/models"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	ListByTeamIDs(ctx context.Context, teamIDs []uuid.UUID) ([]*models.Event, error)
	CountByTeamIDs(ctx context.Context, teamIDs []uuid.UUID) (int64, error)
	CountActiveByTeamIDs(ctx context.Context, teamIDs []uuid.UUID) (int64, error)
}
