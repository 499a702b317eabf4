package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tix4u-backend/domain/models"
	"tix4u-backend/domain/repositories"
)

type EventRepositoryImpl struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) repositories.EventRepository {
	return &EventRepositoryImpl{db: db}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *EventRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) ListByTeamIDs(ctx context.Context, teamIDs []uuid.UUID) ([]*models.Event, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	var events []*models.Event
	err := r.db.WithContext(ctx).Where("team_id IN ?", teamIDs).Order("created_at ASC").Find(&events).Error
	return events, err
}

func (r *EventRepositoryImpl) CountByTeamIDs(ctx context.Context, teamIDs []uuid.UUID) (int64, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Event{}).Where("team_id IN ?", teamIDs).Count(&count).Error
	return count, err
}

func (r *EventRepositoryImpl) CountActiveByTeamIDs(ctx context.Context, teamIDs []uuid.UUID) (int64, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("team_id IN ? AND status = ? AND (end_date IS NULL OR end_date > ?)",
			teamIDs, models.EventStatusPublished, time.Now()).
		Count(&count).Error
	return count, err
}
