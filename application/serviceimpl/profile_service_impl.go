package serviceimpl

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tix4u-backend/domain/dto"
	"tix4u-backend/domain/models"
	"tix4u-backend/domain/repositories"
	"tix4u-backend/domain/services"
	"tix4u-backend/pkg/cache"
	"tix4u-backend/pkg/logger"
)

// profileCacheTTL เท่ากับอายุ presigned URL ข้างใน —
// cache หมดอายุก่อน URL เสมอ
const profileCacheTTL = 2 * time.Hour

type ProfileServiceImpl struct {
	userRepo  repositories.UserRepository
	teamRepo  repositories.TeamRepository
	eventRepo repositories.EventRepository
	assetSvc  services.AssetService
	selected  selectedStore
	cache     *cache.Cache
}

func NewProfileService(
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	eventRepo repositories.EventRepository,
	assetSvc services.AssetService,
	selected selectedStore,
	c *cache.Cache,
) services.ProfileService {
	return &ProfileServiceImpl{
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		eventRepo: eventRepo,
		assetSvc:  assetSvc,
		selected:  selected,
		cache:     c,
	}
}

func (s *ProfileServiceImpl) Me(ctx context.Context, userID uuid.UUID) (*dto.AuthProfile, error) {
	var profile dto.AuthProfile
	err := s.cache.Remember(ctx, profileCacheKey(userID), profileCacheTTL, &profile, func() (any, error) {
		return s.buildProfile(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileServiceImpl) buildProfile(ctx context.Context, userID uuid.UUID) (*dto.AuthProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}

	teams, err := s.teamRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	teamIDs := make([]uuid.UUID, 0, len(teams))
	for _, team := range teams {
		teamIDs = append(teamIDs, team.ID)
	}

	var events []*models.Event
	if len(teamIDs) > 0 {
		events, err = s.eventRepo.ListByTeamIDs(ctx, teamIDs)
		if err != nil {
			return nil, err
		}
	}

	// รวม asset id ทั้งโปรไฟล์แล้ว resolve ใน batch เดียว
	var assetIDs []uuid.UUID
	if user.Image != nil {
		assetIDs = append(assetIDs, *user.Image)
	}
	for _, team := range teams {
		if team.Logo != nil {
			assetIDs = append(assetIDs, *team.Logo)
		}
	}
	for _, event := range events {
		if event.Logo != nil {
			assetIDs = append(assetIDs, *event.Logo)
		}
	}

	urls, err := s.assetSvc.ResolveURLs(ctx, assetIDs, profileCacheTTL)
	if err != nil {
		logger.WarnContext(ctx, "Failed to resolve profile asset URLs", "user_id", userID, "error", err)
		urls = map[uuid.UUID]*string{}
	}

	urlFor := func(id *uuid.UUID) *string {
		if id == nil {
			return nil
		}
		return urls[*id]
	}

	eventsByTeam := make(map[uuid.UUID][]dto.ProfileEvent, len(teams))
	for _, event := range events {
		eventsByTeam[event.TeamID] = append(eventsByTeam[event.TeamID], dto.ProfileEvent{
			ID:    event.ID,
			Title: event.Title,
			Slug:  event.Slug,
			Logo:  urlFor(event.Logo),
		})
	}

	profileTeams := make([]dto.ProfileTeam, 0, len(teams))
	for _, team := range teams {
		profileTeams = append(profileTeams, dto.ProfileTeam{
			ID:     team.ID,
			Name:   team.Name,
			Slug:   team.Slug,
			Logo:   urlFor(team.Logo),
			Events: eventsByTeam[team.ID],
		})
	}

	profile := &dto.AuthProfile{
		User: dto.UserResponse{
			ID:            user.ID,
			Name:          user.Name,
			Email:         user.Email,
			EmailVerified: user.EmailVerified,
			Image:         urlFor(user.Image),
			Role:          user.Role,
			CreatedAt:     user.CreatedAt,
		},
		Teams: profileTeams,
	}

	var selected dto.SelectedContext
	found, err := s.selected.GetJSON(ctx, selectedKey(userID), &selected)
	if err != nil {
		logger.WarnContext(ctx, "Failed to read selected context", "user_id", userID, "error", err)
	} else if found {
		profile.Selected = &selected
	}

	return profile, nil
}

func (s *ProfileServiceImpl) SwitchEvent(ctx context.Context, userID, eventID uuid.UUID) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ErrEventNotFound
		}
		return err
	}

	team, err := s.teamRepo.GetByID(ctx, event.TeamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ErrTeamNotFound
		}
		return err
	}

	if team.OwnerID != userID && (team.AffiliateID == nil || *team.AffiliateID != userID) {
		return services.ErrNotTeamMember
	}

	selected := dto.SelectedContext{TeamID: &team.ID, EventID: &event.ID}
	if err := s.selected.SetJSON(ctx, selectedKey(userID), selected, 0); err != nil {
		return err
	}

	if err := s.InvalidateProfile(ctx, userID); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate profile cache", "user_id", userID, "error", err)
	}

	logger.InfoContext(ctx, "Selected event switched", "user_id", userID, "event_id", eventID)
	return nil
}

func (s *ProfileServiceImpl) InvalidateProfile(ctx context.Context, userID uuid.UUID) error {
	return s.cache.Invalidate(ctx, profileCacheKey(userID))
}
