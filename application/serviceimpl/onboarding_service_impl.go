package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"tix4u-backend/domain/dto"
	"tix4u-backend/domain/models"
	"tix4u-backend/domain/repositories"
	"tix4u-backend/domain/services"
	"tix4u-backend/pkg/cache"
	"tix4u-backend/pkg/logger"
)

// selectedStore เก็บ team/event ที่ user เลือกอยู่ (production ใช้ Redis)
type selectedStore interface {
	SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, target any) (bool, error)
}

func selectedKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:selected", userID)
}

// profileCacheKey คือ cache key ของ authProfile ต่อ user
func profileCacheKey(userID uuid.UUID) cache.Key {
	return cache.Key{Name: "authProfile", Key: userID.String()}
}

type OnboardingServiceImpl struct {
	userRepo  repositories.UserRepository
	teamRepo  repositories.TeamRepository
	eventRepo repositories.EventRepository
	appRepo   repositories.AffiliateApplicationRepository
	assetSvc  services.AssetService
	selected  selectedStore
	cache     *cache.Cache
}

func NewOnboardingService(
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	eventRepo repositories.EventRepository,
	appRepo repositories.AffiliateApplicationRepository,
	assetSvc services.AssetService,
	selected selectedStore,
	c *cache.Cache,
) services.OnboardingService {
	return &OnboardingServiceImpl{
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		eventRepo: eventRepo,
		appRepo:   appRepo,
		assetSvc:  assetSvc,
		selected:  selected,
		cache:     c,
	}
}

func (s *OnboardingServiceImpl) SetRole(ctx context.Context, userID uuid.UUID, role string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ErrUserNotFound
		}
		return err
	}

	if user.Onboarded() {
		return services.ErrRoleAlreadySet
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return err
	}

	s.invalidateProfile(ctx, userID)
	logger.InfoContext(ctx, "User role set", "user_id", userID, "role", role)
	return nil
}

func (s *OnboardingServiceImpl) UpdateRole(ctx context.Context, userID uuid.UUID, role string) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return err
	}

	s.invalidateProfile(ctx, userID)
	logger.InfoContext(ctx, "User role updated", "user_id", userID, "role", role)
	return nil
}

func (s *OnboardingServiceImpl) CreateTeam(ctx context.Context, userID uuid.UUID, req *dto.CreateTeamRequest) (uuid.UUID, error) {
	teamSlug := slug.Make(req.Slug)

	if err := s.ensureTeamSlugFree(ctx, teamSlug); err != nil {
		return uuid.Nil, err
	}

	team := &models.Team{
		OwnerID:     userID,
		Name:        req.Name,
		Slug:        teamSlug,
		Description: req.Description,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		logger.ErrorContext(ctx, "Failed to create team", "slug", teamSlug, "error", err)
		return uuid.Nil, err
	}

	// team ใหม่กลายเป็น team ที่เลือกอยู่ทันที
	if err := s.selected.SetJSON(ctx, selectedKey(userID), dto.SelectedContext{TeamID: &team.ID}, 0); err != nil {
		logger.WarnContext(ctx, "Failed to store selected context", "user_id", userID, "error", err)
	}

	s.invalidateProfile(ctx, userID)
	logger.InfoContext(ctx, "Team created", "team_id", team.ID, "slug", teamSlug, "owner_id", userID)
	return team.ID, nil
}

func (s *OnboardingServiceImpl) CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (uuid.UUID, error) {
	var selected dto.SelectedContext
	found, err := s.selected.GetJSON(ctx, selectedKey(userID), &selected)
	if err != nil {
		return uuid.Nil, err
	}
	if !found || selected.TeamID == nil {
		return uuid.Nil, services.ErrNoTeamSelected
	}

	team, err := s.teamRepo.GetByID(ctx, *selected.TeamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, services.ErrTeamNotFound
		}
		return uuid.Nil, err
	}

	if team.OwnerID != userID && (team.AffiliateID == nil || *team.AffiliateID != userID) {
		return uuid.Nil, services.ErrNotTeamMember
	}

	eventSlug := slug.Make(req.Slug)
	if existing, err := s.eventRepo.GetBySlug(ctx, eventSlug); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	} else if existing != nil {
		return uuid.Nil, services.ErrSlugTaken
	}

	event := &models.Event{
		TeamID:      team.ID,
		CreatorID:   userID,
		Title:       req.Title,
		Slug:        eventSlug,
		Description: req.Description,
		Tags:        req.Tags,
		Venue:       strings.TrimSpace(req.Venue),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Logo:        req.LogoAssetID,
		Banner:      req.BannerAssetID,
		Status:      models.EventStatusDraft,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		logger.ErrorContext(ctx, "Failed to create event", "slug", eventSlug, "error", err)
		return uuid.Nil, err
	}

	// asset ที่ผูกกับ event แล้วห้ามถูกลบทีหลัง
	var linked []uuid.UUID
	if req.LogoAssetID != nil {
		linked = append(linked, *req.LogoAssetID)
	}
	if req.BannerAssetID != nil {
		linked = append(linked, *req.BannerAssetID)
	}
	if err := s.assetSvc.MarkLinked(ctx, linked); err != nil {
		logger.WarnContext(ctx, "Failed to mark assets linked", "event_id", event.ID, "error", err)
	}

	selected.EventID = &event.ID
	if err := s.selected.SetJSON(ctx, selectedKey(userID), selected, 0); err != nil {
		logger.WarnContext(ctx, "Failed to store selected context", "user_id", userID, "error", err)
	}

	s.invalidateProfile(ctx, userID)
	logger.InfoContext(ctx, "Event created", "event_id", event.ID, "team_id", team.ID, "slug", eventSlug)
	return event.ID, nil
}

func (s *OnboardingServiceImpl) VerifyAffiliate(ctx context.Context, email string) (bool, error) {
	app, err := s.appRepo.FindApprovedByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, err
	}
	return app != nil, nil
}

func (s *OnboardingServiceImpl) ensureTeamSlugFree(ctx context.Context, teamSlug string) error {
	existing, err := s.teamRepo.GetBySlug(ctx, teamSlug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return services.ErrSlugTaken
	}
	return nil
}

func (s *OnboardingServiceImpl) invalidateProfile(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, profileCacheKey(userID)); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate profile cache", "user_id", userID, "error", err)
	}
}
