package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tix4u-backend/domain/dto"
	"tix4u-backend/domain/models"
	"tix4u-backend/domain/ports"
	"tix4u-backend/domain/repositories"
	"tix4u-backend/domain/services"
	"tix4u-backend/infrastructure/postgres"
	"tix4u-backend/pkg/logger"
	"tix4u-backend/pkg/utils"
)

type AffiliateServiceImpl struct {
	db          *gorm.DB
	appRepo     repositories.AffiliateApplicationRepository
	earningRepo repositories.AffiliateEarningRepository
	teamRepo    repositories.TeamRepository
	eventRepo   repositories.EventRepository
	userRepo    repositories.UserRepository
	assetSvc    services.AssetService
	queue       ports.NotificationQueue
}

func NewAffiliateService(
	db *gorm.DB,
	appRepo repositories.AffiliateApplicationRepository,
	earningRepo repositories.AffiliateEarningRepository,
	teamRepo repositories.TeamRepository,
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	assetSvc services.AssetService,
	queue ports.NotificationQueue,
) services.AffiliateService {
	return &AffiliateServiceImpl{
		db:          db,
		appRepo:     appRepo,
		earningRepo: earningRepo,
		teamRepo:    teamRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		assetSvc:    assetSvc,
		queue:       queue,
	}
}

func (s *AffiliateServiceImpl) Apply(ctx context.Context, req *dto.ApplyRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.appRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return services.ErrApplicationExists
	}

	app := &models.AffiliateApplication{
		Name:        req.Name,
		Email:       email,
		Phone:       strings.TrimSpace(req.Phone),
		Reason:      req.Reason,
		AcceptTerms: req.AcceptTerms,
		Status:      models.ApplicationStatusPending,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		logger.ErrorContext(ctx, "Failed to create affiliate application", "email", email, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Affiliate application received", "application_id", app.ID, "email", email)

	// แจ้งผู้สมัครแบบ fire-and-forget — queue ล่มไม่ทำให้ใบสมัครหาย
	if err := s.queue.PublishEmail(ctx, ports.EmailMessage{
		ToName:     app.Name,
		ToEmail:    app.Email,
		Subject:    "We received your affiliate application",
		TemplateID: ports.TemplateAffiliateApplicationAck,
		Data: map[string]any{
			"name": app.Name,
		},
	}); err != nil {
		logger.WarnContext(ctx, "Failed to queue acknowledgement email", "application_id", app.ID, "error", err)
	}

	if err := s.queue.PublishSMS(ctx, ports.SMSMessage{
		Recipients: []string{app.Phone},
		Message:    fmt.Sprintf("Hi %s, we received your affiliate application and will be in touch soon.", app.Name),
	}); err != nil {
		logger.WarnContext(ctx, "Failed to queue acknowledgement sms", "application_id", app.ID, "error", err)
	}

	return nil
}

func (s *AffiliateServiceImpl) ListTeams(ctx context.Context, affiliateID uuid.UUID, offset, limit int) ([]*dto.TeamResponse, int64, error) {
	teams, err := s.teamRepo.ListByAffiliate(ctx, affiliateID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.teamRepo.CountByAffiliate(ctx, affiliateID)
	if err != nil {
		return nil, 0, err
	}

	responses, err := s.toTeamResponses(ctx, teams)
	if err != nil {
		return nil, 0, err
	}

	return responses, total, nil
}

func (s *AffiliateServiceImpl) GetTeam(ctx context.Context, affiliateID, teamID uuid.UUID) (*dto.TeamResponse, error) {
	team, err := s.ownedTeam(ctx, affiliateID, teamID)
	if err != nil {
		return nil, err
	}

	responses, err := s.toTeamResponses(ctx, []*models.Team{team})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

func (s *AffiliateServiceImpl) CreateTeam(ctx context.Context, affiliateID uuid.UUID, affiliateName string, req *dto.CreateAffiliateTeamRequest) (*dto.TeamResponse, error) {
	teamSlug := slug.Make(req.Slug)

	existing, err := s.teamRepo.GetBySlug(ctx, teamSlug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, services.ErrSlugTaken
	}

	adminEmail := strings.ToLower(strings.TrimSpace(req.AdminEmail))
	if taken, err := s.userRepo.GetByEmail(ctx, adminEmail); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	} else if taken != nil {
		return nil, services.ErrEmailTaken
	}

	// organizer ใหม่ได้ password ที่ generate ให้ แล้วส่งไปทาง welcome email
	password := utils.GeneratePassword(12)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	owner := &models.User{
		Name:     req.AdminName,
		Email:    adminEmail,
		Password: string(hashed),
		Role:     models.RoleOrganizer,
	}

	team := &models.Team{
		AffiliateID: &affiliateID,
		Name:        req.Name,
		Slug:        teamSlug,
		Description: req.Description,
		Logo:        req.LogoAssetID,
		Banner:      req.BannerAssetID,
	}

	// user กับ team ต้องเกิดพร้อมกันหรือไม่เกิดเลย
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUsers := postgres.NewUserRepository(tx)
		txTeams := postgres.NewTeamRepository(tx)

		if err := txUsers.Create(ctx, owner); err != nil {
			return err
		}
		team.OwnerID = owner.ID
		return txTeams.Create(ctx, team)
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create affiliate team", "slug", teamSlug, "error", err)
		return nil, err
	}

	var linked []uuid.UUID
	if req.LogoAssetID != nil {
		linked = append(linked, *req.LogoAssetID)
	}
	if req.BannerAssetID != nil {
		linked = append(linked, *req.BannerAssetID)
	}
	if err := s.assetSvc.MarkLinked(ctx, linked); err != nil {
		logger.WarnContext(ctx, "Failed to mark team assets linked", "team_id", team.ID, "error", err)
	}

	if err := s.queue.PublishEmail(ctx, ports.EmailMessage{
		ToName:     owner.Name,
		ToEmail:    owner.Email,
		Subject:    fmt.Sprintf("Your team %s is ready", team.Name),
		TemplateID: ports.TemplateTeamOwnerWelcome,
		Data: map[string]any{
			"name":          owner.Name,
			"teamName":      team.Name,
			"affiliateName": affiliateName,
			"email":         owner.Email,
			"password":      password,
		},
	}); err != nil {
		logger.WarnContext(ctx, "Failed to queue welcome email", "team_id", team.ID, "error", err)
	}

	logger.InfoContext(ctx, "Affiliate team created", "team_id", team.ID, "affiliate_id", affiliateID, "owner_id", owner.ID)

	responses, err := s.toTeamResponses(ctx, []*models.Team{team})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

func (s *AffiliateServiceImpl) UpdateTeam(ctx context.Context, affiliateID, teamID uuid.UUID, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	team, err := s.ownedTeam(ctx, affiliateID, teamID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}

	var linked []uuid.UUID
	if req.LogoAssetID != nil {
		team.Logo = req.LogoAssetID
		linked = append(linked, *req.LogoAssetID)
	}
	if req.BannerAssetID != nil {
		team.Banner = req.BannerAssetID
		linked = append(linked, *req.BannerAssetID)
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}

	if err := s.assetSvc.MarkLinked(ctx, linked); err != nil {
		logger.WarnContext(ctx, "Failed to mark team assets linked", "team_id", team.ID, "error", err)
	}

	logger.InfoContext(ctx, "Affiliate team updated", "team_id", team.ID, "affiliate_id", affiliateID)

	responses, err := s.toTeamResponses(ctx, []*models.Team{team})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

func (s *AffiliateServiceImpl) EarningsStats(ctx context.Context, affiliateID uuid.UUID) (*dto.EarningsStatsResponse, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	lifetimeCommission, err := s.earningRepo.SumByKind(ctx, affiliateID, models.EarningKindCommission, time.Time{}, now)
	if err != nil {
		return nil, err
	}
	lifetimePayout, err := s.earningRepo.SumByKind(ctx, affiliateID, models.EarningKindPayout, time.Time{}, now)
	if err != nil {
		return nil, err
	}

	thisMonth, err := s.earningRepo.SumByKind(ctx, affiliateID, models.EarningKindCommission, monthStart, now)
	if err != nil {
		return nil, err
	}
	lastMonth, err := s.earningRepo.SumByKind(ctx, affiliateID, models.EarningKindCommission, prevMonthStart, monthStart)
	if err != nil {
		return nil, err
	}

	thisMonthPayout, err := s.earningRepo.SumByKind(ctx, affiliateID, models.EarningKindPayout, monthStart, now)
	if err != nil {
		return nil, err
	}
	lastMonthPayout, err := s.earningRepo.SumByKind(ctx, affiliateID, models.EarningKindPayout, prevMonthStart, monthStart)
	if err != nil {
		return nil, err
	}

	eventsProfited, err := s.earningRepo.CountEventsWithEarnings(ctx, affiliateID)
	if err != nil {
		return nil, err
	}

	return &dto.EarningsStatsResponse{
		TotalEarned: dto.StatPair{
			Current:       lifetimeCommission,
			ChangePercent: changePercent(thisMonth, lastMonth),
		},
		CurrentBalance: dto.StatPair{
			Current:       lifetimeCommission - lifetimePayout,
			ChangePercent: changePercent(thisMonth-thisMonthPayout, lastMonth-lastMonthPayout),
		},
		EventsProfited: eventsProfited,
	}, nil
}

func (s *AffiliateServiceImpl) EarningsChart(ctx context.Context, affiliateID uuid.UUID, months int) (*dto.EarningsChartResponse, error) {
	if months <= 0 {
		months = 6
	}

	buckets, err := s.earningRepo.MonthlyTotals(ctx, affiliateID, months)
	if err != nil {
		return nil, err
	}

	points := make([]dto.EarningsChartPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, dto.EarningsChartPoint{
			Month: b.Month.Format("2006-01"),
			Total: b.Total,
		})
	}

	return &dto.EarningsChartResponse{Points: points}, nil
}

func (s *AffiliateServiceImpl) PortfolioStats(ctx context.Context, affiliateID uuid.UUID) (*dto.PortfolioStatsResponse, error) {
	teams, err := s.teamRepo.ListByAffiliate(ctx, affiliateID, 0, -1)
	if err != nil {
		return nil, err
	}

	stats := &dto.PortfolioStatsResponse{TotalTeams: int64(len(teams))}
	if len(teams) == 0 {
		return stats, nil
	}

	teamIDs := make([]uuid.UUID, 0, len(teams))
	for _, team := range teams {
		teamIDs = append(teamIDs, team.ID)
	}

	stats.TotalEvents, err = s.eventRepo.CountByTeamIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	stats.ActiveEvents, err = s.eventRepo.CountActiveByTeamIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *AffiliateServiceImpl) ownedTeam(ctx context.Context, affiliateID, teamID uuid.UUID) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrTeamNotFound
		}
		return nil, err
	}

	// team ของ affiliate อื่นตอบเหมือนไม่มีอยู่
	if team.AffiliateID == nil || *team.AffiliateID != affiliateID {
		return nil, services.ErrTeamNotFound
	}

	return team, nil
}

func (s *AffiliateServiceImpl) toTeamResponses(ctx context.Context, teams []*models.Team) ([]*dto.TeamResponse, error) {
	var assetIDs []uuid.UUID
	for _, team := range teams {
		if team.Logo != nil {
			assetIDs = append(assetIDs, *team.Logo)
		}
		if team.Banner != nil {
			assetIDs = append(assetIDs, *team.Banner)
		}
	}

	urls, err := s.assetSvc.ResolveURLs(ctx, assetIDs, ports.DefaultSignExpiry)
	if err != nil {
		return nil, err
	}

	urlFor := func(id *uuid.UUID) *string {
		if id == nil {
			return nil
		}
		return urls[*id]
	}

	responses := make([]*dto.TeamResponse, 0, len(teams))
	for _, team := range teams {
		responses = append(responses, &dto.TeamResponse{
			ID:          team.ID,
			Name:        team.Name,
			Slug:        team.Slug,
			Description: team.Description,
			Logo:        urlFor(team.Logo),
			Banner:      urlFor(team.Banner),
			CreatedAt:   team.CreatedAt,
		})
	}

	return responses, nil
}

// changePercent เทียบค่าปัจจุบันกับช่วงก่อนเป็นเปอร์เซ็นต์
func changePercent(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}
