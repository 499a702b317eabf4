package serviceimpl

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tix4u-backend/domain/dto"
	"tix4u-backend/domain/models"
	"tix4u-backend/domain/ports"
	"tix4u-backend/domain/repositories"
	"tix4u-backend/domain/services"
	"tix4u-backend/pkg/cache"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	getCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Role = role
	return nil
}

type fakeTeamRepo struct {
	mu    sync.Mutex
	teams map[uuid.UUID]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[uuid.UUID]*models.Team{}}
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	team.CreatedAt = time.Now()
	copied := *team
	r.teams[team.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *fakeTeamRepo) GetBySlug(ctx context.Context, s string) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, team := range r.teams {
		if team.Slug == s {
			copied := *team
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *team
	r.teams[team.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Team
	for _, team := range r.teams {
		if team.OwnerID == userID || (team.AffiliateID != nil && *team.AffiliateID == userID) {
			copied := *team
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) ListByAffiliate(ctx context.Context, affiliateID uuid.UUID, offset, limit int) ([]*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Team
	for _, team := range r.teams {
		if team.AffiliateID != nil && *team.AffiliateID == affiliateID {
			copied := *team
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) CountByAffiliate(ctx context.Context, affiliateID uuid.UUID) (int64, error) {
	teams, _ := r.ListByAffiliate(ctx, affiliateID, 0, -1)
	return int64(len(teams)), nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[uuid.UUID]*models.Event{}}
}

func (r *fakeEventRepo) Create(ctx context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) GetBySlug(ctx context.Context, s string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, event := range r.events {
		if event.Slug == s {
			copied := *event
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEventRepo) ListByTeamIDs(ctx context.Context, teamIDs []uuid.UUID) ([]*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[uuid.UUID]bool{}
	for _, id := range teamIDs {
		want[id] = true
	}
	var out []*models.Event
	for _, event := range r.events {
		if want[event.TeamID] {
			copied := *event
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) CountByTeamIDs(ctx context.Context, teamIDs []uuid.UUID) (int64, error) {
	events, _ := r.ListByTeamIDs(ctx, teamIDs)
	return int64(len(events)), nil
}

func (r *fakeEventRepo) CountActiveByTeamIDs(ctx context.Context, teamIDs []uuid.UUID) (int64, error) {
	events, _ := r.ListByTeamIDs(ctx, teamIDs)
	var n int64
	for _, event := range events {
		if event.Status == models.EventStatusPublished {
			n++
		}
	}
	return n, nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps []*models.AffiliateApplication
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app *models.AffiliateApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	copied := *app
	r.apps = append(r.apps, &copied)
	return nil
}

func (r *fakeApplicationRepo) FindActiveByEmail(ctx context.Context, email string) (*models.AffiliateApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.Email == email && app.Status != models.ApplicationStatusRejected {
			copied := *app
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeApplicationRepo) FindApprovedByEmail(ctx context.Context, email string) (*models.AffiliateApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.Email == email && app.Status == models.ApplicationStatusApproved {
			copied := *app
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeQueue struct {
	mu     sync.Mutex
	emails []ports.EmailMessage
	sms    []ports.SMSMessage
	fail   bool
}

func (q *fakeQueue) PublishEmail(ctx context.Context, msg ports.EmailMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.fail {
		return assert.AnError
	}
	q.emails = append(q.emails, msg)
	return nil
}

func (q *fakeQueue) PublishSMS(ctx context.Context, msg ports.SMSMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.fail {
		return assert.AnError
	}
	q.sms = append(q.sms, msg)
	return nil
}

type fakeSelectedStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeSelectedStore() *fakeSelectedStore {
	return &fakeSelectedStore{data: map[string][]byte{}}
}

func (s *fakeSelectedStore) SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	return nil
}

func (s *fakeSelectedStore) GetJSON(ctx context.Context, key string, target any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, target)
}

type memoryCacheStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCacheStore() *memoryCacheStore {
	return &memoryCacheStore{data: map[string][]byte{}}
}

func (s *memoryCacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return data, nil
}

func (s *memoryCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memoryCacheStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *memoryCacheStore) DeletePrefix(ctx context.Context, prefix string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			delete(s.data, key)
			n++
		}
	}
	return n, nil
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)
var _ repositories.TeamRepository = (*fakeTeamRepo)(nil)
var _ repositories.EventRepository = (*fakeEventRepo)(nil)
var _ repositories.AffiliateApplicationRepository = (*fakeApplicationRepo)(nil)
var _ ports.NotificationQueue = (*fakeQueue)(nil)
var _ cache.Store = (*memoryCacheStore)(nil)

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, testJWTSecret)

	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Ama Mensah",
		Email:    "Ama@Example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ama@example.com", user.Email, "email is normalized to lowercase")
	assert.NotEqual(t, "supersecret1", user.Password, "password must be hashed")

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Someone Else",
		Email:    "ama@example.com",
		Password: "whatever123",
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	_, _, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "ama@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	token, loggedIn, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ama@example.com", Password: "supersecret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
}

func newTestOnboarding(users *fakeUserRepo, teams *fakeTeamRepo, events *fakeEventRepo, apps *fakeApplicationRepo, selected *fakeSelectedStore, c *cache.Cache) services.OnboardingService {
	assetSvc := newTestAssetService(newFakeAssetRepo(), newFakeStorage())
	return NewOnboardingService(users, teams, events, apps, assetSvc, selected, c)
}

func TestSetRoleOnlyOnce(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestOnboarding(users, newFakeTeamRepo(), newFakeEventRepo(), &fakeApplicationRepo{}, newFakeSelectedStore(), cache.New(newMemoryCacheStore()))

	user := &models.User{Name: "Kofi", Email: "kofi@example.com", Password: "x"}
	require.NoError(t, users.Create(context.Background(), user))

	require.NoError(t, svc.SetRole(context.Background(), user.ID, models.RoleOrganizer))

	err := svc.SetRole(context.Background(), user.ID, models.RoleAffiliate)
	assert.ErrorIs(t, err, services.ErrRoleAlreadySet)

	// UpdateRole เปลี่ยน role ที่ตั้งแล้วได้
	require.NoError(t, svc.UpdateRole(context.Background(), user.ID, models.RoleAffiliate))
	got, _ := users.GetByID(context.Background(), user.ID)
	assert.Equal(t, models.RoleAffiliate, got.Role)
}

func TestCreateTeamAndEventFlow(t *testing.T) {
	users := newFakeUserRepo()
	teams := newFakeTeamRepo()
	events := newFakeEventRepo()
	selected := newFakeSelectedStore()
	svc := newTestOnboarding(users, teams, events, &fakeApplicationRepo{}, selected, cache.New(newMemoryCacheStore()))

	user := &models.User{Name: "Kofi", Email: "kofi@example.com", Password: "x", Role: models.RoleOrganizer}
	require.NoError(t, users.Create(context.Background(), user))

	// ยังไม่เลือก team → สร้าง event ไม่ได้
	_, err := svc.CreateEvent(context.Background(), user.ID, &dto.CreateEventRequest{Title: "Show", Slug: "show"})
	assert.ErrorIs(t, err, services.ErrNoTeamSelected)

	teamID, err := svc.CreateTeam(context.Background(), user.ID, &dto.CreateTeamRequest{Name: "Accra Live", Slug: "Accra Live!"})
	require.NoError(t, err)

	team, err := teams.GetByID(context.Background(), teamID)
	require.NoError(t, err)
	assert.Equal(t, "accra-live", team.Slug, "slug is normalized")

	// slug ซ้ำ
	_, err = svc.CreateTeam(context.Background(), user.ID, &dto.CreateTeamRequest{Name: "Other", Slug: "accra-live"})
	assert.ErrorIs(t, err, services.ErrSlugTaken)

	// team ใหม่กลายเป็น selected อัตโนมัติ ทำให้สร้าง event ได้เลย
	eventID, err := svc.CreateEvent(context.Background(), user.ID, &dto.CreateEventRequest{Title: "Show", Slug: "show"})
	require.NoError(t, err)

	event, err := events.GetByID(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, teamID, event.TeamID)
	assert.Equal(t, models.EventStatusDraft, event.Status)

	var sel dto.SelectedContext
	found, err := selected.GetJSON(context.Background(), selectedKey(user.ID), &sel)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, teamID, *sel.TeamID)
	assert.Equal(t, eventID, *sel.EventID)
}

func TestVerifyAffiliate(t *testing.T) {
	apps := &fakeApplicationRepo{}
	svc := newTestOnboarding(newFakeUserRepo(), newFakeTeamRepo(), newFakeEventRepo(), apps, newFakeSelectedStore(), cache.New(newMemoryCacheStore()))

	ok, err := svc.VerifyAffiliate(context.Background(), "abena@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, apps.Create(context.Background(), &models.AffiliateApplication{
		Name: "Abena", Email: "abena@example.com", Phone: "+233200000000",
		Status: models.ApplicationStatusApproved,
	}))

	ok, err = svc.VerifyAffiliate(context.Background(), "Abena@Example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProfileMeIsCached(t *testing.T) {
	users := newFakeUserRepo()
	teams := newFakeTeamRepo()
	events := newFakeEventRepo()
	assetSvc := newTestAssetService(newFakeAssetRepo(), newFakeStorage())
	svc := NewProfileService(users, teams, events, assetSvc, newFakeSelectedStore(), cache.New(newMemoryCacheStore()))

	user := &models.User{Name: "Kofi", Email: "kofi@example.com", Password: "x", Role: models.RoleOrganizer}
	require.NoError(t, users.Create(context.Background(), user))
	require.NoError(t, teams.Create(context.Background(), &models.Team{OwnerID: user.ID, Name: "Accra Live", Slug: "accra-live"}))

	profile, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "kofi@example.com", profile.User.Email)
	require.Len(t, profile.Teams, 1)
	assert.Equal(t, "accra-live", profile.Teams[0].Slug)

	callsAfterFirst := users.getCalls

	profile2, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.User.ID, profile2.User.ID)
	assert.Equal(t, callsAfterFirst, users.getCalls, "second call must come from cache")

	// หลัง invalidate ต้อง build ใหม่
	require.NoError(t, svc.InvalidateProfile(context.Background(), user.ID))
	_, err = svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Greater(t, users.getCalls, callsAfterFirst)
}

func TestSwitchEventRequiresMembership(t *testing.T) {
	users := newFakeUserRepo()
	teams := newFakeTeamRepo()
	events := newFakeEventRepo()
	assetSvc := newTestAssetService(newFakeAssetRepo(), newFakeStorage())
	selected := newFakeSelectedStore()
	svc := NewProfileService(users, teams, events, assetSvc, selected, cache.New(newMemoryCacheStore()))

	owner := &models.User{Name: "Owner", Email: "owner@example.com", Password: "x"}
	require.NoError(t, users.Create(context.Background(), owner))
	team := &models.Team{OwnerID: owner.ID, Name: "T", Slug: "t"}
	require.NoError(t, teams.Create(context.Background(), team))
	event := &models.Event{TeamID: team.ID, CreatorID: owner.ID, Title: "E", Slug: "e", Status: models.EventStatusDraft}
	require.NoError(t, events.Create(context.Background(), event))

	err := svc.SwitchEvent(context.Background(), uuid.New(), event.ID)
	assert.ErrorIs(t, err, services.ErrNotTeamMember)

	err = svc.SwitchEvent(context.Background(), owner.ID, uuid.New())
	assert.ErrorIs(t, err, services.ErrEventNotFound)

	require.NoError(t, svc.SwitchEvent(context.Background(), owner.ID, event.ID))

	var sel dto.SelectedContext
	found, _ := selected.GetJSON(context.Background(), selectedKey(owner.ID), &sel)
	require.True(t, found)
	assert.Equal(t, team.ID, *sel.TeamID)
	assert.Equal(t, event.ID, *sel.EventID)
}

func newTestAffiliateService(apps *fakeApplicationRepo, queue *fakeQueue, teams *fakeTeamRepo, events *fakeEventRepo) services.AffiliateService {
	assetSvc := newTestAssetService(newFakeAssetRepo(), newFakeStorage())
	return NewAffiliateService(nil, apps, &fakeEarningRepo{}, teams, events, newFakeUserRepo(), assetSvc, queue)
}

func TestAffiliateApply(t *testing.T) {
	apps := &fakeApplicationRepo{}
	queue := &fakeQueue{}
	svc := newTestAffiliateService(apps, queue, newFakeTeamRepo(), newFakeEventRepo())

	req := &dto.ApplyRequest{
		Name:        "Abena",
		Email:       "Abena@Example.com",
		Phone:       "+233200000000",
		AcceptTerms: true,
	}
	require.NoError(t, svc.Apply(context.Background(), req))

	require.Len(t, apps.apps, 1)
	assert.Equal(t, "abena@example.com", apps.apps[0].Email)
	assert.Equal(t, models.ApplicationStatusPending, apps.apps[0].Status)

	require.Len(t, queue.emails, 1)
	assert.Equal(t, ports.TemplateAffiliateApplicationAck, queue.emails[0].TemplateID)
	require.Len(t, queue.sms, 1)
	assert.Equal(t, []string{"+233200000000"}, queue.sms[0].Recipients)

	// ใบสมัคร active ซ้ำ
	err := svc.Apply(context.Background(), req)
	assert.ErrorIs(t, err, services.ErrApplicationExists)
}

func TestAffiliateApplySurvivesQueueFailure(t *testing.T) {
	apps := &fakeApplicationRepo{}
	queue := &fakeQueue{fail: true}
	svc := newTestAffiliateService(apps, queue, newFakeTeamRepo(), newFakeEventRepo())

	err := svc.Apply(context.Background(), &dto.ApplyRequest{
		Name:        "Abena",
		Email:       "abena@example.com",
		Phone:       "+233200000000",
		AcceptTerms: true,
	})
	assert.NoError(t, err, "queue failure must not fail the application")
	assert.Len(t, apps.apps, 1)
}

type fakeEarningRepo struct {
	sums    map[string]float64
	buckets []repositories.EarningsBucket
	events  int64
}

func (r *fakeEarningRepo) Create(ctx context.Context, earning *models.AffiliateEarning) error {
	return nil
}

func (r *fakeEarningRepo) SumByKind(ctx context.Context, affiliateID uuid.UUID, kind string, from, to time.Time) (float64, error) {
	return r.sums[kind], nil
}

func (r *fakeEarningRepo) MonthlyTotals(ctx context.Context, affiliateID uuid.UUID, months int) ([]repositories.EarningsBucket, error) {
	return r.buckets, nil
}

func (r *fakeEarningRepo) CountEventsWithEarnings(ctx context.Context, affiliateID uuid.UUID) (int64, error) {
	return r.events, nil
}

var _ repositories.AffiliateEarningRepository = (*fakeEarningRepo)(nil)

func TestEarningsChartFormatsMonths(t *testing.T) {
	earnings := &fakeEarningRepo{
		buckets: []repositories.EarningsBucket{
			{Month: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Total: 120.5},
			{Month: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), Total: 80},
		},
	}
	assetSvc := newTestAssetService(newFakeAssetRepo(), newFakeStorage())
	svc := NewAffiliateService(nil, &fakeApplicationRepo{}, earnings, newFakeTeamRepo(), newFakeEventRepo(), newFakeUserRepo(), assetSvc, &fakeQueue{})

	chart, err := svc.EarningsChart(context.Background(), uuid.New(), 6)
	require.NoError(t, err)
	require.Len(t, chart.Points, 2)
	assert.Equal(t, "2026-06", chart.Points[0].Month)
	assert.Equal(t, 120.5, chart.Points[0].Total)
}

func TestPortfolioStats(t *testing.T) {
	teams := newFakeTeamRepo()
	events := newFakeEventRepo()
	affiliateID := uuid.New()

	team := &models.Team{OwnerID: uuid.New(), AffiliateID: &affiliateID, Name: "T", Slug: "t"}
	require.NoError(t, teams.Create(context.Background(), team))
	require.NoError(t, events.Create(context.Background(), &models.Event{TeamID: team.ID, CreatorID: uuid.New(), Title: "A", Slug: "a", Status: models.EventStatusPublished}))
	require.NoError(t, events.Create(context.Background(), &models.Event{TeamID: team.ID, CreatorID: uuid.New(), Title: "B", Slug: "b", Status: models.EventStatusDraft}))

	svc := newTestAffiliateService(&fakeApplicationRepo{}, &fakeQueue{}, teams, events)

	stats, err := svc.PortfolioStats(context.Background(), affiliateID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalTeams)
	assert.Equal(t, int64(2), stats.TotalEvents)
	assert.Equal(t, int64(1), stats.ActiveEvents)
}

func TestChangePercent(t *testing.T) {
	assert.Equal(t, float64(0), changePercent(0, 0))
	assert.Equal(t, float64(100), changePercent(50, 0))
	assert.Equal(t, float64(-50), changePercent(50, 100))
	assert.Equal(t, float64(25), changePercent(125, 100))
}
