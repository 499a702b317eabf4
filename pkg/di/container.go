package di

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tix4u-backend/application/serviceimpl"
	"tix4u-backend/domain/ports"
	"tix4u-backend/domain/repositories"
	"tix4u-backend/domain/services"
	"tix4u-backend/infrastructure/email"
	natspkg "tix4u-backend/infrastructure/nats"
	"tix4u-backend/infrastructure/postgres"
	redispkg "tix4u-backend/infrastructure/redis"
	"tix4u-backend/infrastructure/sms"
	"tix4u-backend/infrastructure/storage"
	"tix4u-backend/interfaces/api/handlers"
	"tix4u-backend/pkg/cache"
	"tix4u-backend/pkg/config"
	"tix4u-backend/pkg/logger"
	"tix4u-backend/pkg/scheduler"
)

// staleAssetAge อายุขั้นต่ำของ asset ที่ยังไม่ confirm ก่อนถูกลบทิ้ง
const staleAssetAge = 24 * time.Hour

type Container struct {
	Config *config.Config

	// Infrastructure
	DB           *gorm.DB
	RedisClient  *redispkg.Client
	NATSClient   *natspkg.Client
	Publisher    *natspkg.Publisher
	Consumer     *natspkg.Consumer
	Storage      ports.ObjectStorage
	Cache        *cache.Cache
	JobScheduler scheduler.JobScheduler

	// Repositories
	AssetRepository       repositories.AssetRepository
	UserRepository        repositories.UserRepository
	TeamRepository        repositories.TeamRepository
	EventRepository       repositories.EventRepository
	ApplicationRepository repositories.AffiliateApplicationRepository
	EarningRepository     repositories.AffiliateEarningRepository

	// Services
	AssetService      services.AssetService
	UserService       services.UserService
	OnboardingService services.OnboardingService
	ProfileService    services.ProfileService
	AffiliateService  services.AffiliateService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	c.initRepositories()
	c.initServices()

	if err := c.initCleanupJob(); err != nil {
		return err
	}

	if err := c.initNotificationConsumer(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	if err := logger.Init(logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}); err != nil {
		return err
	}

	logger.Info("Logger initialized", "level", c.Config.Log.Level, "output", c.Config.Log.Output)
	return nil
}

func (c *Container) initInfrastructure() error {
	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	})
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	redisClient, err := redispkg.NewClient(&c.Config.Redis)
	if err != nil {
		return fmt.Errorf("redis client initialization failed: %w", err)
	}
	c.RedisClient = redisClient
	c.Cache = cache.New(redisClient)
	logger.Info("Redis client initialized", "url", c.Config.Redis.URL)

	natsClient, err := natspkg.NewClient(natspkg.ClientConfig{URL: c.Config.NATS.URL})
	if err != nil {
		// notification queue เป็น best-effort — API ต้องขึ้นได้แม้ NATS ล่ม
		logger.Warn("NATS client initialization failed, notifications disabled", "error", err)
	} else {
		c.NATSClient = natsClient
		c.Publisher = natspkg.NewPublisher(natsClient)
	}

	return c.initStorage()
}

// initStorage สร้าง storage adapter ตาม config
func (c *Container) initStorage() error {
	switch c.Config.Storage.Type {
	case "s3":
		s3, err := storage.NewS3Storage(storage.S3StorageConfig{
			Endpoint:  c.Config.Storage.S3.Endpoint,
			AccessKey: c.Config.Storage.S3.AccessKey,
			SecretKey: c.Config.Storage.S3.SecretKey,
			Bucket:    c.Config.Storage.S3.Bucket,
			UseSSL:    c.Config.Storage.S3.UseSSL,
			Region:    c.Config.Storage.S3.Region,
		})
		if err != nil {
			return err
		}
		c.Storage = s3
	default:
		local, err := storage.NewLocalStorage(storage.LocalStorageConfig{
			BasePath: c.Config.Storage.BasePath,
		})
		if err != nil {
			return err
		}
		c.Storage = local
	}

	logger.Info("Storage initialized", "provider", c.Storage.ProviderName())
	return nil
}

func (c *Container) initRepositories() {
	c.AssetRepository = postgres.NewAssetRepository(c.DB)
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TeamRepository = postgres.NewTeamRepository(c.DB)
	c.EventRepository = postgres.NewEventRepository(c.DB)
	c.ApplicationRepository = postgres.NewAffiliateApplicationRepository(c.DB)
	c.EarningRepository = postgres.NewAffiliateEarningRepository(c.DB)
}

func (c *Container) initServices() {
	c.AssetService = serviceimpl.NewAssetService(
		c.AssetRepository,
		c.Storage,
		c.Config.Storage.S3.Bucket,
		c.Config.App.BaseURL,
		c.Config.Storage.MaxUploadSize,
	)

	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.Config.JWT.Secret)

	c.OnboardingService = serviceimpl.NewOnboardingService(
		c.UserRepository,
		c.TeamRepository,
		c.EventRepository,
		c.ApplicationRepository,
		c.AssetService,
		c.RedisClient,
		c.Cache,
	)

	c.ProfileService = serviceimpl.NewProfileService(
		c.UserRepository,
		c.TeamRepository,
		c.EventRepository,
		c.AssetService,
		c.RedisClient,
		c.Cache,
	)

	c.AffiliateService = serviceimpl.NewAffiliateService(
		c.DB,
		c.ApplicationRepository,
		c.EarningRepository,
		c.TeamRepository,
		c.EventRepository,
		c.UserRepository,
		c.AssetService,
		c.notificationQueue(),
	)

	logger.Info("Services initialized")
}

// notificationQueue คืน publisher จริง หรือ no-op ถ้า NATS ใช้ไม่ได้
func (c *Container) notificationQueue() ports.NotificationQueue {
	if c.Publisher != nil {
		return c.Publisher
	}
	return noopQueue{}
}

type noopQueue struct{}

func (noopQueue) PublishEmail(ctx context.Context, msg ports.EmailMessage) error {
	logger.WarnContext(ctx, "Notification dropped, NATS unavailable", "type", "email", "to", msg.ToEmail)
	return nil
}

func (noopQueue) PublishSMS(ctx context.Context, msg ports.SMSMessage) error {
	logger.WarnContext(ctx, "Notification dropped, NATS unavailable", "type", "sms")
	return nil
}

func (c *Container) initCleanupJob() error {
	c.JobScheduler = scheduler.NewJobScheduler()

	err := c.JobScheduler.AddJob("stale-asset-cleanup", c.Config.Storage.CleanupCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		removed, err := c.AssetService.CleanupStale(ctx, staleAssetAge)
		if err != nil {
			logger.Error("Stale asset cleanup failed", "error", err)
			return
		}
		logger.Info("Stale asset cleanup finished", "removed", removed)
	})
	if err != nil {
		return err
	}

	c.JobScheduler.Start()
	return nil
}

func (c *Container) initNotificationConsumer() error {
	if c.NATSClient == nil {
		return nil
	}

	emailSender := email.NewSender(c.Config.Email)
	smsSender := sms.NewSender(c.Config.SMS)

	c.Consumer = natspkg.NewConsumer(c.NATSClient, emailSender, smsSender)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Consumer.Start(ctx); err != nil {
		return err
	}

	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetHandlerServices รวม service ที่ HTTP layer ต้องใช้
func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:       c.UserService,
		AssetService:      c.AssetService,
		OnboardingService: c.OnboardingService,
		ProfileService:    c.ProfileService,
		AffiliateService:  c.AffiliateService,
		JWTSecret:         c.Config.JWT.Secret,
	}
}

// Cleanup ปิด resource ตามลำดับย้อนกลับตอน shutdown
func (c *Container) Cleanup() {
	if c.JobScheduler != nil {
		c.JobScheduler.Stop()
	}

	if c.Consumer != nil {
		c.Consumer.Stop()
	}

	if c.NATSClient != nil {
		c.NATSClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}

	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	logger.Info("Container cleaned up")
}
