package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	NATS     NATSConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	Storage  StorageConfig
	Email    EmailConfig
	SMS      SMSConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
	// BaseURL ใช้สร้าง fallback URL ของ asset (เช่น http://localhost:8080)
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NATSConfig สำหรับ notification queues (email/sms)
type NATSConfig struct {
	URL string // nats://localhost:4222
}

// RedisConfig สำหรับ response cache และ selected team/event KV
type RedisConfig struct {
	URL      string // redis://localhost:6379
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int
	MaxAge     int // วัน
	Compress   bool
}

type StorageConfig struct {
	Type          string // local, s3
	BasePath      string // สำหรับ local: ./uploads
	MaxUploadSize int64  // ขนาดไฟล์สูงสุดสำหรับ direct upload (bytes)
	// CleanupCron ตารางลบ asset ที่ค้าง confirm (default ตี 3 ทุกวัน)
	CleanupCron string
	S3          S3Config
}

type S3Config struct {
	Endpoint  string // minio:9000 หรือ xxx.r2.cloudflarestorage.com
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool // false สำหรับ MinIO local, true สำหรับ R2
	Region    string
}

// EmailConfig สำหรับ templated email provider (HTTP API)
type EmailConfig struct {
	APIKey    string
	BaseURL   string
	FromEmail string
	FromName  string
}

// SMSConfig สำหรับ SMS provider (HTTP API)
type SMSConfig struct {
	APIKey   string
	BaseURL  string
	SenderID string
}

func LoadConfig() (*Config, error) {
	// ไม่ error ถ้าไม่มี .env file (ใช้ environment variables แทน)
	_ = godotenv.Load()

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	maxUploadSize, _ := strconv.ParseInt(getEnv("STORAGE_MAX_UPLOAD_SIZE", "4194304"), 10, 64) // 4MB default
	s3UseSSL := getEnv("S3_USE_SSL", "false") == "true"
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	config := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "Tix4u API"),
			Port:    getEnv("APP_PORT", "8080"),
			Env:     getEnv("APP_ENV", "development"),
			BaseURL: getEnv("APP_BASE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "tix4u"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "both"),
			FilePath:   getEnv("LOG_FILE_PATH", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
		Storage: StorageConfig{
			Type:          getEnv("STORAGE_TYPE", "local"),
			BasePath:      getEnv("STORAGE_BASE_PATH", "./uploads"),
			MaxUploadSize: maxUploadSize,
			CleanupCron:   getEnv("STORAGE_CLEANUP_CRON", "0 3 * * *"),
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", ""),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
				Bucket:    getEnv("S3_BUCKET", "tix4u-assets"),
				UseSSL:    s3UseSSL,
				Region:    getEnv("S3_REGION", "auto"),
			},
		},
		Email: EmailConfig{
			APIKey:    getEnv("MAILEROO_API_KEY", ""),
			BaseURL:   getEnv("MAILEROO_BASE_URL", "https://smtp.maileroo.com/api/v2"),
			FromEmail: getEnv("MAILEROO_FROM_EMAIL", "no-reply@tix4u.app"),
			FromName:  getEnv("MAILEROO_FROM_NAME", "Tix4u"),
		},
		SMS: SMSConfig{
			APIKey:   getEnv("ARKESEL_API_KEY", ""),
			BaseURL:  getEnv("ARKESEL_BASE_URL", "https://sms.arkesel.com"),
			SenderID: getEnv("ARKESEL_SENDER_ID", "Tix4u"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
