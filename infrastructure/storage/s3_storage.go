package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"tix4u-backend/domain/ports"
	"tix4u-backend/pkg/logger"
)

// S3Storage implements ObjectStorage สำหรับ S3-Compatible Storage (MinIO / Cloudflare R2)
type S3Storage struct {
	client *minio.Client
	bucket string
}

type S3StorageConfig struct {
	Endpoint  string // minio:9000 หรือ xxx.r2.cloudflarestorage.com
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

// NewS3Storage สร้าง S3Storage instance และตรวจว่า bucket พร้อมใช้
func NewS3Storage(config S3StorageConfig) (ports.ObjectStorage, error) {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 50,
		MaxConnsPerHost:     100,
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure:    config.UseSSL,
		Region:    config.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, config.Bucket, minio.MakeBucketOptions{Region: config.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("S3 bucket created", "bucket", config.Bucket)
	}

	logger.Info("S3 storage initialized",
		"endpoint", config.Endpoint,
		"bucket", config.Bucket,
		"ssl", config.UseSSL,
	)

	return &S3Storage{
		client: client,
		bucket: config.Bucket,
	}, nil
}

// SignedURL สร้าง presigned URL scoped กับ pathname เดียว
// GET ใช้ read-only credential, PUT ใช้ read-write ตาม opts.Permission
func (s *S3Storage) SignedURL(ctx context.Context, pathname string, method ports.SignMethod, opts ports.SignOptions) (string, error) {
	pathname = normalizePath(pathname)

	expiry := opts.ExpiresIn
	if expiry <= 0 {
		expiry = ports.DefaultSignExpiry
	}

	switch method {
	case ports.SignMethodGet:
		u, err := s.client.PresignedGetObject(ctx, s.bucket, pathname, expiry, nil)
		if err != nil {
			return "", fmt.Errorf("failed to presign GET for %s: %w", pathname, err)
		}
		return u.String(), nil
	case ports.SignMethodPut:
		u, err := s.client.PresignedPutObject(ctx, s.bucket, pathname, expiry)
		if err != nil {
			return "", fmt.Errorf("failed to presign PUT for %s: %w", pathname, err)
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("unsupported sign method: %s", method)
	}
}

// Put เขียน object ฝั่ง server โดยตรง
func (s *S3Storage) Put(ctx context.Context, pathname string, r io.Reader, size int64, contentType string) (ports.ObjectInfo, error) {
	pathname = normalizePath(pathname)

	info, err := s.client.PutObject(ctx, s.bucket, pathname, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return ports.ObjectInfo{}, fmt.Errorf("failed to upload object: %w", err)
	}

	logger.Debug("Object uploaded to S3", "pathname", pathname, "size", info.Size)

	return ports.ObjectInfo{
		Pathname:    pathname,
		Size:        info.Size,
		ContentType: contentType,
	}, nil
}

// Head ตรวจว่า object มีอยู่ คืน (nil, nil) ถ้าไม่มี
func (s *S3Storage) Head(ctx context.Context, pathname string) (*ports.ObjectInfo, error) {
	pathname = normalizePath(pathname)

	stat, err := s.client.StatObject(ctx, s.bucket, pathname, minio.StatObjectOptions{})
	if err != nil {
		var errResp minio.ErrorResponse
		if errors.As(err, &errResp) && errResp.Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	return &ports.ObjectInfo{
		Pathname:    pathname,
		Size:        stat.Size,
		ContentType: stat.ContentType,
	}, nil
}

// Get อ่าน object สำหรับ dev fallback serving
func (s *S3Storage) Get(ctx context.Context, pathname string) (io.ReadCloser, string, error) {
	pathname = normalizePath(pathname)

	obj, err := s.client.GetObject(ctx, s.bucket, pathname, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get object: %w", err)
	}

	// Stat เพื่อบังคับให้ error ออกตอนนี้ ไม่ใช่ตอน Read แรก
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, "", fmt.Errorf("failed to stat object: %w", err)
	}

	return obj, stat.ContentType, nil
}

// Delete ลบ object — S3 RemoveObject ไม่ error กับ key ที่ไม่มีอยู่ จึง idempotent
func (s *S3Storage) Delete(ctx context.Context, pathname string) error {
	pathname = normalizePath(pathname)

	err := s.client.RemoveObject(ctx, s.bucket, pathname, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	logger.Debug("Object deleted from S3", "pathname", pathname)
	return nil
}

func (s *S3Storage) ProviderName() string {
	return "s3"
}

func normalizePath(pathname string) string {
	pathname = strings.TrimPrefix(pathname, "/")
	return strings.ReplaceAll(pathname, "\\", "/")
}
