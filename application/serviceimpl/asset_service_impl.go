package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"tix4u-backend/domain/dto"
	"tix4u-backend/domain/models"
	"tix4u-backend/domain/ports"
	"tix4u-backend/domain/repositories"
	"tix4u-backend/domain/services"
	"tix4u-backend/pkg/logger"
	"tix4u-backend/pkg/utils"
)

// defaultPrefix ใช้เมื่อ client ไม่ส่ง prefix มา
const defaultPrefix = "uploads"

// จำนวน goroutine สูงสุดตอน sign URL พร้อมกันใน bulk resolution
const resolveConcurrency = 8

type AssetServiceImpl struct {
	assetRepo     repositories.AssetRepository
	storage       ports.ObjectStorage
	bucket        string
	baseURL       string
	maxUploadSize int64
}

func NewAssetService(assetRepo repositories.AssetRepository, storage ports.ObjectStorage, bucket, baseURL string, maxUploadSize int64) services.AssetService {
	return &AssetServiceImpl{
		assetRepo:     assetRepo,
		storage:       storage,
		bucket:        bucket,
		baseURL:       strings.TrimRight(baseURL, "/"),
		maxUploadSize: maxUploadSize,
	}
}

// media prefix ที่อนุญาตให้ upload
var allowedContentTypePrefixes = []string{"image/"}

func isAllowedContentType(contentType string) bool {
	for _, prefix := range allowedContentTypePrefixes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

func (s *AssetServiceImpl) Presign(ctx context.Context, creatorID uuid.UUID, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error) {
	if !isAllowedContentType(req.ContentType) {
		return nil, services.ErrInvalidContentType
	}

	prefix := defaultPrefix
	if req.Prefix != "" {
		cleaned, err := utils.SanitizePrefix(req.Prefix)
		if err != nil {
			return nil, fmt.Errorf("invalid prefix: %w", err)
		}
		prefix = cleaned
	}

	pathname := utils.BuildAssetPathname(prefix, req.Filename)

	// sign ก่อนสร้าง record — provider ที่ sign ไม่ได้จะไม่ทิ้ง orphan row ไว้
	uploadURL, err := s.storage.SignedURL(ctx, pathname, ports.SignMethodPut, ports.SignOptions{
		ExpiresIn:  ports.DefaultSignExpiry,
		Permission: ports.PermissionReadWrite,
	})
	if err != nil {
		if !errors.Is(err, ports.ErrSigningUnavailable) {
			logger.ErrorContext(ctx, "Failed to presign upload URL", "pathname", pathname, "error", err)
		}
		return nil, err
	}

	asset := &models.Asset{
		CreatorID:    &creatorID,
		Pathname:     pathname,
		OriginalName: utils.SanitizeFileName(req.Filename),
		Bucket:       s.bucket,
		ContentType:  req.ContentType,
		// Size ยัง null จนกว่า client จะ confirm
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		logger.ErrorContext(ctx, "Failed to create asset record", "pathname", pathname, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Asset presigned", "asset_id", asset.ID, "pathname", pathname)

	return &dto.PresignUploadResponse{
		AssetID:   asset.ID,
		UploadURL: uploadURL,
	}, nil
}

func (s *AssetServiceImpl) ConfirmUpload(ctx context.Context, userID, assetID uuid.UUID) (*dto.ConfirmUploadResponse, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrAssetNotFound
		}
		return nil, err
	}

	if asset.CreatorID != nil && *asset.CreatorID != userID {
		return nil, services.ErrNotOwner
	}

	info, err := s.storage.Head(ctx, asset.Pathname)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to head object", "pathname", asset.Pathname, "error", err)
		return nil, err
	}
	if info == nil {
		return nil, services.ErrUploadIncomplete
	}

	size := strconv.FormatInt(info.Size, 10)
	if err := s.assetRepo.UpdateSize(ctx, assetID, size); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Asset upload confirmed", "asset_id", assetID, "size", size)

	url := s.resolveURL(ctx, asset, ports.DefaultSignExpiry)
	return &dto.ConfirmUploadResponse{URL: url}, nil
}

func (s *AssetServiceImpl) UploadDirect(ctx context.Context, creatorID *uuid.UUID, fileHeader *multipart.FileHeader, prefix string) (*dto.DirectUploadResponse, error) {
	if fileHeader.Size > s.maxUploadSize {
		return nil, services.ErrFileTooLarge
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}
	if !isAllowedContentType(contentType) {
		return nil, services.ErrInvalidContentType
	}

	cleanPrefix := defaultPrefix
	if prefix != "" {
		cleaned, err := utils.SanitizePrefix(prefix)
		if err != nil {
			return nil, fmt.Errorf("invalid prefix: %w", err)
		}
		cleanPrefix = cleaned
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open uploaded file", "filename", fileHeader.Filename, "error", err)
		return nil, err
	}
	defer file.Close()

	pathname := utils.BuildAssetPathname(cleanPrefix, fileHeader.Filename)

	info, err := s.storage.Put(ctx, pathname, file, fileHeader.Size, contentType)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to store object", "pathname", pathname, "error", err)
		return nil, err
	}

	size := strconv.FormatInt(info.Size, 10)
	asset := &models.Asset{
		CreatorID:    creatorID,
		Pathname:     pathname,
		OriginalName: utils.SanitizeFileName(fileHeader.Filename),
		Bucket:       s.bucket,
		ContentType:  contentType,
		Size:         &size,
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		// record ไม่เกิด → เก็บ object ไว้ก็ไร้ประโยชน์
		_ = s.storage.Delete(ctx, pathname)
		return nil, err
	}

	logger.InfoContext(ctx, "Asset uploaded directly", "asset_id", asset.ID, "pathname", pathname, "size", size)

	return &dto.DirectUploadResponse{
		AssetID:     asset.ID,
		URL:         s.resolveURL(ctx, asset, ports.DefaultSignExpiry),
		ContentType: contentType,
		Size:        info.Size,
	}, nil
}

func (s *AssetServiceImpl) GetURL(ctx context.Context, assetID uuid.UUID, expiresIn time.Duration) (string, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	return s.resolveURL(ctx, asset, expiresIn), nil
}

func (s *AssetServiceImpl) ResolveURLs(ctx context.Context, assetIDs []uuid.UUID, expiresIn time.Duration) (map[uuid.UUID]*string, error) {
	result := make(map[uuid.UUID]*string, len(assetIDs))
	if len(assetIDs) == 0 {
		return result, nil
	}

	// id ซ้ำ query ครั้งเดียวพอ
	unique := make([]uuid.UUID, 0, len(assetIDs))
	seen := make(map[uuid.UUID]bool, len(assetIDs))
	for _, id := range assetIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	assets, err := s.assetRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}

	// id ที่ไม่มี record ได้ nil — ต้องมี entry ครบทุก id ที่ขอมา
	for _, id := range unique {
		result[id] = nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)

	for _, asset := range assets {
		asset := asset
		g.Go(func() error {
			url := s.resolveURL(gctx, asset, expiresIn)
			mu.Lock()
			result[asset.ID] = &url
			mu.Unlock()
			return nil
		})
	}

	// ไม่มี goroutine ไหนคืน error — sign ที่พังรายตัวกลายเป็น fallback URL แล้ว
	_ = g.Wait()

	return result, nil
}

func (s *AssetServiceImpl) Delete(ctx context.Context, userID, assetID uuid.UUID) error {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ErrAssetNotFound
		}
		return err
	}

	if asset.CreatorID == nil || *asset.CreatorID != userID {
		return services.ErrNotOwner
	}

	if asset.Linked() {
		return services.ErrAssetLinked
	}

	if err := s.storage.Delete(ctx, asset.Pathname); err != nil {
		logger.ErrorContext(ctx, "Failed to delete object", "pathname", asset.Pathname, "error", err)
		return err
	}

	if err := s.assetRepo.Delete(ctx, assetID); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Asset deleted", "asset_id", assetID, "pathname", asset.Pathname)
	return nil
}

func (s *AssetServiceImpl) Serve(ctx context.Context, assetID uuid.UUID) (io.ReadCloser, *models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, services.ErrAssetNotFound
		}
		return nil, nil, err
	}

	reader, contentType, err := s.storage.Get(ctx, asset.Pathname)
	if err != nil {
		return nil, nil, err
	}

	if asset.ContentType == "" {
		asset.ContentType = contentType
	}

	return reader, asset, nil
}

func (s *AssetServiceImpl) MarkLinked(ctx context.Context, assetIDs []uuid.UUID) error {
	if len(assetIDs) == 0 {
		return nil
	}
	return s.assetRepo.MarkLinked(ctx, assetIDs, time.Now())
}

func (s *AssetServiceImpl) CleanupStale(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	stale, err := s.assetRepo.ListStaleUnconfirmed(ctx, cutoff, 500)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, asset := range stale {
		if err := s.storage.Delete(ctx, asset.Pathname); err != nil {
			logger.WarnContext(ctx, "Failed to delete stale object", "pathname", asset.Pathname, "error", err)
			continue
		}
		if err := s.assetRepo.Delete(ctx, asset.ID); err != nil {
			logger.WarnContext(ctx, "Failed to delete stale asset record", "asset_id", asset.ID, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Info("Stale assets cleaned up", "removed", removed)
	}

	return removed, nil
}

// resolveURL สร้าง read URL ของ asset — presigned ถ้า provider sign ได้
// ไม่งั้น fallback เป็น server-side serving endpoint
func (s *AssetServiceImpl) resolveURL(ctx context.Context, asset *models.Asset, expiresIn time.Duration) string {
	url, err := s.storage.SignedURL(ctx, asset.Pathname, ports.SignMethodGet, ports.SignOptions{
		ExpiresIn:  expiresIn,
		Permission: ports.PermissionReadOnly,
	})
	if err != nil {
		if !errors.Is(err, ports.ErrSigningUnavailable) {
			logger.WarnContext(ctx, "Failed to sign read URL, using fallback", "pathname", asset.Pathname, "error", err)
		}
		return fmt.Sprintf("%s/api/v1/assets/%s", s.baseURL, asset.ID)
	}
	return url
}
