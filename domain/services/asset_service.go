package services

import (
	"context"
	"io"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"tix4u-backend/domain/dto"
	"tix4u-backend/domain/models"
)

// AssetService จัดการ lifecycle ของ asset:
// presign → client PUT → confirm, direct upload fallback, bulk URL resolution
type AssetService interface {
	// Presign สร้าง asset record (size ยังไม่รู้) และ presigned PUT URL
	// คืน ports.ErrSigningUnavailable ผ่านมาเมื่อ storage sign ไม่ได้
	// เพื่อให้ client fallback ไป UploadDirect
	Presign(ctx context.Context, creatorID uuid.UUID, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error)

	// ConfirmUpload ตรวจว่า bytes ขึ้น storage แล้ว บันทึก size และคืน read URL
	ConfirmUpload(ctx context.Context, userID, assetID uuid.UUID) (*dto.ConfirmUploadResponse, error)

	// UploadDirect เขียนไฟล์ผ่าน server (สำหรับ env ที่ presign ใช้ไม่ได้)
	UploadDirect(ctx context.Context, creatorID *uuid.UUID, file *multipart.FileHeader, prefix string) (*dto.DirectUploadResponse, error)

	// GetURL คืน presigned read URL ของ asset เดียว หรือ fallback path
	// คืน "" ถ้าไม่พบ asset
	GetURL(ctx context.Context, assetID uuid.UUID, expiresIn time.Duration) (string, error)

	// ResolveURLs แปลง set ของ asset id เป็น URL ด้วย metadata query เดียว
	// id ที่ไม่พบ record ได้ nil; การ sign ที่พังรายตัวได้ fallback URL แทน
	// ไม่ทำให้ทั้ง batch ล้ม
	ResolveURLs(ctx context.Context, assetIDs []uuid.UUID, expiresIn time.Duration) (map[uuid.UUID]*string, error)

	// Delete ลบทั้ง object และ record — เฉพาะ creator เท่านั้น
	Delete(ctx context.Context, userID, assetID uuid.UUID) error

	// Serve อ่าน bytes สำหรับ dev fallback endpoint
	Serve(ctx context.Context, assetID uuid.UUID) (io.ReadCloser, *models.Asset, error)

	// MarkLinked ผูก asset กับ parent entity (set linkedAt)
	MarkLinked(ctx context.Context, assetIDs []uuid.UUID) error

	// CleanupStale ลบ asset ที่ presign ไว้แต่ไม่เคย confirm และเก่ากว่า olderThan
	CleanupStale(ctx context.Context, olderThan time.Duration) (int, error)
}
