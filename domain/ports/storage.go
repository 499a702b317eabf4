package ports

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrSigningUnavailable หมายถึง runtime ปัจจุบันออก presigned URL ไม่ได้
// (เช่น local storage ตอน dev) — ต่างจาก signing ที่ล้มเหลวจริงๆ
// caller ใช้แยกว่าควร fallback ไป direct upload
var ErrSigningUnavailable = errors.New("presigned urls are not supported by this storage provider")

// HTTP method ที่ sign ได้
type SignMethod string

const (
	SignMethodGet SignMethod = "GET"
	SignMethodPut SignMethod = "PUT"
)

// Permission ของ credential ที่ขอ
type SignPermission string

const (
	PermissionReadOnly  SignPermission = "object-read-only"
	PermissionReadWrite SignPermission = "object-read-write"
)

// DefaultSignExpiry อายุ default ของ presigned URL
const DefaultSignExpiry = time.Hour

type SignOptions struct {
	// ExpiresIn อายุของ URL (default 1 ชั่วโมง)
	ExpiresIn time.Duration
	// Permission scope ของ credential (default read-only)
	Permission SignPermission
}

// ObjectInfo metadata ของ object ใน storage
type ObjectInfo struct {
	Pathname    string
	Size        int64
	ContentType string
}

// ObjectStorage abstraction ของ object store (MinIO / R2 / local filesystem)
type ObjectStorage interface {
	// SignedURL สร้าง presigned URL scoped กับ pathname เดียวและ method เดียว
	// คืน ErrSigningUnavailable ถ้า provider ไม่รองรับการ sign
	SignedURL(ctx context.Context, pathname string, method SignMethod, opts SignOptions) (string, error)

	// Put เขียน object ฝั่ง server โดยตรง
	Put(ctx context.Context, pathname string, r io.Reader, size int64, contentType string) (ObjectInfo, error)

	// Head ตรวจว่า object มีอยู่และคืนขนาด คืน (nil, nil) ถ้าไม่มี
	Head(ctx context.Context, pathname string) (*ObjectInfo, error)

	// Get อ่าน object สำหรับ dev fallback serving
	Get(ctx context.Context, pathname string) (io.ReadCloser, string, error)

	// Delete ลบ object — idempotent: pathname ที่ไม่มีอยู่ไม่ถือเป็น error
	Delete(ctx context.Context, pathname string) error

	// ProviderName ชื่อ provider (s3, local)
	ProviderName() string
}
