package dto

import "github.com/google/uuid"

// PresignUploadRequest body ของ POST /assets/presign
type PresignUploadRequest struct {
	Filename    string `json:"filename" validate:"required,min=1,max=500"`
	ContentType string `json:"contentType" validate:"required,min=1,max=100"`
	Prefix      string `json:"prefix" validate:"omitempty,max=200"`
}

type PresignUploadResponse struct {
	AssetID   uuid.UUID `json:"assetId"`
	UploadURL string    `json:"uploadUrl"`
}

// ConfirmUploadRequest body ของ POST /assets/confirm
type ConfirmUploadRequest struct {
	AssetID uuid.UUID `json:"assetId" validate:"required"`
}

type ConfirmUploadResponse struct {
	URL string `json:"url"`
}

// DirectUploadResponse ผลของ POST /assets/upload (server-side fallback)
type DirectUploadResponse struct {
	AssetID     uuid.UUID `json:"assetId"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
}

// AssetURLRequest body ของ POST /assets/url — ส่ง assetId เดียวหรือ assetIds หลายตัว
type AssetURLRequest struct {
	AssetID  *uuid.UUID  `json:"assetId"`
	AssetIDs []uuid.UUID `json:"assetIds"`
}

type AssetURLResponse struct {
	URL string `json:"url"`
}

// BulkAssetURLResponse map จาก asset id → URL (null ถ้าไม่พบ record)
type BulkAssetURLResponse struct {
	URLs map[string]*string `json:"urls"`
}
