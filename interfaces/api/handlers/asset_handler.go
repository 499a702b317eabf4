package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tix4u-backend/domain/dto"
	"tix4u-backend/domain/ports"
	"tix4u-backend/domain/services"
	"tix4u-backend/pkg/utils"
)

type AssetHandler struct {
	assetService services.AssetService
}

func NewAssetHandler(assetService services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// Presign สร้าง asset record กับ presigned PUT URL
// POST /api/v1/assets/presign
func (h *AssetHandler) Presign(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.PresignUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	resp, err := h.assetService.Presign(c.UserContext(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrSigningUnavailable):
			// client ควร fallback ไป POST /assets/upload
			return utils.BadRequestResponse(c, "Presigned uploads are not available, use direct upload")
		case errors.Is(err, services.ErrInvalidContentType):
			return utils.BadRequestResponse(c, "Content type is not allowed")
		case errors.Is(err, utils.ErrUnsafePath), errors.Is(err, utils.ErrEmptyPath):
			return utils.BadRequestResponse(c, "Invalid prefix")
		default:
			return utils.InternalServerErrorResponse(c)
		}
	}

	return utils.CreatedResponse(c, resp)
}

// Confirm ยืนยันว่า client PUT bytes เสร็จแล้ว
// POST /api/v1/assets/confirm
func (h *AssetHandler) Confirm(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.ConfirmUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	resp, err := h.assetService.ConfirmUpload(c.UserContext(), user.ID, req.AssetID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssetNotFound):
			return utils.NotFoundResponse(c, "Asset not found")
		case errors.Is(err, services.ErrNotOwner):
			return utils.ForbiddenResponse(c, "Asset belongs to another user")
		case errors.Is(err, services.ErrUploadIncomplete):
			return utils.BadRequestResponse(c, "Object has not been uploaded yet")
		default:
			return utils.InternalServerErrorResponse(c)
		}
	}

	return utils.SuccessResponse(c, resp)
}

// Upload รับไฟล์ผ่าน server โดยตรง (fallback เมื่อ presign ใช้ไม่ได้)
// POST /api/v1/assets/upload
func (h *AssetHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequestResponse(c, "Missing file")
	}

	var creatorID *uuid.UUID
	if user, err := utils.GetUserFromContext(c); err == nil {
		creatorID = &user.ID
	}

	resp, err := h.assetService.UploadDirect(c.UserContext(), creatorID, fileHeader, c.FormValue("prefix"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileTooLarge):
			return utils.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, utils.ErrCodeBadRequest, "File exceeds maximum upload size", nil)
		case errors.Is(err, services.ErrInvalidContentType):
			return utils.BadRequestResponse(c, "Content type is not allowed")
		case errors.Is(err, utils.ErrUnsafePath), errors.Is(err, utils.ErrEmptyPath):
			return utils.BadRequestResponse(c, "Invalid prefix")
		default:
			return utils.InternalServerErrorResponse(c)
		}
	}

	return utils.CreatedResponse(c, resp)
}

// maxSignExpiry เพดานของ expiresIn ที่ client ขอได้
const maxSignExpiry = 24 * time.Hour

// ResolveURL คืน read URL ของ asset เดียวหรือหลายตัวใน request เดียว
// POST /api/v1/assets/url?expiresIn=3600
func (h *AssetHandler) ResolveURL(c *fiber.Ctx) error {
	var req dto.AssetURLRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if req.AssetID == nil && len(req.AssetIDs) == 0 {
		return utils.BadRequestResponse(c, "assetId or assetIds is required")
	}

	expiry := ports.DefaultSignExpiry
	if v := c.QueryInt("expiresIn"); v > 0 {
		expiry = time.Duration(v) * time.Second
		if expiry > maxSignExpiry {
			expiry = maxSignExpiry
		}
	}

	// single id ตอบ url เดียว
	if req.AssetID != nil {
		url, err := h.assetService.GetURL(c.UserContext(), *req.AssetID, expiry)
		if err != nil {
			return utils.InternalServerErrorResponse(c)
		}
		if url == "" {
			return utils.NotFoundResponse(c, "Asset not found")
		}
		return utils.SuccessResponse(c, dto.AssetURLResponse{URL: url})
	}

	urls, err := h.assetService.ResolveURLs(c.UserContext(), req.AssetIDs, expiry)
	if err != nil {
		return utils.InternalServerErrorResponse(c)
	}

	resp := dto.BulkAssetURLResponse{URLs: make(map[string]*string, len(urls))}
	for id, url := range urls {
		resp.URLs[id.String()] = url
	}

	return utils.SuccessResponse(c, resp)
}

// Serve ส่ง bytes ของ asset ตรงจาก storage (fallback URL ชี้มาที่นี่)
// GET /api/v1/assets/:id
func (h *AssetHandler) Serve(c *fiber.Ctx) error {
	assetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid asset id")
	}

	reader, asset, err := h.assetService.Serve(c.UserContext(), assetID)
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			return utils.NotFoundResponse(c, "Asset not found")
		}
		return utils.InternalServerErrorResponse(c)
	}

	// กัน HTML/SVG ที่ upload มา execute script ใน origin ของเรา
	c.Set("Content-Security-Policy", "default-src 'none'")
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("Content-Type", asset.ContentType)
	c.Set("Cache-Control", "private, max-age=3600")

	return c.SendStream(reader)
}

// Delete ลบ asset ของตัวเองที่ยังไม่ถูก link
// DELETE /api/v1/assets/:id
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "User not authenticated")
	}

	assetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid asset id")
	}

	if err := h.assetService.Delete(c.UserContext(), user.ID, assetID); err != nil {
		switch {
		case errors.Is(err, services.ErrAssetNotFound):
			return utils.NotFoundResponse(c, "Asset not found")
		case errors.Is(err, services.ErrNotOwner):
			return utils.ForbiddenResponse(c, "Asset belongs to another user")
		case errors.Is(err, services.ErrAssetLinked):
			return utils.ConflictResponse(c, "Asset is linked to another record")
		default:
			return utils.InternalServerErrorResponse(c)
		}
	}

	return utils.NoContentResponse(c)
}
