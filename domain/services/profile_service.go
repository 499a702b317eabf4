package services

import (
	"context"

	"github.com/google/uuid"

	"tix4u-backend/domain/dto"
)

type ProfileService interface {
	// Me ประกอบโปรไฟล์เต็ม (user + teams + events + selected + asset URLs)
	// ผลถูก cache 2 ชั่วโมงต่อ user
	Me(ctx context.Context, userID uuid.UUID) (*dto.AuthProfile, error)
	// SwitchEvent เปลี่ยน event ที่เลือกอยู่ (และ team ของมัน)
	SwitchEvent(ctx context.Context, userID, eventID uuid.UUID) error
	// InvalidateProfile ลบ cache โปรไฟล์ของ user (เรียกหลัง mutation)
	InvalidateProfile(ctx context.Context, userID uuid.UUID) error
}
