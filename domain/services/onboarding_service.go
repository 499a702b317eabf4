package services

import (
	"context"

	"github.com/google/uuid"

	"tix4u-backend/domain/dto"
)

// OnboardingService ขั้นตอนหลังสมัคร: เลือก role, สร้าง team/event แรก
type OnboardingService interface {
	// SetRole ตั้ง role ครั้งแรก — fail ถ้า user มี role อยู่แล้ว
	SetRole(ctx context.Context, userID uuid.UUID, role string) error
	// UpdateRole เปลี่ยน role ที่ตั้งไว้แล้ว
	UpdateRole(ctx context.Context, userID uuid.UUID, role string) error
	CreateTeam(ctx context.Context, userID uuid.UUID, req *dto.CreateTeamRequest) (uuid.UUID, error)
	// CreateEvent สร้าง event ใต้ team ที่ user เลือกอยู่
	CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (uuid.UUID, error)
	// VerifyAffiliate ตรวจว่า email นี้มีใบสมัคร affiliate ที่ approved แล้ว
	VerifyAffiliate(ctx context.Context, email string) (bool, error)
}
