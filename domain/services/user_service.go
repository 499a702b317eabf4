package services

import (
	"context"

	"github.com/google/uuid"

	"tix4u-backend/domain/dto"
	"tix4u-backend/domain/models"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	// Login คืน JWT token กับ user เมื่อ credential ถูกต้อง
	Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}
