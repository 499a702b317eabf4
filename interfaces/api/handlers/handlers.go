package handlers

import (
	"tix4u-backend/domain/services"
)

// Services รวม dependency ทั้งหมดที่ handlers ต้องใช้
type Services struct {
	UserService       services.UserService
	AssetService      services.AssetService
	OnboardingService services.OnboardingService
	ProfileService    services.ProfileService
	AffiliateService  services.AffiliateService
	JWTSecret         string
}

// Handlers รวม HTTP handlers ทั้งหมด
type Handlers struct {
	AuthHandler       *AuthHandler
	AssetHandler      *AssetHandler
	OnboardingHandler *OnboardingHandler
	ProfileHandler    *ProfileHandler
	AffiliateHandler  *AffiliateHandler
}

func NewHandlers(s *Services) *Handlers {
	return &Handlers{
		AuthHandler:       NewAuthHandler(s.UserService, s.JWTSecret),
		AssetHandler:      NewAssetHandler(s.AssetService),
		OnboardingHandler: NewOnboardingHandler(s.OnboardingService),
		ProfileHandler:    NewProfileHandler(s.ProfileService),
		AffiliateHandler:  NewAffiliateHandler(s.AffiliateService),
	}
}
