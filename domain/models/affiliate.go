package models

import (
	"time"

	"github.com/google/uuid"
)

// สถานะใบสมัคร affiliate
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// AffiliateApplication ใบสมัครเข้าร่วม affiliate program (ยื่นก่อนมี account)
type AffiliateApplication struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string    `gorm:"size:200;not null"`
	Email       string    `gorm:"size:100;not null;index"`
	Phone       string    `gorm:"size:30;not null"`
	Reason      string    `gorm:"size:1000"`
	AcceptTerms bool      `gorm:"not null"`
	Status      string    `gorm:"size:20;not null;default:pending"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (AffiliateApplication) TableName() string {
	return "affiliate_applications"
}

// ประเภทรายการ earning
const (
	EarningKindCommission = "commission"
	EarningKindPayout     = "payout"
)

// AffiliateEarning รายการรายได้/การจ่ายเงินของ affiliate หนึ่งรายการ
type AffiliateEarning struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	AffiliateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventID     *uuid.UUID `gorm:"type:uuid;index"`
	// Amount เป็นหน่วยเงินหลัก (เช่น GHS) เก็บเป็น float64 เพราะเป็นสถิติ ไม่ใช่ ledger
	Amount     float64   `gorm:"not null"`
	Kind       string    `gorm:"size:20;not null"`
	OccurredAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
}

func (AffiliateEarning) TableName() string {
	return "affiliate_earnings"
}
