package models

import (
	"time"

	"github.com/google/uuid"
)

// Asset คือ metadata ของไฟล์หนึ่งไฟล์ใน object storage
// แยกจากตำแหน่งจริงของ bytes (pathname ชี้ไปที่ object ใน bucket)
type Asset struct {
	ID uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	// CreatorID เป็น null สำหรับ anonymous upload
	CreatorID    *uuid.UUID `gorm:"type:uuid;index"`
	Pathname     string     `gorm:"size:1000;uniqueIndex;not null"`
	OriginalName string     `gorm:"size:500;not null"`
	Bucket       string     `gorm:"size:100;not null"`
	ContentType  string     `gorm:"size:100;not null"`
	// Size เป็น numeric string และเป็น null ระหว่าง presign จนถึง confirm
	Size *string `gorm:"size:50"`
	// LinkedAt ถูก set เมื่อ asset ถูกผูกกับ entity อื่น (เช่น logo ของ team)
	// asset ที่ linked แล้วห้ามลบ
	LinkedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Asset) TableName() string {
	return "assets"
}

// Confirmed คือ upload เสร็จแล้ว (size ถูกบันทึก)
func (a *Asset) Confirmed() bool {
	return a.Size != nil
}

// Linked ถูกผูกกับ parent entity แล้ว
func (a *Asset) Linked() bool {
	return a.LinkedAt != nil
}
