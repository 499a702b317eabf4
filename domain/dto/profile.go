package dto

import "github.com/google/uuid"

// SelectedContext team/event ที่ user เลือกใช้งานอยู่ (เก็บใน KV)
type SelectedContext struct {
	TeamID  *uuid.UUID `json:"teamId"`
	EventID *uuid.UUID `json:"eventId"`
}

type ProfileEvent struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
	Logo  *string   `json:"logo"` // resolved URL
}

type ProfileTeam struct {
	ID     uuid.UUID      `json:"id"`
	Name   string         `json:"name"`
	Slug   string         `json:"slug"`
	Logo   *string        `json:"logo"` // resolved URL
	Events []ProfileEvent `json:"events"`
}

// AuthProfile โปรไฟล์เต็มที่ frontend ใช้หลัง login (cache ได้ 2 ชั่วโมง)
type AuthProfile struct {
	User     UserResponse     `json:"user"`
	Teams    []ProfileTeam    `json:"teams"`
	Selected *SelectedContext `json:"selected"`
}
