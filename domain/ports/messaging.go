package ports

import "context"

// EmailMessage payload ของ templated email หนึ่งฉบับ
type EmailMessage struct {
	ToName     string         `json:"toName"`
	ToEmail    string         `json:"toEmail"`
	Subject    string         `json:"subject"`
	TemplateID string         `json:"templateId"`
	Data       map[string]any `json:"data,omitempty"`
}

// SMSMessage payload ของ SMS หนึ่งชุด
type SMSMessage struct {
	Recipients []string `json:"recipients"`
	Message    string   `json:"message"`
}

// Email template ids
const (
	TemplateAffiliateApplicationAck = "affiliate-application-acknowledgement"
	TemplateTeamOwnerWelcome        = "team-owner-welcome"
)

// NotificationQueue ส่ง email/sms แบบ async ผ่าน message queue
// การส่งเป็น fire-and-forget จากมุมมองของ business operation:
// caller ต้องไม่ fail เพราะ queue ล่ม
type NotificationQueue interface {
	PublishEmail(ctx context.Context, msg EmailMessage) error
	PublishSMS(ctx context.Context, msg SMSMessage) error
}

// EmailSender ส่ง email จริงผ่าน provider (consumer side ของ queue)
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// SMSSender ส่ง SMS จริงผ่าน provider
type SMSSender interface {
	Send(ctx context.Context, msg SMSMessage) error
}
