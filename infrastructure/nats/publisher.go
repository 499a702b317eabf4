package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"tix4u-backend/domain/ports"
)

// Publisher implements ports.NotificationQueue บน JetStream
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

var _ ports.NotificationQueue = (*Publisher)(nil)

func (p *Publisher) PublishEmail(ctx context.Context, msg ports.EmailMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal email message: %w", err)
	}

	if _, err := p.client.js.Publish(ctx, SubjectEmails, data); err != nil {
		return fmt.Errorf("failed to publish email message: %w", err)
	}

	return nil
}

func (p *Publisher) PublishSMS(ctx context.Context, msg ports.SMSMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal sms message: %w", err)
	}

	if _, err := p.client.js.Publish(ctx, SubjectSMS, data); err != nil {
		return fmt.Errorf("failed to publish sms message: %w", err)
	}

	return nil
}
