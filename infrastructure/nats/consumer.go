package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"tix4u-backend/domain/ports"
	"tix4u-backend/pkg/logger"
)

// Consumer อ่าน notification message จาก JetStream แล้วส่งผ่าน provider จริง
type Consumer struct {
	client      *Client
	emailSender ports.EmailSender
	smsSender   ports.SMSSender
	consumeCtx  jetstream.ConsumeContext
}

func NewConsumer(client *Client, emailSender ports.EmailSender, smsSender ports.SMSSender) *Consumer {
	return &Consumer{
		client:      client,
		emailSender: emailSender,
		smsSender:   smsSender,
	}
}

// Start สร้าง durable consumer แล้วเริ่ม consume ใน background
func (c *Consumer) Start(ctx context.Context) error {
	consumer, err := c.client.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:        ConsumerName,
		AckPolicy:      jetstream.AckExplicitPolicy,
		AckWait:        30 * time.Second,
		MaxDeliver:     5,
		FilterSubjects: []string{SubjectEmails, SubjectSMS},
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	consumeCtx, err := consumer.Consume(c.handleMessage)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	c.consumeCtx = consumeCtx

	logger.Info("notification consumer started", "consumer", ConsumerName)
	return nil
}

func (c *Consumer) handleMessage(msg jetstream.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	switch msg.Subject() {
	case SubjectEmails:
		c.handleEmail(ctx, msg)
	case SubjectSMS:
		c.handleSMS(ctx, msg)
	default:
		logger.Warn("unknown notification subject", "subject", msg.Subject())
		_ = msg.Term()
	}
}

func (c *Consumer) handleEmail(ctx context.Context, msg jetstream.Msg) {
	var email ports.EmailMessage
	if err := json.Unmarshal(msg.Data(), &email); err != nil {
		logger.Error("failed to unmarshal email message", "error", err)
		_ = msg.Term() // payload พัง retry ไปก็ไม่หาย
		return
	}

	if err := c.emailSender.Send(ctx, email); err != nil {
		logger.Error("failed to send email", "error", err, "to", email.ToEmail, "template", email.TemplateID)
		_ = msg.Nak()
		return
	}

	logger.Info("email sent", "to", email.ToEmail, "template", email.TemplateID)
	_ = msg.Ack()
}

func (c *Consumer) handleSMS(ctx context.Context, msg jetstream.Msg) {
	var sms ports.SMSMessage
	if err := json.Unmarshal(msg.Data(), &sms); err != nil {
		logger.Error("failed to unmarshal sms message", "error", err)
		_ = msg.Term()
		return
	}

	if err := c.smsSender.Send(ctx, sms); err != nil {
		logger.Error("failed to send sms", "error", err, "recipients", len(sms.Recipients))
		_ = msg.Nak()
		return
	}

	logger.Info("sms sent", "recipients", len(sms.Recipients))
	_ = msg.Ack()
}

// Stop หยุด consume แบบ graceful
func (c *Consumer) Stop() {
	if c.consumeCtx != nil {
		c.consumeCtx.Stop()
	}
}
