package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tix4u-backend/domain/ports"
	"tix4u-backend/pkg/config"
)

// Sender ส่ง templated email ผ่าน Maileroo HTTP API
type Sender struct {
	cfg        config.EmailConfig
	httpClient *http.Client
}

func NewSender(cfg config.EmailConfig) *Sender {
	return &Sender{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

var _ ports.EmailSender = (*Sender)(nil)

type address struct {
	Address     string `json:"address"`
	DisplayName string `json:"display_name,omitempty"`
}

type templatedRequest struct {
	From           address        `json:"from"`
	To             []address      `json:"to"`
	Subject        string         `json:"subject"`
	TemplateID     string         `json:"template_id"`
	TemplateData   map[string]any `json:"template_data,omitempty"`
	TrackingOpens  bool           `json:"tracking_opens"`
	TrackingClicks bool           `json:"tracking_clicks"`
}

func (s *Sender) Send(ctx context.Context, msg ports.EmailMessage) error {
	payload := templatedRequest{
		From: address{
			Address:     s.cfg.FromEmail,
			DisplayName: s.cfg.FromName,
		},
		To: []address{
			{Address: msg.ToEmail, DisplayName: msg.ToName},
		},
		Subject:      msg.Subject,
		TemplateID:   msg.TemplateID,
		TemplateData: msg.Data,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/emails/template", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call email provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("email provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
