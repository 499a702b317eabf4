package sms

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

// Sender ส่ง SMS ผ่าน Arkesel HTTP API
type Sender struct {
	cfg        config.SMSConfig
	httpClient *http.Client
}

func NewSender(cfg config.SMSConfig) *Sender {
	return &Sender{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

var _ ports.SMSSender = (*Sender)(nil)

type sendRequest struct {
	Sender     string   `json:"sender"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

func (s *Sender) Send(ctx context.Context, msg ports.SMSMessage) error {
	if len(msg.Recipients) == 0 {
		return nil
	}

	payload := sendRequest{
		Sender:     s.cfg.SenderID,
		Message:    msg.Message,
		Recipients: msg.Recipients,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/api/v2/sms/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sms provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sms provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
