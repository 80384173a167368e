package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"alumni-system/pkg/config"
)

// SenderInterface — отправка SMS через внешний шлюз.
type SenderInterface interface {
	Send(ctx context.Context, phone, text string) error
}

type Sender struct {
	cfg        config.SMSConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewSender(cfg config.SMSConfig, logger *zap.Logger) SenderInterface {
	if cfg.GatewayURL == "" {
		return &noopSender{logger: logger}
	}
	return &Sender{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type sendRequest struct {
	Phone  string `json:"phone"`
	Text   string `json:"text"`
	Sender string `json:"sender,omitempty"`
}

func (s *Sender) Send(ctx context.Context, phone, text string) error {
	payload, err := json.Marshal(sendRequest{Phone: phone, Text: text, Sender: s.cfg.Sender})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка обращения к SMS-шлюзу: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		s.logger.Error("SMS-шлюз вернул ошибку",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return fmt.Errorf("SMS-шлюз вернул статус %d", resp.StatusCode)
	}

	return nil
}

type noopSender struct {
	logger *zap.Logger
}

func (s *noopSender) Send(ctx context.Context, phone, text string) error {
	s.logger.Info("SMS-шлюз не настроен, сообщение не отправлено", zap.String("phone", phone))
	return nil
}
