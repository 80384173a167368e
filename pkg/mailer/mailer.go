package mailer

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"alumni-system/pkg/config"
)

// MailerInterface — узкий интерфейс отправки почты.
// Остальная система ничего не знает о транспорте.
type MailerInterface interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) MailerInterface {
	// Без настроенного SMTP письма только логируются.
	if cfg.Host == "" {
		return &noopMailer{logger: logger}
	}
	return &SMTPMailer{cfg: cfg, logger: logger}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := m.cfg.Host + ":" + m.cfg.Port

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body,
	))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		m.logger.Error("не удалось отправить письмо", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("ошибка отправки письма: %w", err)
	}

	m.logger.Info("письмо отправлено", zap.String("to", to), zap.String("subject", subject))
	return nil
}

type noopMailer struct {
	logger *zap.Logger
}

func (m *noopMailer) Send(to, subject, body string) error {
	m.logger.Info("SMTP не настроен, письмо не отправлено",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
