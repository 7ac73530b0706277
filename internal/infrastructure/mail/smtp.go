// Package mail delivers notification emails over SMTP.
package mail

import (
	"fmt"

	"github.com/akau-shop/backend/internal/application/notification"
	"github.com/akau-shop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// SMTPSender sends plain-text mail through an SMTP relay using STARTTLS
type SMTPSender struct {
	dialer    *gomail.Dialer
	fromName  string
	fromEmail string
}

// NewSMTPSender creates an SMTP sender from config. It errors when the
// settings are incomplete so the caller can fall back to a disabled sender
// instead of failing on every delivery.
func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp settings incomplete: host=%q username set=%t password set=%t",
			cfg.Host, cfg.Username != "", cfg.Password != "")
	}
	fromEmail := cfg.FromEmail
	if fromEmail == "" {
		fromEmail = cfg.Username
	}

	return &SMTPSender{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		fromName:  cfg.FromName,
		fromEmail: fromEmail,
	}, nil
}

// Send delivers a single plain-text message
func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromEmail, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return s.dialer.DialAndSend(m)
}

// DisabledSender drops all mail, logging each drop at debug level. Used
// when SMTP is switched off or misconfigured so order flow never depends
// on mail settings.
type DisabledSender struct {
	logger *zap.Logger
}

// NewDisabledSender creates a sender that discards everything
func NewDisabledSender(logger *zap.Logger) *DisabledSender {
	return &DisabledSender{logger: logger}
}

func (s *DisabledSender) Send(to, subject, _ string) error {
	s.logger.Debug("mail disabled, dropping message",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

var _ notification.Sender = (*SMTPSender)(nil)
var _ notification.Sender = (*DisabledSender)(nil)
