package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// Config carries the SMTP settings for outgoing account mail.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPMailer sends account emails over plain SMTP with optional auth.
type SMTPMailer struct {
	cfg Config
	log zerolog.Logger
}

func NewSMTPMailer(cfg Config, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

// SendPasswordReset mails a recovery link carrying the one-time token.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, token, baseURL string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", baseURL, token)
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Password recovery\r\n"+
			"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n"+
			"A password reset was requested for your account.\r\n\r\n"+
			"Open the following link to choose a new password (valid for one hour):\r\n%s\r\n\r\n"+
			"If you did not request this, ignore this message.\r\n",
		m.cfg.From, to, link,
	)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	// net/smtp has no context support; honor cancellation by checking
	// before the dial and bounding the rest with the OS-level timeouts.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(body)); err != nil {
		return fmt.Errorf("send password reset: %w", err)
	}

	m.log.Info().Str("to", to).Msg("password reset email sent")
	return nil
}

// LogMailer is a development stand-in that logs instead of sending. Used
// when no SMTP host is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, to, token, baseURL string) error {
	m.log.Info().
		Str("to", to).
		Str("link", fmt.Sprintf("%s/reset-password?token=%s", baseURL, token)).
		Msg("password reset email (not sent, SMTP disabled)")
	return nil
}
