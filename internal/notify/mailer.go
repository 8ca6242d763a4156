package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/ashimthegreat/techbucket-website/internal/config"

	"go.uber.org/zap"
)

// Mailer delivers a single email to a set of recipients
type Mailer interface {
	Send(recipients []string, subject, body string) error
}

// SMTPMailer sends mail through a standard SMTP relay using STARTTLS
// when the server offers it.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer creates a new SMTPMailer from configuration
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// Send delivers one message. The message is assembled as plain text with
// CRLF line endings as required by the wire format.
func (m *SMTPMailer) Send(recipients []string, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(recipients, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, recipients, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// LogMailer writes the email to the log instead of delivering it. Used
// in development when no SMTP relay is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a new LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message and reports success
func (m *LogMailer) Send(recipients []string, subject, body string) error {
	m.logger.Info("email delivery skipped (no SMTP host configured)",
		zap.Strings("recipients", recipients),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)),
	)
	return nil
}
