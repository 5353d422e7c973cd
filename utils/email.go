package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends HTML mail through SMTP.
type Mailer struct {
	config EmailConfig
	dialer *gomail.Dialer
}

func NewMailer(config EmailConfig) *Mailer {
	return &Mailer{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool {
	return m != nil && m.config.Host != ""
}

// Send delivers one message to the given recipients.
func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer not configured")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
