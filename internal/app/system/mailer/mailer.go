// internal/app/system/mailer/mailer.go
package mailer

import (
	"crypto/tls"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string

	// InsecureSkipVerify accepts any server certificate. Plain SMTP relays
	// that never offer STARTTLS do not need it.
	InsecureSkipVerify bool
}

// Email is one outbound message. TextBody is required; HTMLBody is sent as
// an alternative part when set.
type Email struct {
	To       string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends email over SMTP. With no host configured it logs messages
// instead of sending them.
type Mailer struct {
	cfg    Config
	dialer *gomail.Dialer
	log    *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Mailer {
	m := &Mailer{cfg: cfg, log: log}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
		if cfg.InsecureSkipVerify {
			m.dialer.TLSConfig = &tls.Config{ServerName: cfg.Host, InsecureSkipVerify: true}
		}
	}
	return m
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool { return m != nil && m.dialer != nil }

// Send delivers e synchronously.
func (m *Mailer) Send(e Email) error {
	if e.To == "" {
		return errors.New("mailer: no recipient")
	}
	if !m.Enabled() {
		m.log.Info("mail disabled, message not sent",
			zap.String("to", e.To),
			zap.String("subject", e.Subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", e.To)
	if e.ReplyTo != "" {
		msg.SetHeader("Reply-To", e.ReplyTo)
	}
	msg.SetHeader("Subject", e.Subject)
	msg.SetBody("text/plain", e.TextBody)
	if e.HTMLBody != "" {
		msg.AddAlternative("text/html", e.HTMLBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", e.To, err)
	}
	return nil
}

// Go sends e in the background. Failures are logged; the caller never
// waits on the mail server.
func (m *Mailer) Go(e Email) {
	if m == nil {
		return
	}
	go func() {
		if err := m.Send(e); err != nil {
			m.log.Error("email send failed",
				zap.Error(err),
				zap.String("to", e.To),
				zap.String("subject", e.Subject))
			return
		}
		m.log.Debug("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	}()
}
