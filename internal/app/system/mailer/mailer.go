// internal/app/system/mailer/mailer.go
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"time"

	"go.uber.org/zap"
)

// Email is one outbound message. TextBody is required; HTMLBody is optional
// and sent as a multipart alternative when present.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // From email address
	FromName string // From display name
}

// Mailer sends email over SMTP.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

// New creates a Mailer with the given SMTP configuration.
func New(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: logger}
}

// Send delivers one email, honoring ctx cancellation. smtp.SendMail has no
// context support, so the send runs in a goroutine and the first of
// completion or cancellation wins.
func (m *Mailer) Send(ctx context.Context, e Email) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("mailer: SMTP host not configured")
	}

	var buf bytes.Buffer
	buf.WriteString("From: " + m.cfg.FromName + " <" + m.cfg.From + ">\r\n")
	buf.WriteString("To: " + e.To + "\r\n")
	buf.WriteString("Subject: " + e.Subject + "\r\n")
	buf.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")

	if e.HTMLBody != "" {
		const boundary = "panelboard-alt"
		buf.WriteString("MIME-Version: 1.0\r\n")
		buf.WriteString("Content-Type: multipart/alternative; boundary=" + boundary + "\r\n\r\n")
		buf.WriteString("--" + boundary + "\r\n")
		buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		buf.WriteString(e.TextBody + "\r\n")
		buf.WriteString("--" + boundary + "\r\n")
		buf.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		buf.WriteString(e.HTMLBody + "\r\n")
		buf.WriteString("--" + boundary + "--\r\n")
	} else {
		buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		buf.WriteString(e.TextBody)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.cfg.From, []string{e.To}, buf.Bytes())
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			m.log.Error("email send failed",
				zap.String("to", e.To),
				zap.String("subject", e.Subject),
				zap.Error(err))
			return err
		}
		m.log.Info("email sent",
			zap.String("to", e.To),
			zap.String("subject", e.Subject))
		return nil
	}
}
