// File: internal/notification/mailer.go
package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/McLeroy/loops-api/internal/config"

	"go.uber.org/zap"
)

const mailBody = `<p>Hello,</p>
<p>Your Loops verification code is:</p>
<h2>{{.Code}}</h2>
<p>{{.Hint}}</p>
<p>If you did not request this, you can safely ignore this email.</p>`

var bodyTemplate = template.Must(template.New("verification").Parse(mailBody))

// SMTPMailer sends verification codes over SMTP with STARTTLS.
type SMTPMailer struct {
	cfg    *config.Config
	logger *zap.Logger
}

var _ Sender = (*SMTPMailer)(nil)

// NewSMTPMailer creates a new SMTP mailer.
func NewSMTPMailer(cfg *config.Config, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

func (m *SMTPMailer) Send(ctx context.Context, destination, code, reason string) error {
	subject := "Your Loops verification code"
	hint := "Enter this code to confirm your email address."
	if reason == "password_reset" {
		subject = "Reset your Loops password"
		hint = "Enter this code to reset your password."
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, map[string]string{"Code": code, "Hint": hint}); err != nil {
		return err
	}

	fromHeader := fmt.Sprintf("%s <%s>", m.cfg.MailFromName, m.cfg.MailFrom)
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", destination),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		buf.String(),
	}, "\r\n")

	m.logger.Debug("Sending verification mail",
		zap.String("to", destination),
		zap.String("reason", reason),
	)
	return m.sendWithTimeout(destination, []byte(msg))
}

// sendWithTimeout dials SMTP with a TCP timeout and a hard connection
// deadline so a stalled server cannot hang a request goroutine.
func (m *SMTPMailer) sendWithTimeout(to string, msg []byte) error {
	addr := net.JoinHostPort(m.cfg.SMTPHost, m.cfg.SMTPPort)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, m.cfg.SMTPHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.SMTPHost}); err != nil {
			return err
		}
	}
	if m.cfg.SMTPUsername != "" {
		auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(m.cfg.MailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
