// Package notify delivers the run summary by email over SMTP.
package notify

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SMTPConfig identifies the submission endpoint and sender credentials.
type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// Message is one outbound notification. AttachmentPath, when set, is read at
// send time and attached as application/octet-stream.
type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}

// Mailer sends messages through a single SMTP endpoint using STARTTLS.
type Mailer struct {
	cfg         SMTPConfig
	dialTimeout time.Duration
}

// NewMailer creates a Mailer for the given endpoint.
func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg, dialTimeout: 30 * time.Second}
}

// Send connects, authenticates, and submits the message. The summary body is
// plain text; any attachment rides along base64-encoded in a multipart
// envelope.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	payload, err := m.buildMessage(msg)
	if err != nil {
		return err
	}
	return m.submit(ctx, msg.To, payload)
}

// buildMessage assembles the full RFC 5322 message text.
func (m *Mailer) buildMessage(msg Message) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.Sender)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	if msg.AttachmentPath == "" {
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		b.WriteString("\r\n")
		b.WriteString(msg.Body)
		b.WriteString("\r\n")
		return b.String(), nil
	}

	data, err := os.ReadFile(msg.AttachmentPath)
	if err != nil {
		return "", fmt.Errorf("reading attachment: %w", err)
	}

	boundary := fmt.Sprintf("boundary_%d", time.Now().UnixNano())
	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: application/octet-stream\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n", filepath.Base(msg.AttachmentPath))
	b.WriteString("\r\n")
	writeBase64Wrapped(&b, data)

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return b.String(), nil
}

// writeBase64Wrapped emits base64 data in 76-column lines per RFC 2045.
func writeBase64Wrapped(b *strings.Builder, data []byte) {
	encoded := base64.StdEncoding.EncodeToString(data)
	const lineLen = 76
	for len(encoded) > 0 {
		n := lineLen
		if n > len(encoded) {
			n = len(encoded)
		}
		b.WriteString(encoded[:n])
		b.WriteString("\r\n")
		encoded = encoded[n:]
	}
}

func (m *Mailer) submit(ctx context.Context, to, payload string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	dialer := &net.Dialer{Timeout: m.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: m.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("starting TLS: %w", err)
	}

	if m.cfg.Password != "" {
		auth := smtp.PlainAuth("", m.cfg.Sender, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication: %w", err)
		}
	}

	if err := client.Mail(m.cfg.Sender); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("opening message body: %w", err)
	}
	if _, err := w.Write([]byte(payload)); err != nil {
		return fmt.Errorf("writing message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing message body: %w", err)
	}

	// Quit failures after a successful submission are not worth surfacing.
	_ = client.Quit()
	return nil
}
