package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
)

// SMTPName is the configuration name of SMTPHandler.
const SMTPName = "smtp"

var errNoRecipients = errors.New("no recipients")

// SMTPConfig configures delivery through an SMTP relay.
type SMTPConfig struct {
	Addr     string // host:port
	From     string
	Username string
	Password string
	// DefaultTo is used when a message carries no recipients.
	DefaultTo []string
}

type deliverFunc func(ctx context.Context, to []string, data []byte) error

// SMTPHandler delivers order mails through an SMTP relay.
type SMTPHandler struct {
	cfg     SMTPConfig
	host    string
	auth    smtp.Auth
	deliver deliverFunc
}

// NewSMTPHandler creates an SMTPHandler. PLAIN auth is used when a username is set.
func NewSMTPHandler(cfg SMTPConfig) (*SMTPHandler, error) {
	host, _, err := net.SplitHostPort(cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("invalid smtp address %q: %w", cfg.Addr, err)
	}
	if cfg.From == "" {
		return nil, errors.New("smtp sender address is required")
	}

	h := &SMTPHandler{
		cfg:  cfg,
		host: host,
	}
	if cfg.Username != "" {
		h.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}
	h.deliver = h.dial
	return h, nil
}

func (h *SMTPHandler) Name() string {
	return SMTPName
}

// Send delivers msg. Cancelling ctx closes the relay connection, so a message
// whose Send returned a context error was not accepted by the relay.
func (h *SMTPHandler) Send(ctx context.Context, msg Message) (*Receipt, error) {
	to := msg.To
	if len(to) == 0 {
		to = h.cfg.DefaultTo
	}
	if len(to) == 0 {
		return nil, errNoRecipients
	}

	if err := h.deliver(ctx, to, buildMessage(h.cfg.From, to, msg.Subject, msg.Body)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("send mail: %w", err)
	}
	return &Receipt{Handler: SMTPName}, nil
}

// dial runs one SMTP transaction against the relay, upgrading to TLS when offered.
func (h *SMTPHandler) dial(ctx context.Context, to []string, data []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", h.cfg.Addr)
	if err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	c, err := smtp.NewClient(conn, h.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: h.host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if h.auth != nil {
		if err := c.Auth(h.auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(h.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("end data: %w", err)
	}

	return c.Quit()
}

// buildMessage renders a plain-text RFC 5322 message with CRLF line endings.
func buildMessage(from string, to []string, subject, body string) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	buf.WriteString("\r\n")

	return buf.Bytes()
}
