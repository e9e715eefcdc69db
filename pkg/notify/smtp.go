package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/config"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

const smtpDialTimeout = 10 * time.Second

var ErrSMTPNotConfigured = errors.New("smtp sender and recipients are required")

// SendFunc delivers one message. addr is host:port.
type SendFunc func(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier mails alerts over implicit TLS, the way port 465 expects.
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       []string
	send     SendFunc
}

func NewSMTPNotifier(cfg config.SMTP) (*SMTPNotifier, error) {
	if cfg.From == "" || len(cfg.To) == 0 {
		return nil, ErrSMTPNotConfigured
	}
	return &SMTPNotifier{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		to:       cfg.To,
		send:     sendImplicitTLS,
	}, nil
}

// WithSendFunc replaces the transport.
func (n *SMTPNotifier) WithSendFunc(send SendFunc) *SMTPNotifier {
	n.send = send
	return n
}

func (n *SMTPNotifier) Notify(ctx context.Context, alert wear.Alert) error {
	logger := common.GetCategoryLogger(common.LoggerNameNotifier, common.LoggerCategoryWearNotify)

	var auth smtp.Auth
	if n.username != "" {
		auth = smtp.PlainAuth("", n.username, n.password, n.host)
	}

	addr := net.JoinHostPort(n.host, strconv.Itoa(n.port))
	if err := n.send(ctx, addr, auth, n.from, n.to, n.message(alert)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	logger.Info("Alert mailed", zap.String("subject", alert.Subject()), zap.Strings("to", n.to))
	return nil
}

func (n *SMTPNotifier) message(alert wear.Alert) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", n.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(n.to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", alert.Subject())
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(alert.Body(), "\n", "\r\n"))
	return b.Bytes()
}

func sendImplicitTLS(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: smtpDialTimeout},
		Config:    &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12},
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(auth); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
