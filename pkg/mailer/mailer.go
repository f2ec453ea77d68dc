// Package mailer delivers announcement confirmation messages over SMTP.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"classifieds-hub/internal/model"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Mailer struct {
	cfg      Config
	sendMail func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func New(cfg Config) *Mailer {
	return &Mailer{
		cfg:      cfg,
		sendMail: smtp.SendMail,
	}
}

// Notify sends the confirmation for a persisted announcement to its
// contact address. A single synchronous attempt, no retry.
func (m *Mailer) Notify(ctx context.Context, item *model.Announcement) error {
	if m == nil {
		return errors.New("mailer is nil")
	}
	if strings.TrimSpace(m.cfg.Host) == "" {
		return errors.New("smtp host is empty")
	}
	if item == nil || strings.TrimSpace(item.Contact.Email) == "" {
		return errors.New("recipient address is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := buildMessage(m.cfg.From, item)
	done := make(chan error, 1)
	go func() {
		done <- m.sendMail(addr, auth, m.cfg.From, []string{item.Contact.Email}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send confirmation mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(30 * time.Second):
		return errors.New("send confirmation mail: timeout")
	}
}

// buildMessage renders the confirmation body. It is the only place the
// edit code leaves the server, so the owner can authorize later edits.
func buildMessage(from string, item *model.Announcement) []byte {
	var buf bytes.Buffer

	title := html.EscapeString(item.Title)
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", item.Contact.Email)
	fmt.Fprintf(&buf, "Subject: Your announcement has been published: %s\r\n", item.Title)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	buf.WriteString("\r\n")

	buf.WriteString("<h1>Hello!</h1>")
	fmt.Fprintf(&buf, "<p>Your announcement: <strong>%s</strong></p>", title)
	buf.WriteString("<p>Details:</p><ul>")
	fmt.Fprintf(&buf, "<li>Title: %s</li>", title)
	fmt.Fprintf(&buf, "<li>Category: %s</li>", item.Category)
	buf.WriteString("</ul>")
	fmt.Fprintf(&buf, "<p>Announcement ID: %s</p>", item.ID)
	fmt.Fprintf(&buf, "<p>Edit code: %s</p>", item.EditCode)
	buf.WriteString("<p>The announcement expires in 30 days.</p>")
	buf.WriteString("<p>Best regards,<br>The classifieds team</p>")

	return buf.Bytes()
}
