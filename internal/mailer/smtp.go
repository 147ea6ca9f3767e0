// AngelaMos | 2026
// smtp.go

package mailer

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/foodhall/internal/config"
)

type SMTPProvider struct {
	host     string
	port     int
	user     string
	password string
	from     string
	domain   string
}

func NewSMTPProvider(cfg config.EmailConfig) *SMTPProvider {
	domain := "localhost"
	if addr, err := mail.ParseAddress(cfg.From); err == nil {
		if at := strings.LastIndex(addr.Address, "@"); at >= 0 {
			domain = addr.Address[at+1:]
		}
	}

	return &SMTPProvider{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.From,
		domain:   domain,
	}
}

// Send submits msg over SMTP. The generated Message-ID doubles as the
// provider id since SMTP servers do not return one.
func (p *SMTPProvider) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	from := msg.From
	if from == "" {
		from = p.from
	}

	envelopeFrom := from
	if addr, err := mail.ParseAddress(from); err == nil {
		envelopeFrom = addr.Address
	}

	id := uuid.New().String()
	raw := buildMessage(from, msg.To, msg.Subject, msg.HTML, "<"+id+"@"+p.domain+">")

	var auth smtp.Auth
	if p.password != "" {
		user := p.user
		if user == "" {
			user = envelopeFrom
		}
		auth = smtp.PlainAuth("", user, p.password, p.host)
	}

	addr := net.JoinHostPort(p.host, strconv.Itoa(p.port))
	if err := smtp.SendMail(addr, auth, envelopeFrom, []string{msg.To}, raw); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}

	return id, nil
}

func buildMessage(from, to, subject, html, messageID string) []byte {
	var b strings.Builder
	b.WriteString("From: " + headerValue(from) + "\r\n")
	b.WriteString("To: " + headerValue(to) + "\r\n")
	b.WriteString("Subject: " + mimeHeader(headerValue(subject)) + "\r\n")
	b.WriteString("Message-ID: " + messageID + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	return []byte(b.String())
}

var headerBreaks = strings.NewReplacer("\r", "", "\n", "")

func headerValue(s string) string {
	return headerBreaks.Replace(s)
}

func mimeHeader(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.QEncoding.Encode("utf-8", s)
		}
	}
	return s
}
