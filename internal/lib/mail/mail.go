// Package mail отправляет письма через SMTP с помощью jordan-wright/email.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/magabrotheeeer/rental-ledger/internal/config"
)

// ErrNoRecipients у письма нет адресатов.
var ErrNoRecipients = errors.New("mail: no recipients")

// Message текстовое письмо.
type Message struct {
	To      []string
	Subject string
	Text    string
}

type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// Mailer отправляет письма через SMTP-сервер из конфигурации.
type Mailer struct {
	from string
	addr string
	auth smtp.Auth
	send sendFunc
}

// NewMailer создаёт Mailer. Без пользователя SMTP письма отправляются без аутентификации.
func NewMailer(cfg config.SMTP) *Mailer {
	m := &Mailer{
		from: cfg.From,
		addr: fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
	if m.from == "" {
		m.from = cfg.User
	}
	if cfg.User != "" {
		m.auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}
	return m
}

// Send отправляет письмо. Отменённый контекст письмо не отправляет.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	const op = "mail.Send"
	if len(msg.To) == 0 {
		return fmt.Errorf("%s: %w", op, ErrNoRecipients)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	e := email.NewEmail()
	e.From = m.from
	e.To = msg.To
	e.Subject = msg.Subject
	e.Text = []byte(msg.Text)

	if err := m.send(e, m.addr, m.auth); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
