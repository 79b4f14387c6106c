// Package sender превращает напоминания из очереди в письма арендаторам.
package sender

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/rental-ledger/internal/lib/mail"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/month"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/rental-ledger/internal/metrics"
	"github.com/magabrotheeeer/rental-ledger/internal/models"
)

// ErrUnknownKind напоминание неизвестного типа.
var ErrUnknownKind = errors.New("unknown reminder kind")

// Mailer отправляет письмо.
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// Service отправитель напоминаний.
type Service struct {
	mailer  Mailer
	log     *slog.Logger
	timeout time.Duration
}

// NewService создает новый экземпляр Service.
func NewService(mailer Mailer, log *slog.Logger) *Service {
	return &Service{
		mailer:  mailer,
		log:     log,
		timeout: 30 * time.Second,
	}
}

// HandleReminder обрабатывает тело сообщения из очереди напоминаний.
// Сообщение, которое не удаётся разобрать, логируется и отбрасывается,
// ошибка отправки письма возвращается, чтобы сообщение вернулось в очередь.
func (s *Service) HandleReminder(body []byte) error {
	var reminder models.Reminder
	if err := json.Unmarshal(body, &reminder); err != nil {
		s.log.Error("failed to unmarshal reminder, dropping", sl.Err(err))
		metrics.RemindersSent.WithLabelValues("unknown", "dropped").Inc()
		return nil
	}

	msg, err := Render(reminder)
	if err != nil {
		s.log.Error("failed to render reminder, dropping",
			slog.Int("client_id", reminder.ClientID), sl.Err(err))
		metrics.RemindersSent.WithLabelValues(string(reminder.Kind), "dropped").Inc()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error("failed to send reminder",
			slog.Int("client_id", reminder.ClientID), slog.String("to", reminder.Email), sl.Err(err))
		metrics.RemindersSent.WithLabelValues(string(reminder.Kind), "failed").Inc()
		return err
	}

	metrics.RemindersSent.WithLabelValues(string(reminder.Kind), "sent").Inc()
	s.log.Info("reminder sent",
		slog.Int("client_id", reminder.ClientID), slog.String("kind", string(reminder.Kind)))
	return nil
}

// Render собирает текст письма для напоминания.
func Render(r models.Reminder) (mail.Message, error) {
	if r.Email == "" {
		return mail.Message{}, mail.ErrNoRecipients
	}

	due := r.DueDate.Format("02/01/2006")
	var subject, text string
	switch r.Kind {
	case models.ReminderDueSoon:
		subject = "Lembrete: aluguel vence em 3 dias"
		text = fmt.Sprintf("Olá, %s!\n\n"+
			"Lembramos que o aluguel no valor de R$ %s vence em %s.\n"+
			"Por favor, programe o pagamento.\n",
			r.Name, r.RentAmount.StringFixed(2), due)
	case models.ReminderOverdue:
		subject = "Aviso: aluguel em atraso"
		text = fmt.Sprintf("Olá, %s!\n\n"+
			"O aluguel no valor de R$ %s venceu em %s e ainda não foi pago.\n"+
			"Multa por atraso: R$ %s.\n"+
			"Regularize o pagamento o quanto antes.\n",
			r.Name, r.RentAmount.StringFixed(2), due, r.Penalty.StringFixed(2))
	default:
		return mail.Message{}, fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}
	text += "\nAtenciosamente,\nAdministração de aluguéis\n"

	return mail.Message{
		To:      []string{r.Email},
		Subject: subject + " (" + month.Period(r.DueDate) + ")",
		Text:    text,
	}, nil
}
