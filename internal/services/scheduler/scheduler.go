// Package scheduler раз в день ищет арендаторов, которым пора напомнить о платеже,
// и публикует напоминания в очередь уведомлений.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/magabrotheeeer/rental-ledger/internal/lib/month"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/rent"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/rental-ledger/internal/metrics"
	"github.com/magabrotheeeer/rental-ledger/internal/models"
)

// Repository методы хранилища, нужные планировщику.
type Repository interface {
	ListAllClients(ctx context.Context) ([]*models.RentalClient, error)
	ListEntriesForClients(ctx context.Context, clientIDs []int) (map[int][]models.PaymentEntry, error)
	RefreshPaidFlags(ctx context.Context, period string) (int, error)
}

// Publisher публикует сообщение с ключом маршрутизации.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service планировщик напоминаний.
type Service struct {
	repo Repository
	pub  Publisher
	log  *slog.Logger
	loc  *time.Location
	now  func() time.Time
}

// NewService создает новый экземпляр Service. now может быть nil, тогда используется time.Now.
func NewService(repo Repository, pub Publisher, log *slog.Logger, loc *time.Location, now func() time.Time) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, pub: pub, log: log, loc: loc, now: now}
}

// Schedule регистрирует ежедневный проход по расписанию spec (cron из пяти полей)
// и возвращает запущенный cron. Остановка через Stop.
func (s *Service) Schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	const op = "scheduler.Schedule"
	c := cron.New(cron.WithLocation(s.loc))
	_, err := c.AddFunc(spec, func() {
		if err := s.RunDaily(ctx); err != nil {
			s.log.Error("daily reminder pass failed", sl.Err(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.Start()
	s.log.Info("reminder schedule registered", slog.String("spec", spec), slog.String("timezone", s.loc.String()))
	return c, nil
}

// RunDaily пересчитывает флаги оплаты на текущий месяц и публикует оба вида напоминаний.
func (s *Service) RunDaily(ctx context.Context) error {
	now := s.now()
	period := month.Period(now.In(s.loc))

	changed, err := s.repo.RefreshPaidFlags(ctx, period)
	if err != nil {
		return err
	}
	s.log.Info("paid flags refreshed", slog.String("periodo", period), slog.Int("changed", changed))

	clients, err := s.repo.ListAllClients(ctx)
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		s.log.Info("no rental clients found")
		return nil
	}

	dueSoon := s.publishAll(ctx, models.ReminderDueSoon, s.dueSoon(clients, now))

	overdueClients, err := s.overdue(ctx, clients, now)
	if err != nil {
		return err
	}
	overdue := s.publishAll(ctx, models.ReminderOverdue, overdueClients)

	s.log.Info("daily reminder pass finished",
		slog.Int("due_soon", dueSoon), slog.Int("overdue", overdue))
	return nil
}

// PublishDueSoon публикует напоминания арендаторам, у которых платёж ровно через три дня.
func (s *Service) PublishDueSoon(ctx context.Context) (int, error) {
	clients, err := s.repo.ListAllClients(ctx)
	if err != nil {
		return 0, err
	}
	return s.publishAll(ctx, models.ReminderDueSoon, s.dueSoon(clients, s.now())), nil
}

// PublishOverdue публикует напоминания арендаторам с просроченным неоплаченным платежом.
func (s *Service) PublishOverdue(ctx context.Context) (int, error) {
	clients, err := s.repo.ListAllClients(ctx)
	if err != nil {
		return 0, err
	}
	now := s.now()
	reminders, err := s.overdue(ctx, clients, now)
	if err != nil {
		return 0, err
	}
	return s.publishAll(ctx, models.ReminderOverdue, reminders), nil
}

func (s *Service) dueSoon(clients []*models.RentalClient, now time.Time) []models.Reminder {
	var result []models.Reminder
	for _, c := range rent.DueSoon(clients, now, s.loc) {
		result = append(result, s.reminder(models.ReminderDueSoon, c, now))
	}
	return result
}

func (s *Service) overdue(ctx context.Context, clients []*models.RentalClient, now time.Time) ([]models.Reminder, error) {
	var candidates []int
	for _, c := range clients {
		if rent.IsPastDue(now, c.DueDay, s.loc) {
			candidates = append(candidates, c.ID)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	history, err := s.repo.ListEntriesForClients(ctx, candidates)
	if err != nil {
		return nil, err
	}

	var result []models.Reminder
	for _, c := range rent.Overdue(clients, history, now, s.loc) {
		r := s.reminder(models.ReminderOverdue, c, now)
		r.Penalty = rent.ComputePenalty(c.RentAmount, c.PenaltyPercent)
		result = append(result, r)
	}
	return result, nil
}

func (s *Service) reminder(kind models.ReminderKind, c *models.RentalClient, now time.Time) models.Reminder {
	return models.Reminder{
		Kind:       kind,
		ClientID:   c.ID,
		Name:       c.Name,
		Email:      c.Email,
		RentAmount: c.RentAmount,
		DueDate:    month.DueDate(now, c.DueDay, s.loc),
	}
}

func (s *Service) publishAll(ctx context.Context, kind models.ReminderKind, reminders []models.Reminder) int {
	published := 0
	for _, r := range reminders {
		if err := s.pub.Publish(ctx, string(kind), r); err != nil {
			s.log.Error("failed to publish reminder",
				slog.Int("client_id", r.ClientID), slog.String("kind", string(kind)), sl.Err(err))
			continue
		}
		published++
		metrics.RemindersPublished.WithLabelValues(string(kind)).Inc()
	}
	return published
}
