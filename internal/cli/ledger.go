package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/rental-ledger/internal/lib/rent"
	"github.com/magabrotheeeer/rental-ledger/internal/models"
	"github.com/magabrotheeeer/rental-ledger/internal/rabbitmq"
	paymentservice "github.com/magabrotheeeer/rental-ledger/internal/services/payment"
	schedulerservice "github.com/magabrotheeeer/rental-ledger/internal/services/scheduler"
	"github.com/magabrotheeeer/rental-ledger/internal/storage/repository"
)

// noCache используется там, где утилита меняет данные мимо HTTP-сервиса:
// карточки в Redis доживают до своего TTL.
type noCache struct{}

func (noCache) Invalidate(context.Context, string) error { return nil }

func (r *runner) alertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Арендаторы, у которых платёж ровно через три дня",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := r.cfg.App.Location()
			if err != nil {
				return err
			}
			db, err := repository.New(r.cfg.StorageConnectionString)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			clients, err := db.ListAllClients(cmd.Context())
			if err != nil {
				return err
			}
			due := rent.DueSoon(clients, time.Now(), loc)
			if due == nil {
				due = []*models.RentalClient{}
			}
			return r.writeJSON(due)
		},
	}
}

func (r *runner) penaltyCmd() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "penalty <client-id>",
		Short: "Статус оплаты и штраф арендатора за месяц",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}
			loc, err := r.cfg.App.Location()
			if err != nil {
				return err
			}
			db, err := repository.New(r.cfg.StorageConnectionString)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			svc := paymentservice.New(db, noCache{}, r.log, loc, nil)
			res, err := svc.PenaltyFor(cmd.Context(), clientID, period)
			if err != nil {
				return err
			}
			return r.writeJSON(res)
		},
	}
	cmd.Flags().StringVar(&period, "periodo", "", "период YYYY-MM, по умолчанию текущий месяц")
	return cmd
}

// reminderRunner проход напоминаний: полный или по одному виду.
type reminderRunner interface {
	RunDaily(ctx context.Context) error
	PublishDueSoon(ctx context.Context) (int, error)
	PublishOverdue(ctx context.Context) (int, error)
}

func checkReminderKind(kind string) error {
	switch kind {
	case "", string(models.ReminderDueSoon), string(models.ReminderOverdue):
		return nil
	}
	return fmt.Errorf("unknown --kind %q: use due_soon or overdue", kind)
}

// runReminders пустой kind выполняет полный ежедневный проход с пересчётом флагов оплаты.
func runReminders(ctx context.Context, svc reminderRunner, kind string) (string, error) {
	var (
		published int
		err       error
	)
	switch models.ReminderKind(kind) {
	case models.ReminderDueSoon:
		published, err = svc.PublishDueSoon(ctx)
	case models.ReminderOverdue:
		published, err = svc.PublishOverdue(ctx)
	default:
		if err := svc.RunDaily(ctx); err != nil {
			return "", err
		}
		return "reminders published", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s reminders published: %d", kind, published), nil
}

func (r *runner) remindCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Однократно выполнить проход напоминаний",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkReminderKind(kind); err != nil {
				return err
			}
			loc, err := r.cfg.App.Location()
			if err != nil {
				return err
			}
			db, err := repository.New(r.cfg.StorageConnectionString)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			conn, err := rabbitmq.Connect(r.cfg.RabbitMQ.URL, r.cfg.RabbitMQ.MaxRetries, r.cfg.RabbitMQ.RetryDelay)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()
			ch, err := rabbitmq.SetupChannel(conn, rabbitmq.ReminderQueues())
			if err != nil {
				return err
			}
			defer func() { _ = ch.Close() }()

			svc := schedulerservice.NewService(db, rabbitmq.NewPublisher(ch), r.log, loc, nil)
			msg, err := runReminders(cmd.Context(), svc, kind)
			if err != nil {
				return err
			}
			fmt.Fprintln(r.out, msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "только один вид напоминаний: due_soon или overdue")
	return cmd
}
