// Package sender собирает приложение, которое читает напоминания из очередей
// и рассылает письма арендаторам.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/rental-ledger/internal/config"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/mail"
	"github.com/magabrotheeeer/rental-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/rental-ledger/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/rental-ledger/internal/services/sender"
)

// App представляет приложение рассылки напоминаний.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New подключается к RabbitMQ, объявляет очереди напоминаний и готовит почтовый сервис.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.ReminderQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	senderService := senderservice.NewService(mail.NewMailer(cfg.SMTP), logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителей всех очередей напоминаний и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	for _, q := range rabbitmq.ReminderQueues() {
		err := rabbitmq.ConsumerMessage(ctx, a.ch, q.QueueName, a.logger, a.senderService.HandleReminder)
		if err != nil {
			a.logger.Error("failed to start consumer", slog.String("queue", q.QueueName), sl.Err(err))
			return err
		}
	}

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}

	return nil
}
