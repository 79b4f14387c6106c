// Package rabbitmq подключается к RabbitMQ, объявляет обменник и очереди напоминаний,
// публикует и потребляет сообщения в JSON.
package rabbitmq

import "github.com/magabrotheeeer/rental-ledger/internal/models"

// Exchange direct-обменник уведомлений.
const Exchange = "notifications"

// QueueConfig очередь и ключ маршрутизации, которым она привязана к Exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// ReminderQueues очереди напоминаний. Ключ маршрутизации совпадает с типом напоминания.
func ReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "reminder.due_soon", RoutingKey: string(models.ReminderDueSoon)},
		{QueueName: "reminder.overdue", RoutingKey: string(models.ReminderOverdue)},
	}
}
