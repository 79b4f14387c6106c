// Package metrics объявляет метрики Prometheus сервиса учёта аренды.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PaymentsRecorded количество записей истории платежей по статусу.
	PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rental_ledger",
		Name:      "payments_recorded_total",
		Help:      "Записи истории платежей, добавленные через API.",
	}, []string{"status"})

	// RemindersPublished количество опубликованных напоминаний по типу.
	RemindersPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rental_ledger",
		Name:      "reminders_published_total",
		Help:      "Напоминания, отправленные в очередь уведомлений.",
	}, []string{"kind"})

	// RemindersSent количество писем по типу напоминания и результату.
	RemindersSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rental_ledger",
		Name:      "reminders_sent_total",
		Help:      "Письма с напоминаниями, обработанные отправителем.",
	}, []string{"kind", "result"})

	// HTTPRequests количество HTTP-запросов по маршруту, методу и коду ответа.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rental_ledger",
		Name:      "http_requests_total",
		Help:      "Обработанные HTTP-запросы.",
	}, []string{"route", "method", "code"})

	// HTTPDuration длительность обработки HTTP-запросов.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rental_ledger",
		Name:      "http_request_duration_seconds",
		Help:      "Время обработки HTTP-запросов.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)
