package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReminderKind тип напоминания.
type ReminderKind string

const (
	// ReminderDueSoon оплата через три дня.
	ReminderDueSoon ReminderKind = "due_soon"
	// ReminderOverdue срок оплаты прошёл, платежа нет.
	ReminderOverdue ReminderKind = "overdue"
)

// Reminder сообщение, которое планировщик публикует в очередь уведомлений.
type Reminder struct {
	Kind       ReminderKind    `json:"kind"`
	ClientID   int             `json:"client_id"`
	Name       string          `json:"nome"`
	Email      string          `json:"email"`
	RentAmount decimal.Decimal `json:"valor_aluguel"`
	DueDate    time.Time       `json:"data_vencimento"`
	Penalty    decimal.Decimal `json:"multa"`
}
