package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod способ оплаты.
type PaymentMethod string

const (
	MethodCash       PaymentMethod = "dinheiro"
	MethodPix        PaymentMethod = "pix"
	MethodDebitCard  PaymentMethod = "cartao_debito"
	MethodCreditCard PaymentMethod = "cartao_credito"
	MethodTransfer   PaymentMethod = "transferencia"
	MethodCheck      PaymentMethod = "cheque"
)

// PaymentStatus статус записи истории платежей.
type PaymentStatus string

const (
	// StatusPaid платёж получен.
	StatusPaid PaymentStatus = "pago"
	// StatusNotPaid платёж отсутствует, начислен штраф.
	StatusNotPaid PaymentStatus = "nao_pago"
)

// PaymentEntry одна запись истории платежей арендатора.
// Mes — произвольная подпись месяца, Period — календарный месяц даты платежа (YYYY-MM),
// по нему хранилище гарантирует не более одной оплаченной записи в месяц.
type PaymentEntry struct {
	ID        int             `json:"id"`
	ClientID  int             `json:"client_id"`
	Month     string          `json:"mes"`
	PaidAt    time.Time       `json:"data_pagamento"`
	Amount    decimal.Decimal `json:"valor_pago"`
	Method    PaymentMethod   `json:"forma_pagamento"`
	Status    PaymentStatus   `json:"status"`
	Penalty   decimal.Decimal `json:"multa"`
	Period    string          `json:"periodo"`
	CreatedAt time.Time       `json:"created_at"`
}

// DummyPaymentEntry принимает данные платежа из JSON-запроса.
// Пустая или нулевая сумма означает отсутствие платежа.
type DummyPaymentEntry struct {
	Month  string          `json:"mes" validate:"required"`
	PaidAt string          `json:"data_pagamento" validate:"required"` // Дата в формате 2006-01-02
	Amount decimal.Decimal `json:"valor_pago"`
	Method string          `json:"forma_pagamento" validate:"required,oneof=dinheiro pix cartao_debito cartao_credito transferencia cheque"`
}

// PenaltyStatus результат запроса штрафа за период.
type PenaltyStatus struct {
	ClientID int             `json:"client_id"`
	Period   string          `json:"periodo"`
	Status   PaymentStatus   `json:"status"`
	Penalty  decimal.Decimal `json:"multa"`
}
