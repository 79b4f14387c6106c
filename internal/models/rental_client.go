// Package models содержит доменные структуры учёта аренды: арендатора,
// записи истории платежей, напоминания, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalClient арендатор (cliente_aluguel), по которому ведётся учёт ежемесячной аренды.
// Поля PaidThisMonth и DueInThreeDays вычисляются при чтении и не хранятся.
type RentalClient struct {
	ID             int             `json:"id"`
	Name           string          `json:"nome"`
	CPF            string          `json:"cpf"`
	Email          string          `json:"email"`
	Phone          string          `json:"telefone"`
	RentAmount     decimal.Decimal `json:"valor_aluguel"`
	DueDay         int             `json:"dia_vencimento"`
	Paid           bool            `json:"pago"`
	PenaltyPercent decimal.Decimal `json:"multa_percentual"`
	History        []PaymentEntry  `json:"historico_pagamentos"`
	PaidThisMonth  bool            `json:"pago_mes_atual"`
	DueInThreeDays bool            `json:"vence_em_3_dias"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DummyRentalClient используется для приёма данных арендатора из формы,
// прежде чем конвертировать их в RentalClient.
// Денежные поля приходят числом или строкой, decimal принимает оба варианта.
type DummyRentalClient struct {
	Name           string           `json:"nome" validate:"required"`
	CPF            string           `json:"cpf" validate:"required"`
	Email          string           `json:"email" validate:"required,email"`
	Phone          string           `json:"telefone" validate:"required"`
	RentAmount     decimal.Decimal  `json:"valor_aluguel"`
	DueDay         int              `json:"dia_vencimento" validate:"required,min=1,max=31"`
	PenaltyPercent *decimal.Decimal `json:"multa_percentual,omitempty"`
}
