// Package rent содержит чистые функции учёта аренды: расчёт штрафа,
// проверку оплаты за месяц и проверку приближающейся даты платежа.
// Функции не обращаются к хранилищу и принимают "сейчас" и часовой пояс явно.
package rent

import (
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/rental-ledger/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ComputePenalty считает штраф как процент от суммы аренды: rent * pct / 100.
// Результат округляется до двух знаков, нулевой процент даёт нулевой штраф.
func ComputePenalty(rentAmount, pct decimal.Decimal) decimal.Decimal {
	return rentAmount.Mul(pct).Div(hundred).Round(2)
}

// StatusFor определяет статус записи по сумме: ненулевая сумма — оплачено.
func StatusFor(amount decimal.Decimal) models.PaymentStatus {
	if amount.IsPositive() {
		return models.StatusPaid
	}
	return models.StatusNotPaid
}

// PenaltyFor возвращает штраф для записи с данным статусом.
func PenaltyFor(status models.PaymentStatus, rentAmount, pct decimal.Decimal) decimal.Decimal {
	if status == models.StatusPaid {
		return decimal.Zero
	}
	return ComputePenalty(rentAmount, pct)
}
