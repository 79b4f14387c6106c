package rent

import (
	"time"

	"github.com/magabrotheeeer/rental-ledger/internal/lib/month"
	"github.com/magabrotheeeer/rental-ledger/internal/models"
)

// IsPaidThisMonth сообщает, есть ли в истории оплаченная запись за текущий
// календарный месяц. nil-история считается пустой.
func IsPaidThisMonth(history []models.PaymentEntry, now time.Time, loc *time.Location) bool {
	return IsPaidIn(history, month.Period(now.In(loc)), loc)
}

// IsPaidIn сообщает, есть ли оплаченная запись за период YYYY-MM.
func IsPaidIn(history []models.PaymentEntry, period string, loc *time.Location) bool {
	for _, e := range history {
		if e.Status != models.StatusPaid {
			continue
		}
		if EntryPeriod(e, loc) == period {
			return true
		}
	}
	return false
}

// EntryPeriod возвращает календарный месяц записи. Сохранённый periodo главнее даты:
// DATE из Postgres читается как полночь UTC и в другом поясе сдвигается на предыдущий день.
func EntryPeriod(e models.PaymentEntry, loc *time.Location) string {
	if e.Period != "" {
		return e.Period
	}
	return month.Period(e.PaidAt.In(loc))
}
