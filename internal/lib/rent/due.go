package rent

import (
	"time"

	"github.com/magabrotheeeer/rental-ledger/internal/lib/month"
	"github.com/magabrotheeeer/rental-ledger/internal/models"
)

// AlertDaysAhead за сколько дней до платежа поднимается напоминание.
// Сравнение точное: ровно за три дня, не "в пределах трёх дней".
const AlertDaysAhead = 3

// DaysUntilDue разница в календарных днях от now до даты платежа текущего месяца.
func DaysUntilDue(now time.Time, dueDay int, loc *time.Location) int {
	return month.DaysBetween(now, month.DueDate(now, dueDay, loc), loc)
}

// DueInThreeDays истинно только когда до даты платежа ровно AlertDaysAhead дней.
func DueInThreeDays(now time.Time, dueDay int, loc *time.Location) bool {
	return DaysUntilDue(now, dueDay, loc) == AlertDaysAhead
}

// IsPastDue истинно, если дата платежа текущего месяца уже прошла.
func IsPastDue(now time.Time, dueDay int, loc *time.Location) bool {
	return DaysUntilDue(now, dueDay, loc) < 0
}

// DueSoon отбирает арендаторов, у которых до даты платежа ровно AlertDaysAhead дней.
// Порядок входного среза сохраняется.
func DueSoon(clients []*models.RentalClient, now time.Time, loc *time.Location) []*models.RentalClient {
	var result []*models.RentalClient
	for _, c := range clients {
		if DueInThreeDays(now, c.DueDay, loc) {
			result = append(result, c)
		}
	}
	return result
}

// Overdue отбирает арендаторов, у которых дата платежа прошла, а оплаты за месяц нет.
func Overdue(clients []*models.RentalClient, history map[int][]models.PaymentEntry, now time.Time, loc *time.Location) []*models.RentalClient {
	var result []*models.RentalClient
	for _, c := range clients {
		if IsPastDue(now, c.DueDay, loc) && !IsPaidThisMonth(history[c.ID], now, loc) {
			result = append(result, c)
		}
	}
	return result
}
