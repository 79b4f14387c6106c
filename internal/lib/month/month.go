// Package month содержит календарные вспомогательные функции для учёта аренды:
// ключ периода платежа, дату платежа в текущем месяце и разницу в днях.
package month

import (
	"fmt"
	"time"
)

// PeriodLayout формат ключа периода (календарный месяц платежа).
const PeriodLayout = "2006-01"

// DateLayout формат даты платежа в запросах.
const DateLayout = "2006-01-02"

// Period возвращает ключ календарного месяца для даты, например "2024-03".
func Period(t time.Time) string {
	return t.Format(PeriodLayout)
}

// ParsePeriod разбирает ключ периода "YYYY-MM" в первое число месяца в loc.
func ParsePeriod(period string, loc *time.Location) (time.Time, error) {
	const op = "month.ParsePeriod"
	t, err := time.ParseInLocation(PeriodLayout, period, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// DueDate строит дату платежа текущего месяца по дню оплаты (dia_vencimento).
// День больше числа дней в месяце переносится в следующий месяц (31 февраля -> 3 марта).
func DueDate(now time.Time, dueDay int, loc *time.Location) time.Time {
	now = now.In(loc)
	return time.Date(now.Year(), now.Month(), dueDay, 0, 0, 0, 0, loc)
}

// DaysBetween считает разницу в календарных днях между from и to в loc.
// Положительна, если to позже from.
func DaysBetween(from, to time.Time, loc *time.Location) int {
	f := from.In(loc)
	t := to.In(loc)
	fromDay := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}
