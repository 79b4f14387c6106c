package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/rental-ledger/internal/models"
)

const entryColumns = `id, client_id, mes, data_pagamento, valor_pago, forma_pagamento,
				status, multa, periodo, created_at`

func scanEntry(row rowScanner) (models.PaymentEntry, error) {
	var e models.PaymentEntry
	err := row.Scan(&e.ID, &e.ClientID, &e.Month, &e.PaidAt, &e.Amount, &e.Method,
		&e.Status, &e.Penalty, &e.Period, &e.CreatedAt)
	return e, err
}

// ListEntries возвращает историю платежей арендатора в порядке даты платежа.
// Для арендатора без платежей возвращается пустой срез, а не nil.
func (s *Storage) ListEntries(ctx context.Context, clientID int) ([]models.PaymentEntry, error) {
	const op = "storage.ListEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + entryColumns + `
			  FROM payment_entries
			  WHERE client_id = $1
			  ORDER BY data_pagamento, id`
	rows, err := s.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.PaymentEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListEntriesForClients возвращает историю платежей нескольких арендаторов одним запросом.
func (s *Storage) ListEntriesForClients(ctx context.Context, clientIDs []int) (map[int][]models.PaymentEntry, error) {
	const op = "storage.ListEntriesForClients"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result := make(map[int][]models.PaymentEntry, len(clientIDs))
	if len(clientIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + entryColumns + `
			  FROM payment_entries
			  WHERE client_id = ANY($1)
			  ORDER BY client_id, data_pagamento, id`
	rows, err := s.DB.QueryContext(ctx, query, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[e.ClientID] = append(result[e.ClientID], e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RecordPayment добавляет запись в историю платежей и в той же транзакции
// пересчитывает флаг оплаты арендатора для текущего периода.
// Вторая оплаченная запись за тот же календарный месяц отклоняется с ErrPaymentAlreadyRecorded.
func (s *Storage) RecordPayment(ctx context.Context, entry models.PaymentEntry, currentPeriod string) (int, error) {
	const op = "storage.RecordPayment"

	var newID int
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `INSERT INTO payment_entries (client_id, mes, data_pagamento, valor_pago,
				      forma_pagamento, status, multa, periodo)
				  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				  RETURNING id`
		err := tx.QueryRowContext(ctx, query,
			entry.ClientID, entry.Month, entry.PaidAt, entry.Amount, entry.Method,
			entry.Status, entry.Penalty, entry.Period).Scan(&newID)
		if err != nil {
			if isUniqueViolation(err, "uq_payment_entries_paid_period") {
				return ErrPaymentAlreadyRecorded
			}
			return err
		}
		return refreshPaidFlag(ctx, tx, entry.ClientID, currentPeriod)
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// DeleteEntry удаляет запись истории арендатора и пересчитывает флаг оплаты.
// Возвращает количество удалённых записей.
func (s *Storage) DeleteEntry(ctx context.Context, clientID, entryID int, currentPeriod string) (int, error) {
	const op = "storage.DeleteEntry"

	var deleted int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM payment_entries WHERE id = $1 AND client_id = $2`, entryID, clientID)
		if err != nil {
			return err
		}
		deleted, err = result.RowsAffected()
		if err != nil {
			return err
		}
		if deleted == 0 {
			return nil
		}
		return refreshPaidFlag(ctx, tx, clientID, currentPeriod)
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(deleted), nil
}

func refreshPaidFlag(ctx context.Context, tx *sql.Tx, clientID int, period string) error {
	query := `UPDATE rental_clients
			  SET pago = EXISTS (
			      SELECT 1 FROM payment_entries
			      WHERE client_id = $1 AND status = 'pago' AND periodo = $2
			  ), updated_at = NOW()
			  WHERE id = $1`
	_, err := tx.ExecContext(ctx, query, clientID, period)
	return err
}

func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
