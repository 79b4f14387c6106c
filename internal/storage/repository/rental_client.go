package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/rental-ledger/internal/models"
)

const clientColumns = `id, nome, cpf, email, telefone, valor_aluguel, dia_vencimento,
				pago, multa_percentual, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*models.RentalClient, error) {
	var c models.RentalClient
	if err := row.Scan(&c.ID, &c.Name, &c.CPF, &c.Email, &c.Phone, &c.RentAmount, &c.DueDay,
		&c.Paid, &c.PenaltyPercent, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateClient вставляет нового арендатора и возвращает его ID.
func (s *Storage) CreateClient(ctx context.Context, c models.RentalClient) (int, error) {
	const op = "storage.CreateClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO rental_clients (nome, cpf, email, telefone, valor_aluguel,
			      dia_vencimento, pago, multa_percentual)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		c.Name, c.CPF, c.Email, c.Phone, c.RentAmount, c.DueDay, c.Paid, c.PenaltyPercent).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadClient возвращает арендатора по ID без истории платежей.
func (s *Storage) ReadClient(ctx context.Context, id int) (*models.RentalClient, error) {
	const op = "storage.ReadClient"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + clientColumns + ` FROM rental_clients WHERE id = $1`
	c, err := scanClient(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// UpdateClient заменяет данные арендатора и возвращает количество изменённых строк.
// Флаг оплаты и история платежей здесь не меняются.
func (s *Storage) UpdateClient(ctx context.Context, c models.RentalClient, id int) (int, error) {
	const op = "storage.UpdateClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE rental_clients
			  SET nome = $1, cpf = $2, email = $3, telefone = $4, valor_aluguel = $5,
			      dia_vencimento = $6, multa_percentual = $7, updated_at = NOW()
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		c.Name, c.CPF, c.Email, c.Phone, c.RentAmount, c.DueDay, c.PenaltyPercent, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveClient удаляет арендатора вместе с историей платежей.
func (s *Storage) RemoveClient(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM rental_clients WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListClients возвращает арендаторов с пагинацией, упорядоченных по ID.
func (s *Storage) ListClients(ctx context.Context, limit, offset int) ([]*models.RentalClient, error) {
	const op = "storage.ListClients"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + clientColumns + `
			  FROM rental_clients
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := collectClients(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllClients возвращает всех арендаторов. Используется планировщиком напоминаний.
func (s *Storage) ListAllClients(ctx context.Context) ([]*models.RentalClient, error) {
	const op = "storage.ListAllClients"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+clientColumns+` FROM rental_clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := collectClients(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RefreshPaidFlags пересчитывает флаг оплаты всех арендаторов для периода.
// Возвращает количество арендаторов, у которых флаг изменился.
func (s *Storage) RefreshPaidFlags(ctx context.Context, period string) (int, error) {
	const op = "storage.RefreshPaidFlags"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE rental_clients c
			  SET pago = p.paid, updated_at = NOW()
			  FROM (
			      SELECT rc.id, EXISTS (
			          SELECT 1 FROM payment_entries pe
			          WHERE pe.client_id = rc.id AND pe.status = 'pago' AND pe.periodo = $1
			      ) AS paid
			      FROM rental_clients rc
			  ) p
			  WHERE c.id = p.id AND c.pago <> p.paid`
	result, err := s.DB.ExecContext(ctx, query, period)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

func collectClients(rows *sql.Rows) ([]*models.RentalClient, error) {
	var result []*models.RentalClient
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
