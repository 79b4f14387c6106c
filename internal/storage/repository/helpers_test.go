//go:build integration

package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/rental-ledger/internal/migrations"
	"github.com/magabrotheeeer/rental-ledger/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateClient создает тестового арендатора
func (f *TestDataFactory) CreateClient(t *testing.T, name string, rent, pct string, dueDay int) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO rental_clients
		(nome, cpf, email, telefone, valor_aluguel, dia_vencimento, multa_percentual)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		name, "123.456.789-00", name+"@example.com", "+55 11 99999-0000",
		decimal.RequireFromString(rent), dueDay, decimal.RequireFromString(pct)).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, username string) string {
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`, uid, username, username+"@example.com", "hash", models.RoleUser)
	require.NoError(t, err)
	return uid
}

// PaidEntry строит оплаченную запись истории на дату
func PaidEntry(clientID int, paidAt time.Time, amount string) models.PaymentEntry {
	return models.PaymentEntry{
		ClientID: clientID,
		Month:    paidAt.Format("01/2006"),
		PaidAt:   paidAt,
		Amount:   decimal.RequireFromString(amount),
		Method:   models.MethodPix,
		Status:   models.StatusPaid,
		Penalty:  decimal.Zero,
		Period:   paidAt.Format("2006-01"),
	}
}

// VerifyPaidFlag проверяет флаг оплаты арендатора
func (f *TestDataFactory) VerifyPaidFlag(t *testing.T, clientID int, expected bool) {
	var paid bool
	err := f.storage.DB.QueryRow(`SELECT pago FROM rental_clients WHERE id = $1`, clientID).Scan(&paid)
	require.NoError(t, err)
	require.Equal(t, expected, paid)
}

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}
