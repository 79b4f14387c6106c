//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/rental-ledger/internal/models"
)

func TestStorage_ClientRoundTrip(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	client := models.RentalClient{
		Name:           "Maria Souza",
		CPF:            "987.654.321-00",
		Email:          "maria@example.com",
		Phone:          "+55 21 98888-1111",
		RentAmount:     decimal.RequireFromString("1500.50"),
		DueDay:         10,
		PenaltyPercent: decimal.RequireFromString("2.5"),
	}

	id, err := storage.CreateClient(ctx, client)
	require.NoError(t, err)

	got, err := storage.ReadClient(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, client.Name, got.Name)
	assert.Equal(t, client.CPF, got.CPF)
	assert.Equal(t, client.Email, got.Email)
	assert.Equal(t, client.Phone, got.Phone)
	assert.True(t, client.RentAmount.Equal(got.RentAmount))
	assert.Equal(t, client.DueDay, got.DueDay)
	assert.True(t, client.PenaltyPercent.Equal(got.PenaltyPercent))
	assert.False(t, got.Paid)

	list, err := storage.ListClients(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
}

func TestStorage_UpdateAndRemoveClient(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	factory := NewTestDataFactory(storage)
	id := factory.CreateClient(t, "joao", "1000", "0", 5)

	updated := models.RentalClient{
		Name: "João Lima", CPF: "111", Email: "joao@example.com", Phone: "123",
		RentAmount: decimal.NewFromInt(1200), DueDay: 15, PenaltyPercent: decimal.NewFromInt(10),
	}
	count, err := storage.UpdateClient(ctx, updated, id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := storage.ReadClient(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 15, got.DueDay)
	assert.True(t, decimal.NewFromInt(1200).Equal(got.RentAmount))

	count, err = storage.RemoveClient(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = storage.ReadClient(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)

	count, err = storage.RemoveClient(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_RecordPayment(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	factory := NewTestDataFactory(storage)
	clientID := factory.CreateClient(t, "ana", "1000", "10", 10)

	march := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	_, err := storage.RecordPayment(ctx, PaidEntry(clientID, march, "1000"), "2024-03")
	require.NoError(t, err)
	factory.VerifyPaidFlag(t, clientID, true)

	// вторая оплата за тот же месяц отклоняется хранилищем
	_, err = storage.RecordPayment(ctx, PaidEntry(clientID, march.AddDate(0, 0, 5), "1000"), "2024-03")
	require.ErrorIs(t, err, ErrPaymentAlreadyRecorded)

	// неоплаченная запись за тот же месяц допускается
	notPaid := PaidEntry(clientID, march, "0")
	notPaid.Status = models.StatusNotPaid
	notPaid.Penalty = decimal.NewFromInt(100)
	_, err = storage.RecordPayment(ctx, notPaid, "2024-03")
	require.NoError(t, err)

	entries, err := storage.ListEntries(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-03", entries[0].Period)
	assert.True(t, decimal.NewFromInt(100).Equal(entries[1].Penalty))
}

func TestStorage_DeleteEntryRefreshesPaidFlag(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	factory := NewTestDataFactory(storage)
	clientID := factory.CreateClient(t, "bia", "800", "0", 1)

	jan := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	_, err := storage.RecordPayment(ctx, PaidEntry(clientID, jan, "800"), "2024-02")
	require.NoError(t, err)
	febID, err := storage.RecordPayment(ctx, PaidEntry(clientID, feb, "800"), "2024-02")
	require.NoError(t, err)
	factory.VerifyPaidFlag(t, clientID, true)

	deleted, err := storage.DeleteEntry(ctx, clientID, febID, "2024-02")
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	factory.VerifyPaidFlag(t, clientID, false)

	entries, err := storage.ListEntries(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-01", entries[0].Period)

	deleted, err = storage.DeleteEntry(ctx, clientID, febID, "2024-02")
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}

func TestStorage_ListEntriesForClientsAndRefresh(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	factory := NewTestDataFactory(storage)
	a := factory.CreateClient(t, "a", "500", "0", 5)
	b := factory.CreateClient(t, "b", "700", "0", 5)
	c := factory.CreateClient(t, "c", "900", "0", 5)

	may := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	_, err := storage.RecordPayment(ctx, PaidEntry(a, may, "500"), "2024-05")
	require.NoError(t, err)
	_, err = storage.RecordPayment(ctx, PaidEntry(b, may, "700"), "2024-05")
	require.NoError(t, err)

	byClient, err := storage.ListEntriesForClients(ctx, []int{a, b, c})
	require.NoError(t, err)
	assert.Len(t, byClient[a], 1)
	assert.Len(t, byClient[b], 1)
	assert.Empty(t, byClient[c])

	// новый месяц: флаги сбрасываются
	changed, err := storage.RefreshPaidFlags(ctx, "2024-06")
	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	factory.VerifyPaidFlag(t, a, false)

	all, err := storage.ListAllClients(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStorage_Users(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	user := models.User{
		UUID: "550e8400-e29b-41d4-a716-446655440000", Username: "operador",
		Email: "op@example.com", PasswordHash: "hash", Role: models.RoleUser,
	}
	uid, err := storage.RegisterUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.UUID, uid)

	_, err = storage.RegisterUser(ctx, user)
	require.ErrorIs(t, err, ErrUserExists)

	got, err := storage.GetUserByUsername(ctx, "operador")
	require.NoError(t, err)
	assert.Equal(t, "op@example.com", got.Email)

	_, err = storage.GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}
